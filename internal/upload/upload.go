// Package upload stores files received as multipart form uploads and hands
// back reference strings ("/uploads/<name>") that callers persist alongside
// their records.
//
// Files are never deleted here: replacing or removing a show leaves its old
// image on disk. Unreferenced files accumulate until an operator cleans them
// up — if garbage collection is ever added, this package is where it belongs,
// since it is the only code that knows the storage directory.
package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/xid"
)

// ErrFileType is returned by Save when the file's extension is outside the
// configured allowlist. Callers treat it as an input problem, not an I/O one.
var ErrFileType = errors.New("file type is not allowed")

// URLPrefix is prepended to generated filenames to form the reference string
// stored on a Show. The HTTP server serves the storage directory under the
// same prefix.
const URLPrefix = "/uploads/"

// Store writes uploaded files into a single directory.
type Store struct {
	dir         string
	allowedExts map[string]bool // nil or empty = accept any extension
	logger      *slog.Logger
}

// New creates a Store rooted at dir, creating the directory if needed.
//
// allowedExts is an optional extension allowlist (".jpg", ".png", ...).
// Empty means accept anything — the permissive default this service ships
// with; production deployments should restrict to image types.
func New(dir string, allowedExts []string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: creating directory %s: %w", dir, err)
	}

	var exts map[string]bool
	if len(allowedExts) > 0 {
		exts = make(map[string]bool, len(allowedExts))
		for _, e := range allowedExts {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			exts[e] = true
		}
	}

	return &Store{dir: dir, allowedExts: exts, logger: logger}, nil
}

// Dir returns the storage directory, for wiring the static file server.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes one uploaded file to disk and returns its reference string.
//
// The generated name is "<unix-millis>-<original-name>": the timestamp makes
// collisions practically impossible while keeping the original name visible
// for traceability. If two uploads of the same name do land in the same
// millisecond, an xid is spliced in rather than overwriting the first file.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	original := sanitizeFilename(header.Filename)

	if s.allowedExts != nil {
		ext := strings.ToLower(filepath.Ext(original))
		if !s.allowedExts[ext] {
			return "", fmt.Errorf("upload: %q: %w", ext, ErrFileType)
		}
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), original)

	dst, err := s.createExclusive(name)
	if errors.Is(err, os.ErrExist) {
		// Same name in the same millisecond — disambiguate instead of clobbering.
		name = fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), xid.New().String(), original)
		dst, err = s.createExclusive(name)
	}
	if err != nil {
		return "", fmt.Errorf("upload: creating %s: %w", name, err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		// Don't leave a truncated file behind.
		os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("upload: writing %s: %w", name, err)
	}

	s.logger.Info("file stored",
		slog.String("name", name),
		slog.Int64("bytes", written),
	)

	return URLPrefix + name, nil
}

// createExclusive opens a new file that must not already exist. O_EXCL makes
// the existence check and the create a single atomic operation.
func (s *Store) createExclusive(name string) (*os.File, error) {
	return os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// sanitizeFilename strips any directory components from a client-supplied
// filename. Browsers send bare names, but nothing stops a crafted request
// from sending "../../etc/passwd" — path.Base reduces it to the last element.
func sanitizeFilename(name string) string {
	// Normalise Windows separators before taking the base.
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}
