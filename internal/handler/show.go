package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mhasan/show-catalog/internal/apperror"
	"github.com/mhasan/show-catalog/internal/model"
	"github.com/mhasan/show-catalog/internal/service"
)

// maxUploadMemory is the in-memory buffer for multipart parsing; larger
// uploads spill to temp files on disk.
const maxUploadMemory = 32 << 20 // 32 MB

// ShowService is what the handler needs from the business layer. Declaring
// the interface here (at the point of use) lets tests substitute a fake
// without touching the real service.
type ShowService interface {
	Create(ctx context.Context, in service.ShowInput) (*model.Show, error)
	List(ctx context.Context) ([]model.Show, error)
	GetByID(ctx context.Context, id int64) (*model.Show, error)
	Update(ctx context.Context, id int64, in service.ShowInput) (*model.Show, error)
	Delete(ctx context.Context, id int64) error
}

// ShowHandler exposes the five show operations over HTTP. It parses requests
// and writes responses; everything else is the service's job.
type ShowHandler struct {
	shows  ShowService
	logger *slog.Logger
}

// NewShowHandler creates a ShowHandler.
func NewShowHandler(shows ShowService, logger *slog.Logger) *ShowHandler {
	return &ShowHandler{shows: shows, logger: logger}
}

// parseID extracts and parses the {id} path parameter.
//
// A non-integer id is a VALIDATION error (400), not a 404: "abc" is a
// malformed request, while a well-formed id that matches no row is "not
// found". Returning early here also guarantees garbage ids never reach the
// store.
func parseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation(apperror.FieldError{
			Field: "id", Message: "ID must be an integer",
		})
	}
	return id, nil
}

// showInput reads the multipart form fields and the optional image file.
// The returned cleanup func closes the file handle (no-op when there is no
// file) and must be deferred by the caller.
func showInput(r *http.Request) (service.ShowInput, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return service.ShowInput{}, noop, apperror.Validation(apperror.FieldError{
			Field: "body", Message: "Request body must be multipart form data",
		})
	}

	in := service.ShowInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	file, header, err := r.FormFile("image")
	switch err {
	case nil:
		in.File = file
		in.FileHeader = header
		return in, func() { file.Close() }, nil
	case http.ErrMissingFile:
		// No image in the request — perfectly fine.
		return in, noop, nil
	default:
		return service.ShowInput{}, noop, apperror.Validation(apperror.FieldError{
			Field: "image", Message: "Image upload could not be read",
		})
	}
}

// HandleCreate creates a show.
//
// HTTP: POST /shows (multipart form: title, description, category, image?)
// Success: 201 with the full record, including the generated id and the
// image reference (null when no file was sent).
func (h *ShowHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, cleanup, err := showInput(r)
	defer cleanup()
	if err != nil {
		writeError(w, err)
		return
	}

	show, err := h.shows.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, show)
}

// HandleList returns every show.
//
// HTTP: GET /shows
func (h *ShowHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	shows, err := h.shows.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, shows)
}

// HandleGetByID returns one show.
//
// HTTP: GET /shows/{id}
func (h *ShowHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	show, err := h.shows.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, show)
}

// HandleUpdate overwrites a show's fields. Sending no image keeps the stored
// one; sending a new image replaces it.
//
// HTTP: PUT /shows/{id} (multipart form, same fields as create)
func (h *ShowHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	in, cleanup, err := showInput(r)
	defer cleanup()
	if err != nil {
		writeError(w, err)
		return
	}

	show, err := h.shows.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, show)
}

// HandleDelete removes a show.
//
// HTTP: DELETE /shows/{id}
func (h *ShowHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.shows.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Show deleted successfully"})
}
