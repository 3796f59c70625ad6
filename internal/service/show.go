// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier shape:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, orchestrates uploads and storage
//	Repository (data layer)  → reads/writes the database
//
// Services receive their dependencies as interfaces (repository.ShowRepository,
// Uploader) so tests can inject in-memory fakes, and so the handler never
// touches the database or the filesystem directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/mhasan/show-catalog/internal/apperror"
	"github.com/mhasan/show-catalog/internal/model"
	"github.com/mhasan/show-catalog/internal/repository"
	"github.com/mhasan/show-catalog/internal/upload"
)

// Uploader stores one uploaded file and returns its reference string.
// Implemented by *upload.Store; faked in tests.
type Uploader interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
}

// ShowInput carries the multipart form fields for create and update.
// File/FileHeader are nil when the request included no image — that's not an
// error, it just means "no image" (create) or "keep the current one" (update).
type ShowInput struct {
	Title       string
	Description string
	Category    string
	File        multipart.File
	FileHeader  *multipart.FileHeader
}

// ShowService handles business logic for catalog entries.
type ShowService struct {
	repo    repository.ShowRepository
	uploads Uploader
	logger  *slog.Logger
}

// NewShowService creates a ShowService with its dependencies injected.
func NewShowService(repo repository.ShowRepository, uploads Uploader, logger *slog.Logger) *ShowService {
	return &ShowService{
		repo:    repo,
		uploads: uploads,
		logger:  logger,
	}
}

// validateFields checks the writable show fields and collects every
// violation. It never short-circuits: a request with an empty title AND a bad
// category reports both problems in one response.
func validateFields(in ShowInput) *apperror.ValidationErrors {
	var violations []apperror.FieldError

	if strings.TrimSpace(in.Title) == "" {
		violations = append(violations, apperror.FieldError{
			Field: "title", Message: "Title is required",
		})
	}
	if strings.TrimSpace(in.Description) == "" {
		violations = append(violations, apperror.FieldError{
			Field: "description", Message: "Description is required",
		})
	}
	if !model.ValidCategory(in.Category) {
		violations = append(violations, apperror.FieldError{
			Field: "category", Message: "Category must be movie, anime, or serie",
		})
	}

	if len(violations) == 0 {
		return nil
	}
	return apperror.Validation(violations...)
}

// saveImage stores the uploaded file, if any, and returns its reference
// string. A rejected file type surfaces as a validation error on the image
// field; any other failure is an I/O problem and propagates as-is.
func (s *ShowService) saveImage(in ShowInput) (*string, error) {
	if in.File == nil {
		return nil, nil
	}

	ref, err := s.uploads.Save(in.File, in.FileHeader)
	if err != nil {
		if errors.Is(err, upload.ErrFileType) {
			return nil, apperror.Validation(apperror.FieldError{
				Field: "image", Message: err.Error(),
			})
		}
		return nil, fmt.Errorf("storing image: %w", err)
	}

	return &ref, nil
}

// Create validates the input, stores the image (if supplied), and inserts the
// show. The returned record carries the generated id.
//
// Order matters: validation runs before the upload so a rejected request
// never writes a file to disk.
func (s *ShowService) Create(ctx context.Context, in ShowInput) (*model.Show, error) {
	if verr := validateFields(in); verr != nil {
		return nil, verr
	}

	image, err := s.saveImage(in)
	if err != nil {
		return nil, err
	}

	show := &model.Show{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Image:       image,
	}

	if err := s.repo.Create(ctx, show); err != nil {
		s.logger.Error("failed to create show",
			slog.String("title", in.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating show: %w", err)
	}

	s.logger.Info("show created",
		slog.Int64("id", show.ID),
		slog.String("title", show.Title),
		slog.String("category", show.Category),
	)

	return show, nil
}

// List returns all shows.
func (s *ShowService) List(ctx context.Context) ([]model.Show, error) {
	shows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list shows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return shows, nil
}

// GetByID returns one show. The error is apperror.ErrNotFound (wrapped) when
// no such show exists.
func (s *ShowService) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	return s.repo.GetByID(ctx, id)
}

// Update validates the input, stores the replacement image (if supplied), and
// overwrites the show's fields. With no new image the stored image is
// preserved, not cleared — the repository's COALESCE handles that.
//
// The returned record is re-read from storage so the caller sees the
// persisted state, including a preserved image the request didn't carry.
func (s *ShowService) Update(ctx context.Context, id int64, in ShowInput) (*model.Show, error) {
	if verr := validateFields(in); verr != nil {
		return nil, verr
	}

	image, err := s.saveImage(in)
	if err != nil {
		return nil, err
	}

	show := &model.Show{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Image:       image, // nil = preserve existing
	}

	if err := s.repo.Update(ctx, show); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update show",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating show: %w", err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading back updated show: %w", err)
	}

	s.logger.Info("show updated",
		slog.Int64("id", id),
		slog.String("title", updated.Title),
	)

	return updated, nil
}

// Delete removes a show. Returns apperror.ErrNotFound (wrapped) when the id
// doesn't exist. Any uploaded image stays on disk (no orphan cleanup).
func (s *ShowService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("show deleted", slog.Int64("id", id))
	return nil
}
