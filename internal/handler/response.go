package handler

// Response helpers. Every handler sends JSON through writeJSON and maps
// domain errors through writeError, so the wire format is decided in exactly
// one place.
//
// Error bodies come in two shapes:
//
//	validation → 400 {"errors":[{"field":"title","message":"Title is required"}, ...]}
//	everything else → {"error":"Show not found"} with the matching status
//
// The errors-array shape exists so clients can render per-field messages;
// validation collects every violation before responding.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mhasan/show-catalog/internal/apperror"
)

// errorResponse is the single-message error body (404, 401, 500).
type errorResponse struct {
	Error string `json:"error"`
}

// validationResponse is the aggregated-violations error body (400).
type validationResponse struct {
	Errors []apperror.FieldError `json:"errors"`
}

// messageResponse is the acknowledgment body (delete, logout).
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON sends a JSON response. Headers and status must be written before
// the body — once Encode starts writing, the headers are already on the wire.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are gone; all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError translates a domain error into an HTTP response.
//
// The service and repository layers know nothing about HTTP — they return
// apperror values, and this is the one spot where those become status codes.
// errors.Is/As walk the wrap chain, so a service error like
// fmt.Errorf("creating show: %w", <storage error>) still classifies correctly.
func writeError(w http.ResponseWriter, err error) {
	var verr *apperror.ValidationErrors
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verr.Violations})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrStorage):
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorResponse{Error: appErr.Message})
		return
	}

	// Unclassified failure — a storage or I/O problem that wasn't wrapped in
	// an AppError. The message passes through; there is no retry tier, every
	// storage error is terminal for its request.
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
