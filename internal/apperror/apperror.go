// Package apperror defines the application's error taxonomy.
//
// Services and repositories return these errors; the HTTP layer maps them to
// status codes in exactly one place (handler.writeError). Sentinel errors are
// checked with errors.Is, which walks the wrap chain via Unwrap().
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("storage failure")
)

// AppError carries a human-readable message alongside one of the sentinel
// errors above, so handlers can both classify (errors.Is) and display
// (appErr.Message) without parsing strings.
type AppError struct {
	Err     error  // sentinel classifying the error
	Message string // human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound returns an AppError for a missing resource. Handlers map it to 404.
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Unauthorized returns an AppError for a failed credential check. Handlers map
// it to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Storage wraps an underlying persistence failure. Handlers map it to 500,
// passing the message through.
func Storage(err error) *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: err.Error(),
	}
}

// FieldError is a single validation violation on a named input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every violation found in a request.
//
// Validation deliberately does NOT short-circuit on the first bad field — a
// client submitting a form should see everything wrong at once, so the
// validator collects all violations and returns them together. Handlers map
// this to 400 with an errors array.
type ValidationErrors struct {
	Violations []FieldError
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Validation builds a ValidationErrors from one or more violations.
func Validation(violations ...FieldError) *ValidationErrors {
	return &ValidationErrors{Violations: violations}
}
