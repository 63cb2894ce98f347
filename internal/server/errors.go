// Package server provides the HTTP REST API for the resume parser.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// ErrValidation indicates the request body failed validation.
// No analysis is run for such requests.
type ErrValidation struct {
	Fields []types.FieldError
}

func (e *ErrValidation) Error() string {
	if len(e.Fields) == 0 {
		return "validation error: invalid request"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s - %s", f.Field, f.Message))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// ErrBodyTooLarge indicates the request body exceeded the configured limit.
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body too large: limit is %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		tooLargeErr   *ErrBodyTooLarge
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the JSON body for err.
func errorBody(err error) types.ErrorResponse {
	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return types.ErrorResponse{Error: "validation_failed", Details: validationErr.Fields}
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return types.ErrorResponse{Error: "internal server error"}
	}
	return types.ErrorResponse{Error: err.Error()}
}
