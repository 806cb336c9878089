// Package server provides the HTTP REST API for job recommendations.
package server

import (
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidLimit indicates a limit query parameter that is not a positive integer
type ErrInvalidLimit struct {
	Value string
}

func (e *ErrInvalidLimit) Error() string {
	return fmt.Sprintf("invalid limit %q: must be a positive integer", e.Value)
}

// ErrUnsupportedMediaType indicates a request body that is not JSON
type ErrUnsupportedMediaType struct {
	ContentType string
}

func (e *ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("unsupported content type %q: expected application/json", e.ContentType)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation, *ErrInvalidLimit:
		return http.StatusBadRequest
	case *ErrUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}
