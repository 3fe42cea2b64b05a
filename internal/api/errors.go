package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/san-kum/odesim/internal/sim"
)

var ErrPresetNotFound = errors.New("api: preset not found")

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// MapErrorToStatusCode maps solver errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, sim.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, sim.ErrParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) ErrorResponse {
	var ve *sim.ValidationError
	if errors.As(err, &ve) {
		return ErrorResponse{Error: ve.Error(), Field: ve.Field}
	}
	if MapErrorToStatusCode(err) == http.StatusInternalServerError {
		return ErrorResponse{Error: "internal error"}
	}
	return ErrorResponse{Error: err.Error()}
}
