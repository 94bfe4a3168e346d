package handlers

import (
	"errors"
	"net/http"
	"time"

	"site-notify-api/internal/repositories"
	"site-notify-api/internal/services"
)

// ErrorResponse represents a standard error response. Every error body
// carries the correlation id so a client report can be matched to logs.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func newErrorResponse(message, requestID string) ErrorResponse {
	return ErrorResponse{
		Error:     message,
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// statusForError maps service-layer failures to HTTP status codes.
// Checks run in precedence order so a request failing several ways
// always yields the same code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case repositories.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// messageForStatus returns the client-facing message for a status code.
// Internal failure detail stays in the logs, never in the body.
func messageForStatus(status int, err error) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return err.Error()
	default:
		return "Internal server error"
	}
}
