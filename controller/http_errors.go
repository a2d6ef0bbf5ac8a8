package controller

import (
	"errors"
	"net/http"

	"github.com/K-naman-T/techex-ai/services"
)

// statusFor maps service error kinds to HTTP status codes. Unknown errors are
// treated as internal; the message still reaches the client so the kiosk UI
// can show something actionable.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrUnknownProvider):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
