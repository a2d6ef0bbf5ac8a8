package services

import (
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Error kinds surfaced to the HTTP layer. Controllers map these to status
// codes with errors.Is; everything else degrades locally with a log line.
var (
	// ErrMissingCredentials means a required API key is absent from the
	// configuration. Not retryable.
	ErrMissingCredentials = errors.New("api key missing")

	// ErrUpstreamUnavailable is a network-level failure reaching a provider.
	ErrUpstreamUnavailable = errors.New("upstream provider unreachable")

	// ErrUpstreamRejected is a structured error reported by a provider.
	ErrUpstreamRejected = errors.New("upstream provider rejected the request")

	// ErrEmptyMessage is returned when a chat request carries no message text.
	ErrEmptyMessage = errors.New("message text is required")

	// ErrUnknownProvider is returned for an unrecognized TTS provider name.
	ErrUnknownProvider = errors.New("unknown tts provider")

	// ErrUnauthorized is returned when a request cannot be authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for resources the requester does not own or
	// that do not exist. Ownership-check read failures collapse into this.
	ErrNotFound = errors.New("not found")
)

// classifyUpstreamError distinguishes a provider-reported error from plain
// connectivity failure so the client sees which one happened.
func classifyUpstreamError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s", ErrUpstreamRejected, apiErr.Message)
	}
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
