package restclient

import (
	"errors"
	"net/http"
)

// Error classes returned by Client.Do. Match them with errors.Is; the
// concrete *Error carries the redacted, user-facing message.
var (
	// ErrUnauthorized is returned for 401 responses. Never retried.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRejected is returned for 400 and 403 responses. Never retried.
	ErrRejected = errors.New("request rejected")
	// ErrRetriesExhausted is returned when every attempt failed with a
	// retryable status or a transport error.
	ErrRetriesExhausted = errors.New("retries exhausted")
	// ErrUnexpectedStatus is returned for statuses outside the accept set
	// that are neither client errors nor retryable.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrResponseTooLarge is returned when an accepted body exceeds the
	// request's MaxResponseBytes. Never retried.
	ErrResponseTooLarge = errors.New("response too large")
	// ErrDecodeResponse is returned when an accepted response body is not valid JSON.
	ErrDecodeResponse = errors.New("failed to decode response")
	// ErrInvalidRequest is returned before any network call for unusable requests.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidSignature is returned by SignPayload for unusable input.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Error is a classified request failure. Message never contains the request secret.
type Error struct {
	Kind    error
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// IsRetryableStatus reports whether a response status is worth another attempt.
func IsRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
