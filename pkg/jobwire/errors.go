package jobwire

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError is the single terminal failure type for every request issued
// through the Client. Status 0 marks a transport-level network failure,
// 408 a client-enforced timeout, anything else the HTTP status returned
// by the backend.
type APIError struct {
	Status  int
	Message string
	Fields  json.RawMessage

	// retryAfter is the server-requested wait parsed from a 429
	// response; it overrides the client's linear backoff.
	retryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Retryable reports whether the failure class is eligible for an
// automatic re-attempt: 5xx, 408, 429, or a network failure.
func (e *APIError) Retryable() bool {
	switch {
	case e.Status == 0:
		return true
	case e.Status == http.StatusRequestTimeout:
		return true
	case e.Status == http.StatusTooManyRequests:
		return true
	case e.Status >= 500:
		return true
	}

	return false
}

// IsStatus reports whether err is an *APIError carrying the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.Status == status
}

// IsNetworkError reports whether err is a transport-level failure, as
// opposed to an HTTP response with an error status.
func IsNetworkError(err error) bool {
	return IsStatus(err, 0)
}

// IsTimeout reports whether err is a client-enforced request timeout.
func IsTimeout(err error) bool {
	return IsStatus(err, http.StatusRequestTimeout)
}

// IsUnauthorized reports whether err is an HTTP 401 from the backend.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}
