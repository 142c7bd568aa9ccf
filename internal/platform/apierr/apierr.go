package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrAuthRequired is returned before any network call when no usable access
// token is available.
var ErrAuthRequired = errors.New("authentication required: no access token available")

// Error is the typed error for a failed backend exchange. Detail holds the
// backend-provided message (the `detail` or `message` field of the error body)
// or a generic "HTTP <status>: <statusText>" fallback.
type Error struct {
	Status     int
	Method     string
	Endpoint   string
	Detail     string
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	detail := e.Detail
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	if detail == "" {
		detail = fmt.Sprintf("HTTP %d: %s", e.Status, http.StatusText(e.Status))
	}
	if e.Method != "" && e.Endpoint != "" {
		return fmt.Sprintf("[%s %s] %s", e.Method, e.Endpoint, detail)
	}
	return detail
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.Status
}

// RetryAfterHint exposes the server's Retry-After header, when present, to
// the retry layer.
func (e *Error) RetryAfterHint() time.Duration {
	if e == nil {
		return 0
	}
	return e.RetryAfter
}

func New(status int, method, endpoint, detail string) *Error {
	return &Error{Status: status, Method: method, Endpoint: endpoint, Detail: detail}
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
