// Package httpc implements the HTTP client used by the domain gateway.
package httpc

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTimeout marks a request that exceeded its deadline and was aborted.
var ErrTimeout = errors.New("request timed out")

// Error carries the status code and raw body of a non-2xx response.
// Detail holds the backend's human-readable "detail" field when present.
type Error struct {
	Status int
	Body   []byte
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %d %s: %s", e.Status, http.StatusText(e.Status), e.Detail)
	}
	return fmt.Sprintf("backend: %d %s", e.Status, http.StatusText(e.Status))
}

// IsStatus reports whether err is a backend error with the given status code.
func IsStatus(err error, status int) bool {
	var be *Error
	return errors.As(err, &be) && be.Status == status
}

// IsConflict reports whether err is an HTTP 409, meaning another actor
// already resolved the resource.
func IsConflict(err error) bool {
	return IsStatus(err, http.StatusConflict)
}

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsTimeout reports whether err is a timeout-kind failure.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
