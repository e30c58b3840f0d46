package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrServer           = errors.New("server error")
	ErrTimeout          = errors.New("request timed out")
	ErrEmptyToken       = errors.New("server returned an empty token")
)

// HTTPError describes a non-2xx response.
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
	RequestID  string
	// Message is the server-provided text, if any.
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap exposes the sentinel matching the status code, if there is one.
func (e *HTTPError) Unwrap() error {
	return statusError(e.StatusCode)
}

func statusError(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrPermissionDenied
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code >= http.StatusInternalServerError:
		return ErrServer
	}
	return nil
}
