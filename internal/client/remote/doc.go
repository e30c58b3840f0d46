// Package remote is the REST client of the task-management API.
//
// # Overview
//
// HTTPClient issues one request per resource/verb pair and decodes the
// {"content": T} envelope of successful responses into the DTOs declared in
// dto.go. Each call is a single attempt: nothing here retries.
//
// Every request carries an X-Request-ID and, when the TokenSource returns a
// non-empty token, an "Authorization: Bearer <token>" header. Outbound calls
// are paced by an optional token-bucket limiter.
//
// # Error Handling
//
// Non-2xx responses become *HTTPError. Its Unwrap maps the status code to a
// sentinel so callers can use errors.Is: ErrUnauthorized (401),
// ErrPermissionDenied (403), ErrNotFound (404), ErrConflict (409), ErrServer
// (5xx). Transport timeouts and context deadlines are reported as ErrTimeout.
package remote
