// Package common contains shared constants and sentinel errors used across
// taskkeeper components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header value.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName carries a per-call correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
