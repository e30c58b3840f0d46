// Package common defines shared constants and sentinel errors used across
// the client layers of taskkeeper. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors raised before any network or store call.
	ErrValidation = errors.New("validation error")
)
