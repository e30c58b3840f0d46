// Package models defines the client-side domain types of taskkeeper and the
// cache rows they are persisted as.
//
// Timestamps are kept as the strings the server sent. They are compared by
// equality, never parsed, and never synthesized on the client.
package models
