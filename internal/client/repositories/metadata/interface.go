// Package metadata keeps single-value settings of the local cache in one
// key/value table: the persisted auth token and the last sync time.
package metadata

import (
	"context"
)

// Key names a metadata slot.
type Key string

const (
	KeyAuthToken Key = "auth_token"
	// KeyLastSync holds the RFC 3339 time of the last successful sync.
	KeyLastSync Key = "last_sync"
)

type Repository interface {
	// Get reports ok=false for an unset slot.
	Get(ctx context.Context, key Key) (value string, ok bool, err error)
	Put(ctx context.Context, key Key, value string) error
	Delete(ctx context.Context, keys ...Key) error
}
