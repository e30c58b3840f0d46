// Package services holds the per-resource sync units of the client.
//
// Each service reads from the local cache and writes through the remote
// API: a write calls the server first and, once it succeeds, stores the
// server's response in the cache and publishes the change before returning.
// Failed writes leave the cache as it was, except that a 404 evicts the
// stale row.
//
// Read operations return watch streams. They never fail: cache errors are
// logged and surface as an empty list or a nil entity.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

var (
	// ErrValidation is returned before any network call when a required
	// field is blank or a value is out of range.
	ErrValidation = common.ErrValidation

	ErrNotSignedIn      = errors.New("not signed in")
	ErrUploadsDisabled  = errors.New("media uploads are not configured")
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", common.ErrValidation)
)

// Collection is the capability set shared by the network-backed services
// and the in-memory implementations. parentID is the owner, workspace,
// project or task id, depending on the resource.
type Collection[T, In any] interface {
	ObserveCollection(ctx context.Context, parentID int64) *watch.Stream[[]T]
	ObserveByID(ctx context.Context, id int64) *watch.Stream[*T]
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int64, in In) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Refresh(ctx context.Context, parentID int64) error
}

// Deps are the collaborators every service needs.
type Deps struct {
	DB  *sql.DB
	Hub *watch.Hub
	Log logging.Logger
}

func (d Deps) logger() logging.Logger {
	if d.Log == nil {
		return logging.Nop()
	}
	return d.Log
}

func required(field, value string) error {
	if common.IsBlank(value) {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}

func positive(field string, v int64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrValidation, field)
	}
	return nil
}
