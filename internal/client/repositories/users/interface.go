// Package users caches user accounts fetched from the server.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type Repository interface {
	// Get returns (nil, nil) when the user is not cached.
	Get(ctx context.Context, id int64) (*models.UserRow, error)
	Upsert(ctx context.Context, row models.UserRow) error
	Delete(ctx context.Context, id int64) (bool, error)
}
