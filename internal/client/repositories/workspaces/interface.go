// Package workspaces caches workspaces keyed by server id.
package workspaces

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.WorkspaceRow, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.WorkspaceRow, error)
	Upsert(ctx context.Context, row models.WorkspaceRow) error
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteByOwnerExcept removes the owner's workspaces whose id is not in keep.
	DeleteByOwnerExcept(ctx context.Context, ownerID int64, keep []int64) (int64, error)
}
