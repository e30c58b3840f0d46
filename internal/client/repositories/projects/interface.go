// Package projects caches projects grouped by workspace.
package projects

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.ProjectRow, error)
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]models.ProjectRow, error)
	Upsert(ctx context.Context, row models.ProjectRow) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByWorkspaceExcept(ctx context.Context, workspaceID int64, keep []int64) (int64, error)
}
