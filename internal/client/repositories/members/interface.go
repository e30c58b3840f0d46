// Package members caches the workspace_members join rows.
package members

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, workspaceID, userID int64) (*models.MemberRow, error)
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]models.MemberRow, error)
	Upsert(ctx context.Context, row models.MemberRow) error
	Delete(ctx context.Context, workspaceID, userID int64) (bool, error)
	DeleteByWorkspaceExcept(ctx context.Context, workspaceID int64, keepUserIDs []int64) (int64, error)
}
