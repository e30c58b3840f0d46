// Package tags caches the global tag catalog.
package tags

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.TagRow, error)
	List(ctx context.Context) ([]models.TagRow, error)
	// ListForTask reads task_tags but never writes it.
	ListForTask(ctx context.Context, taskID int64) ([]models.TagRow, error)
	Upsert(ctx context.Context, row models.TagRow) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteExcept(ctx context.Context, keep []int64) (int64, error)
}
