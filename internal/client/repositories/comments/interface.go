// Package comments caches task comments.
package comments

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.CommentRow, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.CommentRow, error)
	Upsert(ctx context.Context, row models.CommentRow) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByTaskExcept(ctx context.Context, taskID int64, keep []int64) (int64, error)
}
