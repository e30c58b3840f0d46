// Package media caches attachment metadata. Task links live in task_media,
// which this package only reads.
package media

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.MediaRow, error)
	ListForTask(ctx context.Context, taskID int64) ([]models.MediaRow, error)
	Upsert(ctx context.Context, row models.MediaRow) error
	Delete(ctx context.Context, id int64) (bool, error)
}
