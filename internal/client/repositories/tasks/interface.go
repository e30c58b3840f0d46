// Package tasks caches tasks together with their task_tags, task_media and
// task_assignees join rows. It is the only writer of those join tables.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*models.TaskRow, error)
	ListByProject(ctx context.Context, projectID int64) ([]models.TaskRow, error)
	ListBookmarked(ctx context.Context) ([]models.TaskRow, error)
	ListAssignedTo(ctx context.Context, userID int64) ([]models.TaskRow, error)

	// Upsert writes the task and replaces its join rows. It issues several
	// statements, so callers should run it inside dbx.WithTx.
	Upsert(ctx context.Context, row models.TaskRow) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByProjectExcept(ctx context.Context, projectID int64, keep []int64) (int64, error)

	SetMediaLinks(ctx context.Context, taskID int64, mediaIDs []int64) error
	AddMediaLink(ctx context.Context, taskID, mediaID int64) error
	RemoveMediaLinks(ctx context.Context, mediaID int64) error
	RemoveTagLinks(ctx context.Context, tagID int64) error
}
