package services

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/mapper"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/comments"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

type CommentInput struct {
	Content  string
	AuthorID int64
	TaskID   int64
}

// CommentService is a Collection keyed by task id.
type CommentService struct {
	*cached[models.Comment, CommentInput, remote.CommentResponse]
}

var _ Collection[models.Comment, CommentInput] = (*CommentService)(nil)

func NewCommentService(deps Deps, api remote.CommentAPI) *CommentService {
	toRequest := func(in CommentInput) remote.CommentRequest {
		return remote.CommentRequest{Content: in.Content, AuthorID: in.AuthorID, TaskID: in.TaskID}
	}
	return &CommentService{cached: &cached[models.Comment, CommentInput, remote.CommentResponse]{
		name:        "comment",
		db:          deps.DB,
		hub:         deps.Hub,
		log:         deps.logger(),
		writeTopics: []watch.Topic{watch.TopicComments},
		readTopics:  []watch.Topic{watch.TopicComments},
		validate: func(in CommentInput) error {
			if err := required("content", in.Content); err != nil {
				return err
			}
			return positive("task id", in.TaskID)
		},
		get: func(ctx context.Context, q dbx.DBTX, id int64) (*models.Comment, error) {
			row, err := comments.NewSQLiteRepository(q).Get(ctx, id)
			if err != nil || row == nil {
				return nil, err
			}
			m := mapper.CommentRowToModel(*row)
			return &m, nil
		},
		list: func(ctx context.Context, q dbx.DBTX, taskID int64) ([]models.Comment, error) {
			rows, err := comments.NewSQLiteRepository(q).ListByTask(ctx, taskID)
			if err != nil {
				return nil, err
			}
			return mapper.Map(rows, mapper.CommentRowToModel), nil
		},
		save: func(ctx context.Context, tx dbx.DBTX, d remote.CommentResponse) (models.Comment, error) {
			m := mapper.CommentDTOToModel(d)
			return m, comments.NewSQLiteRepository(tx).Upsert(ctx, mapper.CommentModelToRow(m))
		},
		evict: func(ctx context.Context, tx dbx.DBTX, id int64) (bool, error) {
			return comments.NewSQLiteRepository(tx).Delete(ctx, id)
		},
		prune: func(ctx context.Context, tx dbx.DBTX, taskID int64, keep []int64) error {
			_, err := comments.NewSQLiteRepository(tx).DeleteByTaskExcept(ctx, taskID, keep)
			return err
		},
		idOf:  func(d remote.CommentResponse) int64 { return d.ID },
		fetch: api.ListComments,
		create: func(ctx context.Context, in CommentInput) (*remote.CommentResponse, error) {
			return api.CreateComment(ctx, toRequest(in))
		},
		update: func(ctx context.Context, id int64, in CommentInput) (*remote.CommentResponse, error) {
			return api.UpdateComment(ctx, id, toRequest(in))
		},
		remove: api.DeleteComment,
	}}
}
