package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/mapper"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/tags"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// TagService caches the global tag catalog and the task-tag links.
type TagService struct {
	deps Deps
	log  logging.Logger
	api  remote.TagAPI
}

func NewTagService(deps Deps, api remote.TagAPI) *TagService {
	return &TagService{deps: deps, log: deps.logger(), api: api}
}

func (s *TagService) ObserveAll(ctx context.Context) *watch.Stream[[]models.Tag] {
	return watch.Watch(ctx, s.deps.Hub, s.log, func(ctx context.Context) ([]models.Tag, error) {
		rows, err := tags.NewSQLiteRepository(s.deps.DB).List(ctx)
		if err != nil {
			return nil, err
		}
		return mapper.Map(rows, mapper.TagRowToModel), nil
	}, []models.Tag{}, watch.TopicTags)
}

// ObserveForTask re-emits when either a tag or a task-tag link changes.
func (s *TagService) ObserveForTask(ctx context.Context, taskID int64) *watch.Stream[[]models.Tag] {
	return watch.Watch(ctx, s.deps.Hub, s.log, func(ctx context.Context) ([]models.Tag, error) {
		rows, err := tags.NewSQLiteRepository(s.deps.DB).ListForTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		return mapper.Map(rows, mapper.TagRowToModel), nil
	}, []models.Tag{}, watch.TopicTags, watch.TopicTasks)
}

// Refresh replaces the cached catalog with the server's.
func (s *TagService) Refresh(ctx context.Context) error {
	dtos, err := s.api.ListTags(ctx)
	if err != nil {
		s.log.Warn(ctx, "remote fetch failed", "resource", "tag", "error", err)
		return err
	}
	err = dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := tags.NewSQLiteRepository(tx)
		keep := make([]int64, 0, len(dtos))
		for _, d := range dtos {
			if err := repo.Upsert(ctx, mapper.TagDTOToRow(d)); err != nil {
				return err
			}
			keep = append(keep, d.ID)
		}
		_, err := repo.DeleteExcept(ctx, keep)
		return err
	})
	if err != nil {
		return fmt.Errorf("refresh tags: %w", err)
	}
	s.deps.Hub.Publish(watch.TopicTags)
	return nil
}

func (s *TagService) Create(ctx context.Context, title, color string) (*models.Tag, error) {
	if err := required("title", title); err != nil {
		return nil, err
	}
	dto, err := s.api.CreateTag(ctx, remote.TagRequest{Title: title, Color: color})
	if err != nil {
		s.log.Warn(ctx, "remote create failed", "resource", "tag", "error", err)
		return nil, err
	}
	m := mapper.TagDTOToModel(*dto)
	if err := tags.NewSQLiteRepository(s.deps.DB).Upsert(ctx, mapper.TagModelToRow(m)); err != nil {
		return nil, fmt.Errorf("cache tag: %w", err)
	}
	s.deps.Hub.Publish(watch.TopicTags)
	return &m, nil
}

// Delete removes the tag and every link to it. It follows the Delete
// contract of Collection.
func (s *TagService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := s.api.DeleteTag(ctx, id); err != nil {
		if !errors.Is(err, remote.ErrNotFound) {
			s.log.Warn(ctx, "remote delete failed", "resource", "tag", "id", id, "error", err)
			return false, err
		}
		if _, evictErr := s.evict(ctx, id); evictErr != nil {
			return false, evictErr
		}
		return false, nil
	}
	return s.evict(ctx, id)
}

func (s *TagService) evict(ctx context.Context, id int64) (bool, error) {
	var existed bool
	err := dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := tasks.NewSQLiteRepository(tx).RemoveTagLinks(ctx, id); err != nil {
			return err
		}
		var err error
		existed, err = tags.NewSQLiteRepository(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("evict tag %d: %w", id, err)
	}
	if existed {
		s.deps.Hub.Publish(watch.TopicTags, watch.TopicTasks)
	}
	return existed, nil
}

// Attach links tagID to taskID and caches the task the server returns.
func (s *TagService) Attach(ctx context.Context, taskID, tagID int64) (*models.Task, error) {
	dto, err := s.api.AttachTag(ctx, taskID, tagID)
	if err != nil {
		s.log.Warn(ctx, "remote attach failed", "task_id", taskID, "tag_id", tagID, "error", err)
		return nil, err
	}
	return s.storeTask(ctx, *dto)
}

func (s *TagService) Detach(ctx context.Context, taskID, tagID int64) (*models.Task, error) {
	dto, err := s.api.DetachTag(ctx, taskID, tagID)
	if err != nil {
		s.log.Warn(ctx, "remote detach failed", "task_id", taskID, "tag_id", tagID, "error", err)
		return nil, err
	}
	return s.storeTask(ctx, *dto)
}

func (s *TagService) storeTask(ctx context.Context, d remote.TaskResponse) (*models.Task, error) {
	var m models.Task
	err := dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		m, err = saveTask(ctx, tx, d)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cache task: %w", err)
	}
	s.deps.Hub.Publish(watch.TopicTasks)
	return &m, nil
}
