package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/taskkeeper/internal/client/mapper"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/media"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// BlobStore stores attachment bytes and returns the URL they are served
// from.
type BlobStore interface {
	Put(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// MediaService caches task attachments.
type MediaService struct {
	deps  Deps
	log   logging.Logger
	api   remote.MediaAPI
	blobs BlobStore
}

// NewMediaService returns a MediaService. blobs may be nil, in which case
// Upload fails with ErrUploadsDisabled.
func NewMediaService(deps Deps, api remote.MediaAPI, blobs BlobStore) *MediaService {
	return &MediaService{deps: deps, log: deps.logger(), api: api, blobs: blobs}
}

func (s *MediaService) ObserveForTask(ctx context.Context, taskID int64) *watch.Stream[[]models.Media] {
	return watch.Watch(ctx, s.deps.Hub, s.log, func(ctx context.Context) ([]models.Media, error) {
		rows, err := media.NewSQLiteRepository(s.deps.DB).ListForTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		return mapper.Map(rows, mapper.MediaRowToModel), nil
	}, []models.Media{}, watch.TopicMedia, watch.TopicTasks)
}

// RefreshForTask caches the task's media and makes them its only links.
func (s *MediaService) RefreshForTask(ctx context.Context, taskID int64) error {
	dtos, err := s.api.ListMedia(ctx, taskID)
	if err != nil {
		s.log.Warn(ctx, "remote fetch failed", "resource", "media", "task_id", taskID, "error", err)
		return err
	}
	err = dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := media.NewSQLiteRepository(tx)
		ids := make([]int64, 0, len(dtos))
		for _, d := range dtos {
			if err := repo.Upsert(ctx, mapper.MediaDTOToRow(d)); err != nil {
				return err
			}
			ids = append(ids, d.ID)
		}
		return tasks.NewSQLiteRepository(tx).SetMediaLinks(ctx, taskID, ids)
	})
	if err != nil {
		return fmt.Errorf("refresh media: %w", err)
	}
	s.deps.Hub.Publish(watch.TopicMedia)
	return nil
}

// Upload stores body in the blob store, registers the resulting URL with
// the server and links the new media to the task.
func (s *MediaService) Upload(ctx context.Context, taskID int64, filename, contentType string, body io.Reader) (*models.Media, error) {
	if s.blobs == nil {
		return nil, ErrUploadsDisabled
	}
	if err := required("filename", filename); err != nil {
		return nil, err
	}
	if err := positive("task id", taskID); err != nil {
		return nil, err
	}

	url, err := s.blobs.Put(ctx, filename, contentType, body)
	if err != nil {
		s.log.Error(ctx, "blob upload failed", "filename", filename, "error", err)
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	s.log.Debug(ctx, "blob uploaded", "filename", filename, "url", url)

	dto, err := s.api.CreateMedia(ctx, remote.MediaRequest{
		Filename: filename,
		Type:     contentType,
		URL:      url,
		TaskID:   taskID,
	})
	if err != nil {
		s.log.Warn(ctx, "remote create failed", "resource", "media", "error", err)
		return nil, err
	}

	m := mapper.MediaDTOToModel(*dto)
	err = dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := media.NewSQLiteRepository(tx).Upsert(ctx, mapper.MediaModelToRow(m)); err != nil {
			return err
		}
		return tasks.NewSQLiteRepository(tx).AddMediaLink(ctx, taskID, m.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("cache media: %w", err)
	}
	s.deps.Hub.Publish(watch.TopicMedia, watch.TopicTasks)
	return &m, nil
}

// Delete follows the Delete contract of Collection.
func (s *MediaService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := s.api.DeleteMedia(ctx, id); err != nil {
		if !errors.Is(err, remote.ErrNotFound) {
			s.log.Warn(ctx, "remote delete failed", "resource", "media", "id", id, "error", err)
			return false, err
		}
		if _, evictErr := s.evict(ctx, id); evictErr != nil {
			return false, evictErr
		}
		return false, nil
	}
	return s.evict(ctx, id)
}

func (s *MediaService) evict(ctx context.Context, id int64) (bool, error) {
	var existed bool
	err := dbx.WithTx(ctx, s.deps.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := tasks.NewSQLiteRepository(tx).RemoveMediaLinks(ctx, id); err != nil {
			return err
		}
		var err error
		existed, err = media.NewSQLiteRepository(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("evict media %d: %w", id, err)
	}
	if existed {
		s.deps.Hub.Publish(watch.TopicMedia, watch.TopicTasks)
	}
	return existed, nil
}
