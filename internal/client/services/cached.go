package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// cached implements Collection for one entity type. T is the domain model,
// In the create/update input and DTO the remote response.
type cached[T, In, DTO any] struct {
	name string
	db   *sql.DB
	hub  *watch.Hub
	log  logging.Logger

	// writeTopics are published after every committed write; readTopics
	// wake the observe streams.
	writeTopics []watch.Topic
	readTopics  []watch.Topic

	validate func(In) error

	get   func(ctx context.Context, q dbx.DBTX, id int64) (*T, error)
	list  func(ctx context.Context, q dbx.DBTX, parentID int64) ([]T, error)
	save  func(ctx context.Context, tx dbx.DBTX, dto DTO) (T, error)
	evict func(ctx context.Context, tx dbx.DBTX, id int64) (bool, error)
	prune func(ctx context.Context, tx dbx.DBTX, parentID int64, keep []int64) error
	idOf  func(DTO) int64

	fetch  func(ctx context.Context, parentID int64) ([]DTO, error)
	create func(ctx context.Context, in In) (*DTO, error)
	update func(ctx context.Context, id int64, in In) (*DTO, error)
	remove func(ctx context.Context, id int64) error
}

func (c *cached[T, In, DTO]) ObserveCollection(ctx context.Context, parentID int64) *watch.Stream[[]T] {
	return watch.Watch(ctx, c.hub, c.log, func(ctx context.Context) ([]T, error) {
		return c.list(ctx, c.db, parentID)
	}, []T{}, c.readTopics...)
}

func (c *cached[T, In, DTO]) ObserveByID(ctx context.Context, id int64) *watch.Stream[*T] {
	return watch.Watch(ctx, c.hub, c.log, func(ctx context.Context) (*T, error) {
		return c.get(ctx, c.db, id)
	}, nil, c.readTopics...)
}

func (c *cached[T, In, DTO]) Create(ctx context.Context, in In) (*T, error) {
	if err := c.validate(in); err != nil {
		return nil, err
	}
	dto, err := c.create(ctx, in)
	if err != nil {
		c.log.Warn(ctx, "remote create failed", "resource", c.name, "error", err)
		return nil, err
	}
	return c.store(ctx, *dto)
}

func (c *cached[T, In, DTO]) Update(ctx context.Context, id int64, in In) (*T, error) {
	if err := c.validate(in); err != nil {
		return nil, err
	}
	dto, err := c.update(ctx, id, in)
	if err != nil {
		return nil, c.remoteFailed(ctx, "update", id, err)
	}
	return c.store(ctx, *dto)
}

// Delete returns whether a cached row was removed. A 404 from the server
// means the entity is already gone: the row is evicted and no error is
// returned.
func (c *cached[T, In, DTO]) Delete(ctx context.Context, id int64) (bool, error) {
	if err := c.remove(ctx, id); err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			if _, evictErr := c.evictID(ctx, id); evictErr != nil {
				return false, evictErr
			}
			return false, nil
		}
		c.log.Warn(ctx, "remote delete failed", "resource", c.name, "id", id, "error", err)
		return false, err
	}
	return c.evictID(ctx, id)
}

// Refresh replaces the cached children of parentID with the server's list.
func (c *cached[T, In, DTO]) Refresh(ctx context.Context, parentID int64) error {
	dtos, err := c.fetch(ctx, parentID)
	if err != nil {
		c.log.Warn(ctx, "remote fetch failed", "resource", c.name, "parent_id", parentID, "error", err)
		return err
	}

	err = dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		keep := make([]int64, 0, len(dtos))
		for _, d := range dtos {
			if _, err := c.save(ctx, tx, d); err != nil {
				return err
			}
			keep = append(keep, c.idOf(d))
		}
		return c.prune(ctx, tx, parentID, keep)
	})
	if err != nil {
		return fmt.Errorf("refresh %s: %w", c.name, err)
	}
	c.hub.Publish(c.writeTopics...)
	return nil
}

// store writes the server's version of an entity and publishes the change.
func (c *cached[T, In, DTO]) store(ctx context.Context, dto DTO) (*T, error) {
	var m T
	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		m, err = c.save(ctx, tx, dto)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cache %s: %w", c.name, err)
	}
	c.hub.Publish(c.writeTopics...)
	return &m, nil
}

func (c *cached[T, In, DTO]) evictID(ctx context.Context, id int64) (bool, error) {
	var existed bool
	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		existed, err = c.evict(ctx, tx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("evict %s %d: %w", c.name, id, err)
	}
	if existed {
		c.hub.Publish(c.writeTopics...)
	}
	return existed, nil
}

// remoteFailed logs err and, for a 404, evicts the stale row before
// returning err unchanged.
func (c *cached[T, In, DTO]) remoteFailed(ctx context.Context, op string, id int64, err error) error {
	c.log.Warn(ctx, "remote "+op+" failed", "resource", c.name, "id", id, "error", err)
	if errors.Is(err, remote.ErrNotFound) {
		if _, evictErr := c.evictID(ctx, id); evictErr != nil {
			c.log.Error(ctx, "evict failed", "resource", c.name, "id", id, "error", evictErr)
		}
	}
	return err
}
