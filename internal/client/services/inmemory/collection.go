// Package inmemory provides services.Collection implementations that keep
// everything in process memory. Ids come from a local counter starting at 1
// and Refresh does nothing. They back tests and offline demos.
package inmemory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// Collection stores T values keyed by an auto-incremented id.
type Collection[T, In any] struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]T

	hub   *watch.Hub
	topic watch.Topic
	log   logging.Logger
	now   func() time.Time

	// build makes the stored value for id from in. prev is nil on create.
	build    func(id int64, in In, prev *T, stamp string) T
	parentOf func(T) int64
	validate func(In) error
	clone    func(T) T
}

func newCollection[T, In any](hub *watch.Hub, topic watch.Topic) *Collection[T, In] {
	if hub == nil {
		hub = watch.NewHub()
	}
	return &Collection[T, In]{
		items: make(map[int64]T),
		hub:   hub,
		topic: topic,
		log:   logging.Nop(),
		now:   time.Now,
		clone: func(v T) T { return v },
	}
}

func (c *Collection[T, In]) ObserveCollection(ctx context.Context, parentID int64) *watch.Stream[[]T] {
	return watch.Watch(ctx, c.hub, c.log, func(context.Context) ([]T, error) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		out := []T{}
		for _, id := range c.sortedIDs() {
			if v := c.items[id]; c.parentOf(v) == parentID {
				out = append(out, c.clone(v))
			}
		}
		return out, nil
	}, []T{}, c.topic)
}

func (c *Collection[T, In]) ObserveByID(ctx context.Context, id int64) *watch.Stream[*T] {
	return watch.Watch(ctx, c.hub, c.log, func(context.Context) (*T, error) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		v, ok := c.items[id]
		if !ok {
			return nil, nil
		}
		v = c.clone(v)
		return &v, nil
	}, nil, c.topic)
}

func (c *Collection[T, In]) Create(_ context.Context, in In) (*T, error) {
	if err := c.validate(in); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.nextID++
	v := c.build(c.nextID, in, nil, c.stamp())
	c.items[c.nextID] = v
	c.mu.Unlock()

	c.hub.Publish(c.topic)
	v = c.clone(v)
	return &v, nil
}

func (c *Collection[T, In]) Update(_ context.Context, id int64, in In) (*T, error) {
	if err := c.validate(in); err != nil {
		return nil, err
	}
	c.mu.Lock()
	prev, ok := c.items[id]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%d: %w", id, common.ErrorNotFound)
	}
	v := c.build(id, in, &prev, c.stamp())
	c.items[id] = v
	c.mu.Unlock()

	c.hub.Publish(c.topic)
	v = c.clone(v)
	return &v, nil
}

func (c *Collection[T, In]) Delete(_ context.Context, id int64) (bool, error) {
	c.mu.Lock()
	_, ok := c.items[id]
	delete(c.items, id)
	c.mu.Unlock()

	if ok {
		c.hub.Publish(c.topic)
	}
	return ok, nil
}

func (c *Collection[T, In]) Refresh(context.Context, int64) error {
	return nil
}

// Len returns the number of stored values.
func (c *Collection[T, In]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T, In]) sortedIDs() []int64 {
	ids := make([]int64, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (c *Collection[T, In]) stamp() string {
	return c.now().UTC().Format(time.RFC3339)
}

func required(field, value string) error {
	if common.IsBlank(value) {
		return fmt.Errorf("%w: %s is required", services.ErrValidation, field)
	}
	return nil
}

func created(prev *string, stamp string) *string {
	if prev != nil {
		return prev
	}
	return &stamp
}

func NewWorkspaces(hub *watch.Hub) *Collection[models.Workspace, services.WorkspaceInput] {
	c := newCollection[models.Workspace, services.WorkspaceInput](hub, watch.TopicWorkspaces)
	c.validate = func(in services.WorkspaceInput) error { return required("title", in.Title) }
	c.parentOf = func(w models.Workspace) int64 { return w.OwnerID }
	c.build = func(id int64, in services.WorkspaceInput, prev *models.Workspace, stamp string) models.Workspace {
		w := models.Workspace{ID: id, Title: in.Title, OwnerID: in.OwnerID, UpdatedAt: &stamp}
		var was *string
		if prev != nil {
			was = prev.CreatedAt
		}
		w.CreatedAt = created(was, stamp)
		return w
	}
	return c
}

func NewProjects(hub *watch.Hub) *Collection[models.Project, services.ProjectInput] {
	c := newCollection[models.Project, services.ProjectInput](hub, watch.TopicProjects)
	c.validate = func(in services.ProjectInput) error { return required("title", in.Title) }
	c.parentOf = func(p models.Project) int64 { return p.WorkspaceID }
	c.build = func(id int64, in services.ProjectInput, prev *models.Project, stamp string) models.Project {
		p := models.Project{ID: id, Title: in.Title, Icon: in.Icon, WorkspaceID: in.WorkspaceID, UpdatedAt: &stamp}
		var was *string
		if prev != nil {
			was = prev.CreatedAt
		}
		p.CreatedAt = created(was, stamp)
		return p
	}
	return c
}

func NewTasks(hub *watch.Hub) *Collection[models.Task, services.TaskInput] {
	c := newCollection[models.Task, services.TaskInput](hub, watch.TopicTasks)
	c.validate = func(in services.TaskInput) error {
		if err := required("title", in.Title); err != nil {
			return err
		}
		if in.Status != "" && !in.Status.Valid() {
			return fmt.Errorf("%w: %w", services.ErrValidation, models.ErrInvalidStatus)
		}
		return nil
	}
	c.parentOf = func(t models.Task) int64 { return t.ProjectID }
	c.clone = func(t models.Task) models.Task {
		t.TagIDs = slices.Clone(t.TagIDs)
		t.MediaIDs = slices.Clone(t.MediaIDs)
		t.AssigneeIDs = slices.Clone(t.AssigneeIDs)
		return t
	}
	c.build = func(id int64, in services.TaskInput, prev *models.Task, stamp string) models.Task {
		t := models.Task{
			ID:          id,
			Title:       in.Title,
			Description: in.Description,
			Deadline:    in.Deadline,
			Timer:       in.Timer,
			Status:      in.Status,
			ProjectID:   in.ProjectID,
			UpdatedAt:   &stamp,
		}
		if t.Status == "" {
			t.Status = models.StatusPending
		}
		var was *string
		if prev != nil {
			was = prev.CreatedAt
			t.TagIDs, t.MediaIDs, t.AssigneeIDs = prev.TagIDs, prev.MediaIDs, prev.AssigneeIDs
			t.Bookmarked = prev.Bookmarked
		}
		t.CreatedAt = created(was, stamp)
		return t
	}
	return c
}

func NewComments(hub *watch.Hub) *Collection[models.Comment, services.CommentInput] {
	c := newCollection[models.Comment, services.CommentInput](hub, watch.TopicComments)
	c.validate = func(in services.CommentInput) error { return required("content", in.Content) }
	c.parentOf = func(cm models.Comment) int64 { return cm.TaskID }
	c.build = func(id int64, in services.CommentInput, prev *models.Comment, stamp string) models.Comment {
		cm := models.Comment{ID: id, Content: in.Content, AuthorID: in.AuthorID, TaskID: in.TaskID, UpdatedAt: &stamp}
		var was *string
		if prev != nil {
			was = prev.CreatedAt
		}
		cm.CreatedAt = created(was, stamp)
		return cm
	}
	return c
}

var (
	_ services.Collection[models.Workspace, services.WorkspaceInput] = (*Collection[models.Workspace, services.WorkspaceInput])(nil)
	_ services.Collection[models.Project, services.ProjectInput]     = (*Collection[models.Project, services.ProjectInput])(nil)
	_ services.Collection[models.Task, services.TaskInput]           = (*Collection[models.Task, services.TaskInput])(nil)
	_ services.Collection[models.Comment, services.CommentInput]     = (*Collection[models.Comment, services.CommentInput])(nil)
)
