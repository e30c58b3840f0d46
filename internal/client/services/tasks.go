package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/mapper"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

// TaskInput is the editable part of a task. A blank Status means pending.
type TaskInput struct {
	Title       string
	Description string
	Deadline    *string
	Timer       int64
	Status      models.Status
	ProjectID   int64
}

func (in TaskInput) request() remote.TaskRequest {
	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	return remote.TaskRequest{
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Timer:       in.Timer,
		Status:      status,
		ProjectID:   in.ProjectID,
	}
}

func taskInputOf(t models.Task) TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Timer:       t.Timer,
		Status:      t.Status,
		ProjectID:   t.ProjectID,
	}
}

// TaskService is a Collection keyed by project id, plus bookmarks,
// assignees and status changes.
type TaskService struct {
	*cached[models.Task, TaskInput, remote.TaskResponse]
	api remote.TaskAPI
}

var _ Collection[models.Task, TaskInput] = (*TaskService)(nil)

func getTask(ctx context.Context, q dbx.DBTX, id int64) (*models.Task, error) {
	row, err := tasks.NewSQLiteRepository(q).Get(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	m := mapper.TaskRowToModel(*row)
	return &m, nil
}

func saveTask(ctx context.Context, tx dbx.DBTX, d remote.TaskResponse) (models.Task, error) {
	m := mapper.TaskDTOToModel(d)
	return m, tasks.NewSQLiteRepository(tx).Upsert(ctx, mapper.TaskModelToRow(m))
}

func NewTaskService(deps Deps, api remote.TaskAPI) *TaskService {
	c := &cached[models.Task, TaskInput, remote.TaskResponse]{
		name:        "task",
		db:          deps.DB,
		hub:         deps.Hub,
		log:         deps.logger(),
		writeTopics: []watch.Topic{watch.TopicTasks},
		readTopics:  []watch.Topic{watch.TopicTasks},
		validate: func(in TaskInput) error {
			if err := required("title", in.Title); err != nil {
				return err
			}
			if in.Status != "" && !in.Status.Valid() {
				return fmt.Errorf("%w: %w", ErrValidation, models.ErrInvalidStatus)
			}
			if in.Timer < 0 {
				return fmt.Errorf("%w: timer must not be negative", ErrValidation)
			}
			return positive("project id", in.ProjectID)
		},
		get: getTask,
		list: func(ctx context.Context, q dbx.DBTX, projectID int64) ([]models.Task, error) {
			rows, err := tasks.NewSQLiteRepository(q).ListByProject(ctx, projectID)
			if err != nil {
				return nil, err
			}
			return mapper.Map(rows, mapper.TaskRowToModel), nil
		},
		save: saveTask,
		evict: func(ctx context.Context, tx dbx.DBTX, id int64) (bool, error) {
			return tasks.NewSQLiteRepository(tx).Delete(ctx, id)
		},
		prune: func(ctx context.Context, tx dbx.DBTX, projectID int64, keep []int64) error {
			_, err := tasks.NewSQLiteRepository(tx).DeleteByProjectExcept(ctx, projectID, keep)
			return err
		},
		idOf:  func(d remote.TaskResponse) int64 { return d.ID },
		fetch: api.ListTasks,
		create: func(ctx context.Context, in TaskInput) (*remote.TaskResponse, error) {
			return api.CreateTask(ctx, in.request())
		},
		update: func(ctx context.Context, id int64, in TaskInput) (*remote.TaskResponse, error) {
			return api.UpdateTask(ctx, id, in.request())
		},
		remove: api.DeleteTask,
	}
	return &TaskService{cached: c, api: api}
}

func (s *TaskService) observe(ctx context.Context, load func(ctx context.Context, r *tasks.SQLiteRepository) ([]models.TaskRow, error)) *watch.Stream[[]models.Task] {
	return watch.Watch(ctx, s.hub, s.log, func(ctx context.Context) ([]models.Task, error) {
		rows, err := load(ctx, tasks.NewSQLiteRepository(s.db))
		if err != nil {
			return nil, err
		}
		return mapper.Map(rows, mapper.TaskRowToModel), nil
	}, []models.Task{}, s.readTopics...)
}

func (s *TaskService) ObserveBookmarked(ctx context.Context) *watch.Stream[[]models.Task] {
	return s.observe(ctx, func(ctx context.Context, r *tasks.SQLiteRepository) ([]models.TaskRow, error) {
		return r.ListBookmarked(ctx)
	})
}

func (s *TaskService) ObserveAssignedTo(ctx context.Context, userID int64) *watch.Stream[[]models.Task] {
	return s.observe(ctx, func(ctx context.Context, r *tasks.SQLiteRepository) ([]models.TaskRow, error) {
		return r.ListAssignedTo(ctx, userID)
	})
}

// RefreshOne fetches a single task; a 404 evicts it.
func (s *TaskService) RefreshOne(ctx context.Context, id int64) (*models.Task, error) {
	dto, err := s.api.GetTask(ctx, id)
	if err != nil {
		return nil, s.remoteFailed(ctx, "fetch", id, err)
	}
	return s.store(ctx, *dto)
}

// Bookmark flips the bookmark on task id and returns the state the server
// settled on. An uncached task counts as not bookmarked.
func (s *TaskService) Bookmark(ctx context.Context, id int64) (bool, error) {
	current, err := s.get(ctx, s.db, id)
	if err != nil {
		return false, fmt.Errorf("read task %d: %w", id, err)
	}
	want := current == nil || !current.Bookmarked

	dto, err := s.api.SetBookmark(ctx, id, want)
	if err != nil {
		return false, s.remoteFailed(ctx, "bookmark", id, err)
	}
	t, err := s.store(ctx, *dto)
	if err != nil {
		return false, err
	}
	return t.Bookmarked, nil
}

func (s *TaskService) Assign(ctx context.Context, id, userID int64) (*models.Task, error) {
	if err := positive("user id", userID); err != nil {
		return nil, err
	}
	dto, err := s.api.AddAssignee(ctx, id, userID)
	if err != nil {
		return nil, s.remoteFailed(ctx, "assign", id, err)
	}
	return s.store(ctx, *dto)
}

func (s *TaskService) Unassign(ctx context.Context, id, userID int64) (*models.Task, error) {
	if err := positive("user id", userID); err != nil {
		return nil, err
	}
	dto, err := s.api.RemoveAssignee(ctx, id, userID)
	if err != nil {
		return nil, s.remoteFailed(ctx, "unassign", id, err)
	}
	return s.store(ctx, *dto)
}

// SetStatus updates only the status. The rest of the task comes from the
// cache, or from the server when the task is not cached.
func (s *TaskService) SetStatus(ctx context.Context, id int64, status models.Status) (*models.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrValidation, models.ErrInvalidStatus)
	}

	current, err := s.get(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("read task %d: %w", id, err)
	}
	if current == nil {
		dto, err := s.api.GetTask(ctx, id)
		if err != nil {
			return nil, s.remoteFailed(ctx, "fetch", id, err)
		}
		m := mapper.TaskDTOToModel(*dto)
		current = &m
	}

	in := taskInputOf(*current)
	in.Status = status
	return s.Update(ctx, id, in)
}
