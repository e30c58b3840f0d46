package remote

import (
	"context"
	"fmt"
	"net/http"
)

type TaskAPI interface {
	ListTasks(ctx context.Context, projectID int64) ([]TaskResponse, error)
	GetTask(ctx context.Context, id int64) (*TaskResponse, error)
	CreateTask(ctx context.Context, req TaskRequest) (*TaskResponse, error)
	UpdateTask(ctx context.Context, id int64, req TaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, id int64) error
	SetBookmark(ctx context.Context, id int64, bookmarked bool) (*TaskResponse, error)
	AddAssignee(ctx context.Context, id, userID int64) (*TaskResponse, error)
	RemoveAssignee(ctx context.Context, id, userID int64) (*TaskResponse, error)
}

func (c *HTTPClient) ListTasks(ctx context.Context, projectID int64) ([]TaskResponse, error) {
	return content[[]TaskResponse](ctx, c, http.MethodGet, fmt.Sprintf("/tasks/p/%d", projectID), nil, nil)
}

func (c *HTTPClient) GetTask(ctx context.Context, id int64) (*TaskResponse, error) {
	return c.task(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil)
}

func (c *HTTPClient) CreateTask(ctx context.Context, req TaskRequest) (*TaskResponse, error) {
	return c.task(ctx, http.MethodPost, "/tasks/", req)
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id int64, req TaskRequest) (*TaskResponse, error) {
	return c.task(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), req)
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil, nil)
}

func (c *HTTPClient) SetBookmark(ctx context.Context, id int64, bookmarked bool) (*TaskResponse, error) {
	return c.task(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/bookmark", id), BookmarkRequest{Bookmarked: bookmarked})
}

func (c *HTTPClient) AddAssignee(ctx context.Context, id, userID int64) (*TaskResponse, error) {
	return c.task(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/assignees", id), AssigneeRequest{UserID: userID})
}

func (c *HTTPClient) RemoveAssignee(ctx context.Context, id, userID int64) (*TaskResponse, error) {
	return c.task(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d/assignees/%d", id, userID), nil)
}

func (c *HTTPClient) task(ctx context.Context, method, path string, body any) (*TaskResponse, error) {
	t, err := content[TaskResponse](ctx, c, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
