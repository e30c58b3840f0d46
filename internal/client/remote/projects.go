package remote

import (
	"context"
	"fmt"
	"net/http"
)

type ProjectAPI interface {
	ListProjects(ctx context.Context, workspaceID int64) ([]ProjectResponse, error)
	GetProject(ctx context.Context, id int64) (*ProjectResponse, error)
	CreateProject(ctx context.Context, req ProjectRequest) (*ProjectResponse, error)
	UpdateProject(ctx context.Context, id int64, req ProjectRequest) (*ProjectResponse, error)
	DeleteProject(ctx context.Context, id int64) error
}

func (c *HTTPClient) ListProjects(ctx context.Context, workspaceID int64) ([]ProjectResponse, error) {
	return content[[]ProjectResponse](ctx, c, http.MethodGet, fmt.Sprintf("/projects/w/%d", workspaceID), nil, nil)
}

func (c *HTTPClient) GetProject(ctx context.Context, id int64) (*ProjectResponse, error) {
	p, err := content[ProjectResponse](ctx, c, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) CreateProject(ctx context.Context, req ProjectRequest) (*ProjectResponse, error) {
	p, err := content[ProjectResponse](ctx, c, http.MethodPost, "/projects/", nil, req)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProject(ctx context.Context, id int64, req ProjectRequest) (*ProjectResponse, error) {
	p, err := content[ProjectResponse](ctx, c, http.MethodPut, fmt.Sprintf("/projects/%d", id), nil, req)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil, nil)
}
