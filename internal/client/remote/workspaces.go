package remote

import (
	"context"
	"fmt"
	"net/http"
)

type WorkspaceAPI interface {
	GetWorkspace(ctx context.Context, id int64) (*WorkspaceResponse, error)
	ListWorkspaces(ctx context.Context, ownerID int64) ([]WorkspaceResponse, error)
	CreateWorkspace(ctx context.Context, req WorkspaceRequest) (*WorkspaceResponse, error)
	UpdateWorkspace(ctx context.Context, id int64, req WorkspaceRequest) (*WorkspaceResponse, error)
	DeleteWorkspace(ctx context.Context, id int64) error
}

func (c *HTTPClient) GetWorkspace(ctx context.Context, id int64) (*WorkspaceResponse, error) {
	w, err := content[WorkspaceResponse](ctx, c, http.MethodGet, fmt.Sprintf("/workspaces/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) ListWorkspaces(ctx context.Context, ownerID int64) ([]WorkspaceResponse, error) {
	return content[[]WorkspaceResponse](ctx, c, http.MethodGet, fmt.Sprintf("/workspaces/u/%d", ownerID), nil, nil)
}

func (c *HTTPClient) CreateWorkspace(ctx context.Context, req WorkspaceRequest) (*WorkspaceResponse, error) {
	w, err := content[WorkspaceResponse](ctx, c, http.MethodPost, "/workspaces/", nil, req)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// UpdateWorkspace and DeleteWorkspace use the singular /workspace/ prefix,
// which is what the API exposes for these two verbs.
func (c *HTTPClient) UpdateWorkspace(ctx context.Context, id int64, req WorkspaceRequest) (*WorkspaceResponse, error) {
	w, err := content[WorkspaceResponse](ctx, c, http.MethodPut, fmt.Sprintf("/workspace/%d", id), nil, req)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) DeleteWorkspace(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/workspace/%d", id), nil, nil, nil)
}
