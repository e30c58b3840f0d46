package remote

import (
	"context"
	"fmt"
	"net/http"
)

type TagAPI interface {
	ListTags(ctx context.Context) ([]TagResponse, error)
	CreateTag(ctx context.Context, req TagRequest) (*TagResponse, error)
	DeleteTag(ctx context.Context, id int64) error
	AttachTag(ctx context.Context, taskID, tagID int64) (*TaskResponse, error)
	DetachTag(ctx context.Context, taskID, tagID int64) (*TaskResponse, error)
}

func (c *HTTPClient) ListTags(ctx context.Context) ([]TagResponse, error) {
	return content[[]TagResponse](ctx, c, http.MethodGet, "/tags/", nil, nil)
}

func (c *HTTPClient) CreateTag(ctx context.Context, req TagRequest) (*TagResponse, error) {
	t, err := content[TagResponse](ctx, c, http.MethodPost, "/tags/", nil, req)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) DeleteTag(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tags/%d", id), nil, nil, nil)
}

func (c *HTTPClient) AttachTag(ctx context.Context, taskID, tagID int64) (*TaskResponse, error) {
	return c.task(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/tags/%d", taskID, tagID), nil)
}

func (c *HTTPClient) DetachTag(ctx context.Context, taskID, tagID int64) (*TaskResponse, error) {
	return c.task(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d/tags/%d", taskID, tagID), nil)
}
