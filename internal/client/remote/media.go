package remote

import (
	"context"
	"fmt"
	"net/http"
)

type MediaAPI interface {
	ListMedia(ctx context.Context, taskID int64) ([]MediaResponse, error)
	CreateMedia(ctx context.Context, req MediaRequest) (*MediaResponse, error)
	DeleteMedia(ctx context.Context, id int64) error
}

func (c *HTTPClient) ListMedia(ctx context.Context, taskID int64) ([]MediaResponse, error) {
	return content[[]MediaResponse](ctx, c, http.MethodGet, fmt.Sprintf("/media/t/%d", taskID), nil, nil)
}

func (c *HTTPClient) CreateMedia(ctx context.Context, req MediaRequest) (*MediaResponse, error) {
	m, err := content[MediaResponse](ctx, c, http.MethodPost, "/media/", nil, req)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) DeleteMedia(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/media/%d", id), nil, nil, nil)
}
