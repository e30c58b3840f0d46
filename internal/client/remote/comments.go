package remote

import (
	"context"
	"fmt"
	"net/http"
)

type CommentAPI interface {
	ListComments(ctx context.Context, taskID int64) ([]CommentResponse, error)
	CreateComment(ctx context.Context, req CommentRequest) (*CommentResponse, error)
	UpdateComment(ctx context.Context, id int64, req CommentRequest) (*CommentResponse, error)
	DeleteComment(ctx context.Context, id int64) error
}

func (c *HTTPClient) ListComments(ctx context.Context, taskID int64) ([]CommentResponse, error) {
	return content[[]CommentResponse](ctx, c, http.MethodGet, fmt.Sprintf("/comments/t/%d", taskID), nil, nil)
}

func (c *HTTPClient) CreateComment(ctx context.Context, req CommentRequest) (*CommentResponse, error) {
	cm, err := content[CommentResponse](ctx, c, http.MethodPost, "/comments/", nil, req)
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *HTTPClient) UpdateComment(ctx context.Context, id int64, req CommentRequest) (*CommentResponse, error) {
	cm, err := content[CommentResponse](ctx, c, http.MethodPut, fmt.Sprintf("/comments/%d", id), nil, req)
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil, nil)
}
