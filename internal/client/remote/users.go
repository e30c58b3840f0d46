package remote

import (
	"context"
	"fmt"
	"net/http"
)

type UserAPI interface {
	GetUser(ctx context.Context, id int64) (*UserResponse, error)
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	u, err := content[UserResponse](ctx, c, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
