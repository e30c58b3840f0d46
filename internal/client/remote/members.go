package remote

import (
	"context"
	"fmt"
	"net/http"
)

type MemberAPI interface {
	ListMembers(ctx context.Context, workspaceID int64) ([]MemberResponse, error)
	AddMember(ctx context.Context, workspaceID int64, req MemberRequest) (*MemberResponse, error)
	UpdateMember(ctx context.Context, workspaceID, userID int64, req MemberRequest) (*MemberResponse, error)
	RemoveMember(ctx context.Context, workspaceID, userID int64) error
}

func (c *HTTPClient) ListMembers(ctx context.Context, workspaceID int64) ([]MemberResponse, error) {
	return content[[]MemberResponse](ctx, c, http.MethodGet, fmt.Sprintf("/workspaces/%d/members", workspaceID), nil, nil)
}

func (c *HTTPClient) AddMember(ctx context.Context, workspaceID int64, req MemberRequest) (*MemberResponse, error) {
	m, err := content[MemberResponse](ctx, c, http.MethodPost, fmt.Sprintf("/workspaces/%d/members", workspaceID), nil, req)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) UpdateMember(ctx context.Context, workspaceID, userID int64, req MemberRequest) (*MemberResponse, error) {
	path := fmt.Sprintf("/workspaces/%d/members/%d", workspaceID, userID)
	m, err := content[MemberResponse](ctx, c, http.MethodPut, path, nil, req)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) RemoveMember(ctx context.Context, workspaceID, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/workspaces/%d/members/%d", workspaceID, userID), nil, nil, nil)
}
