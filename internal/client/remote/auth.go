package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req RegisterRequest) (string, error)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("password", password)

	resp, err := content[TokenResponse](ctx, c, http.MethodGet, "/users/login", q, nil)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrEmptyToken
	}
	return resp.Token, nil
}

// Register creates an account and returns its token. The server answers
// either with a bare JSON string or with the usual envelope.
func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (string, error) {
	q := url.Values{}
	q.Set("fullname", req.FullName)
	q.Set("username", req.Username)
	if req.Avatar != "" {
		q.Set("avatar", req.Avatar)
	}
	q.Set("email", req.Email)
	q.Set("password", req.Password)
	q.Set("confirmPassword", req.ConfirmPassword)

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/users/register", q, nil, &raw); err != nil {
		return "", err
	}

	token, err := decodeToken(raw)
	if err != nil {
		return "", fmt.Errorf("decode GET /users/register: %w", err)
	}
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

func decodeToken(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var env envelope[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", err
	}
	if err := json.Unmarshal(env.Content, &s); err == nil {
		return s, nil
	}
	var tr TokenResponse
	if err := json.Unmarshal(env.Content, &tr); err != nil {
		return "", err
	}
	return tr.Token, nil
}
