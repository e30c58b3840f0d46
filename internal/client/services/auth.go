package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// TokenStore is the session side of authentication.
type TokenStore interface {
	Token() string
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthService signs users in and out.
//
// Contract:
//   - Login: exchange credentials for a token and store it.
//   - Register: create an account; the returned token is stored as well.
//   - Logout: forget the stored token.
//
// A failed Login or Register leaves the stored token untouched.
type AuthService struct {
	api    remote.AuthAPI
	tokens TokenStore
	log    logging.Logger
}

func NewAuthService(api remote.AuthAPI, tokens TokenStore, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &AuthService{api: api, tokens: tokens, log: log}
}

func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if err := required("email", email); err != nil {
		return "", err
	}
	if err := required("password", password); err != nil {
		return "", err
	}

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "error", err)
		return "", err
	}
	if err := a.tokens.SetToken(ctx, token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	a.log.Info(ctx, "signed in", "email", email)
	return token, nil
}

func (a *AuthService) Register(ctx context.Context, req remote.RegisterRequest) (string, error) {
	for _, f := range []struct{ name, value string }{
		{"full name", req.FullName},
		{"username", req.Username},
		{"email", req.Email},
		{"password", req.Password},
	} {
		if err := required(f.name, f.value); err != nil {
			return "", err
		}
	}
	if req.Password != req.ConfirmPassword {
		return "", ErrPasswordMismatch
	}

	token, err := a.api.Register(ctx, req)
	if err != nil {
		a.log.Warn(ctx, "register failed", "username", req.Username, "error", err)
		return "", err
	}
	if err := a.tokens.SetToken(ctx, token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	a.log.Info(ctx, "registered", "username", req.Username)
	return token, nil
}

func (a *AuthService) Logout(ctx context.Context) error {
	return a.tokens.Clear(ctx)
}

// SignedIn reports whether a token is held.
func (a *AuthService) SignedIn() bool {
	return a.tokens.Token() != ""
}
