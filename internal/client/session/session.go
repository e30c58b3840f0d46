// Package session holds the bearer token of the signed-in user.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/golang-jwt/jwt/v5"
)

// Holder is safe for concurrent readers. Writes (SetToken, Clear, Load) are
// expected from a single login/logout path.
type Holder struct {
	token atomic.Value
	store metadata.Repository
	hub   *watch.Hub
}

// NewHolder returns an empty holder backed by store. hub may be nil; when
// set, every token change is published on watch.TopicSession.
func NewHolder(store metadata.Repository, hub *watch.Hub) *Holder {
	h := &Holder{store: store, hub: hub}
	h.token.Store("")
	return h
}

// Token returns the current token, or "" when signed out.
func (h *Holder) Token() string {
	return h.token.Load().(string)
}

// SetToken persists token and then makes it visible to readers. If the
// write fails the in-memory token is left unchanged.
func (h *Holder) SetToken(ctx context.Context, token string) error {
	if err := h.store.Put(ctx, metadata.KeyAuthToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	h.swap(token)
	return nil
}

// Load restores a token saved by a previous run. A missing slot is not an
// error.
func (h *Holder) Load(ctx context.Context) error {
	token, _, err := h.store.Get(ctx, metadata.KeyAuthToken)
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	h.swap(token)
	return nil
}

// Clear signs out: the persisted slot is removed and the token emptied.
func (h *Holder) Clear(ctx context.Context) error {
	if err := h.store.Delete(ctx, metadata.KeyAuthToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	h.swap("")
	return nil
}

func (h *Holder) swap(token string) {
	h.token.Store(token)
	if h.hub != nil {
		h.hub.Publish(watch.TopicSession)
	}
}

// UserID returns the user id carried by the current token.
func (h *Holder) UserID() (int64, bool) {
	return UserIDFromToken(h.Token())
}

// UserIDFromToken reads the "id", "userId" or numeric "sub" claim of a JWT
// without verifying its signature. The server is the only verifier; the
// client uses the id for local lookups only.
func UserIDFromToken(token string) (int64, bool) {
	if token == "" {
		return 0, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser(jwt.WithJSONNumber()).ParseUnverified(token, claims); err != nil {
		return 0, false
	}
	for _, key := range []string{"id", "userId", "sub"} {
		if id, ok := claimInt(claims[key]); ok {
			return id, true
		}
	}
	return 0, false
}

func claimInt(v any) (int64, bool) {
	var (
		id  int64
		err error
	)
	switch x := v.(type) {
	case json.Number:
		id, err = x.Int64()
	case float64:
		id = int64(x)
		if float64(id) != x {
			return 0, false
		}
	case string:
		id, err = strconv.ParseInt(x, 10, 64)
	default:
		return 0, false
	}
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
