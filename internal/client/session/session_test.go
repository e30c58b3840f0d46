package session

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskkeeper/internal/client/store"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *metadata.SQLiteRepository {
	t.Helper()
	db, err := store.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return metadata.NewSQLiteRepository(db)
}

type failingStore struct {
	metadata.Repository
}

func (failingStore) Put(context.Context, metadata.Key, string) error { return errors.New("disk full") }

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestHolder_EmptyByDefault(t *testing.T) {
	h := NewHolder(newStore(t), nil)
	assert.Equal(t, "", h.Token())
	_, ok := h.UserID()
	assert.False(t, ok)
}

func TestHolder_SetTokenPersistsAndLoads(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	hub := watch.NewHub()

	h := NewHolder(st, hub)
	require.NoError(t, h.SetToken(ctx, "tok123"))
	assert.Equal(t, "tok123", h.Token())
	assert.Equal(t, uint64(1), hub.Version(watch.TopicSession))

	restored := NewHolder(st, nil)
	require.NoError(t, restored.Load(ctx))
	assert.Equal(t, "tok123", restored.Token())

	require.NoError(t, restored.Clear(ctx))
	assert.Equal(t, "", restored.Token())

	again := NewHolder(st, nil)
	require.NoError(t, again.Load(ctx))
	assert.Equal(t, "", again.Token())
}

func TestHolder_FailedPersistKeepsOldToken(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(newStore(t), nil)
	require.NoError(t, h.SetToken(ctx, "old"))

	h.store = failingStore{Repository: h.store}
	err := h.SetToken(ctx, "new")
	require.ErrorContains(t, err, "persist token")
	assert.Equal(t, "old", h.Token())
}

func TestUserIDFromToken(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		want   int64
		wantOK bool
	}{
		{"id claim", signed(t, jwt.MapClaims{"id": 42}), 42, true},
		{"userId claim", signed(t, jwt.MapClaims{"userId": 7}), 7, true},
		{"numeric sub", signed(t, jwt.MapClaims{"sub": "9"}), 9, true},
		{"id wins over sub", signed(t, jwt.MapClaims{"id": 1, "sub": "2"}), 1, true},
		{"non-numeric sub", signed(t, jwt.MapClaims{"sub": "ann"}), 0, false},
		{"no claims", signed(t, jwt.MapClaims{"name": "ann"}), 0, false},
		{"opaque token", "tok123", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := UserIDFromToken(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}
