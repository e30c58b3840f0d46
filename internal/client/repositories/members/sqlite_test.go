package members

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpsert_OneRolePerMember(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, models.MemberRow{WorkspaceID: 7, UserID: 2, RoleID: models.RoleViewer.ID}))
	require.NoError(t, r.Upsert(ctx, models.MemberRow{WorkspaceID: 7, UserID: 2, RoleID: models.RoleAdmin.ID}))
	require.NoError(t, r.Upsert(ctx, models.MemberRow{WorkspaceID: 8, UserID: 2, RoleID: models.RoleEditor.ID}))

	list, err := r.ListByWorkspace(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.RoleAdmin.ID, list[0].RoleID)

	m, err := r.Get(ctx, 8, 2)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, models.RoleEditor.ID, m.RoleID)

	m, err = r.Get(ctx, 9, 2)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestDeleteAndPrune(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	for _, uid := range []int64{1, 2, 3} {
		require.NoError(t, r.Upsert(ctx, models.MemberRow{WorkspaceID: 7, UserID: uid, RoleID: 3}))
	}

	ok, err := r.Delete(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Delete(ctx, 7, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.DeleteByWorkspaceExcept(ctx, 7, []int64{2})
	require.NoError(t, err)

	list, err := r.ListByWorkspace(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []models.MemberRow{{WorkspaceID: 7, UserID: 2, RoleID: 3}}, list)
}
