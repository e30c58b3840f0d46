package media

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestMediaLifecycle(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	m := models.MediaRow{ID: 4, Filename: "a.png", Type: "image/png", URL: "http://s3/a.png",
		CreatedAt: sql.NullString{String: "c", Valid: true}}
	require.NoError(t, r.Upsert(ctx, m))
	require.NoError(t, r.Upsert(ctx, models.MediaRow{ID: 5, Filename: "b.pdf", URL: "http://s3/b.pdf"}))

	got, err := r.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, m, *got)

	none, err := r.ListForTask(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, none, "media without a task link is not listed")

	_, err = db.Exec(`INSERT INTO task_media (task_id, media_id) VALUES (9, 4)`)
	require.NoError(t, err)
	list, err := r.ListForTask(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []models.MediaRow{m}, list)

	ok, err := r.Delete(ctx, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Delete(ctx, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_ScanErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM media WHERE id = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename", "type", "url", "created_at", "updated_at"}).
			AddRow("x", "f", "t", "u", nil, nil))

	_, err = NewSQLiteRepository(db).Get(context.Background(), 1)
	require.ErrorContains(t, err, "failed to get media 1")
	require.NoError(t, mock.ExpectationsWereMet())
}
