package tasks

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/store"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/google/go-cmp/cmp"
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

func upsert(t *testing.T, db *sql.DB, row models.TaskRow) {
	t.Helper()
	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).Upsert(ctx, row)
	})
	require.NoError(t, err)
}

func sampleTask() models.TaskRow {
	return models.TaskRow{
		ID: 5, Title: "Write docs", Description: "all", Timer: 30, Status: "pending", ProjectID: 3,
		Deadline:    sql.NullString{String: "2024-02-01", Valid: true},
		TagIDs:      []int64{1, 2},
		MediaIDs:    []int64{4},
		AssigneeIDs: []int64{9},
	}
}

func TestUpsertAndGet_WithLinks(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	row := sampleTask()
	upsert(t, db, row)

	got, err := r.Get(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, cmp.Diff(row, *got))
}

func TestUpsert_ReplacesLinks(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	row := sampleTask()
	upsert(t, db, row)

	row.TagIDs = []int64{2}
	row.AssigneeIDs = nil
	row.Status = "done"
	upsert(t, db, row)

	got, err := r.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, got.TagIDs)
	assert.Nil(t, got.AssigneeIDs)
	assert.Equal(t, "done", got.Status)
}

func TestListQueries(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := sampleTask()
	b := models.TaskRow{ID: 6, Title: "Review", Status: "in_progress", ProjectID: 3, Bookmarked: true, AssigneeIDs: []int64{9, 10}}
	c := models.TaskRow{ID: 7, Title: "Elsewhere", Status: "pending", ProjectID: 4, Bookmarked: true}
	upsert(t, db, a)
	upsert(t, db, b)
	upsert(t, db, c)

	byProject, err := r.ListByProject(ctx, 3)
	require.NoError(t, err)
	require.Len(t, byProject, 2)
	assert.Equal(t, []int64{1, 2}, byProject[0].TagIDs)
	assert.Equal(t, []int64{9, 10}, byProject[1].AssigneeIDs)

	bookmarked, err := r.ListBookmarked(ctx)
	require.NoError(t, err)
	require.Len(t, bookmarked, 2)
	assert.Equal(t, int64(6), bookmarked[0].ID)
	assert.Equal(t, int64(7), bookmarked[1].ID)

	assigned, err := r.ListAssignedTo(ctx, 9)
	require.NoError(t, err)
	require.Len(t, assigned, 2)
	assert.Equal(t, []int64{9, 10}, assigned[1].AssigneeIDs, "links are loaded in full, not only the matching user")

	none, err := r.ListAssignedTo(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDelete_RemovesLinks(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	upsert(t, db, sampleTask())

	ok, err := r.Delete(ctx, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM task_tags WHERE task_id = 5`).Scan(&n))
	assert.Zero(t, n)

	ok, err = r.Delete(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteByProjectExcept_PrunesOrphanLinks(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	upsert(t, db, sampleTask())
	upsert(t, db, models.TaskRow{ID: 6, Title: "keep", Status: "pending", ProjectID: 3, TagIDs: []int64{1}})

	n, err := r.DeleteByProjectExcept(ctx, 3, []int64{6})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var links int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM task_tags`).Scan(&links))
	assert.Equal(t, 1, links)
}

func TestMediaAndTagLinks(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	upsert(t, db, sampleTask())

	require.NoError(t, r.AddMediaLink(ctx, 5, 8))
	require.NoError(t, r.AddMediaLink(ctx, 5, 8))
	got, err := r.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 8}, got.MediaIDs)

	require.NoError(t, r.SetMediaLinks(ctx, 5, []int64{11}))
	require.NoError(t, r.RemoveTagLinks(ctx, 1))
	got, err = r.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, got.MediaIDs)
	assert.Equal(t, []int64{2}, got.TagIDs)

	require.NoError(t, r.RemoveMediaLinks(ctx, 11))
	got, err = r.Get(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, got.MediaIDs)
}

func TestGet_QueryErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM tasks t WHERE t.id = \?`).WithArgs(int64(5)).WillReturnError(sql.ErrConnDone)

	_, err = NewSQLiteRepository(db).Get(context.Background(), 5)
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.ErrorContains(t, err, "failed to get task 5")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_LinkErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO tasks`).WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(`DELETE FROM task_tags WHERE task_id = \?`).WillReturnError(sql.ErrConnDone)

	err = NewSQLiteRepository(db).Upsert(context.Background(), sampleTask())
	require.ErrorContains(t, err, "failed to clear task_tags of task 5")
	require.NoError(t, mock.ExpectationsWereMet())
}
