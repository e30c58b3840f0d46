package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.TagRow, error) {
	var t models.TagRow
	err := r.db.QueryRowContext(ctx, `SELECT id, title, color FROM tags WHERE id = ?`, id).Scan(&t.ID, &t.Title, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag %d: %w", id, err)
	}
	return &t, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.TagRow, error) {
	return r.query(ctx, `SELECT id, title, color FROM tags ORDER BY title, id`)
}

func (r *SQLiteRepository) ListForTask(ctx context.Context, taskID int64) ([]models.TagRow, error) {
	return r.query(ctx, `
		SELECT t.id, t.title, t.color FROM tags t
		JOIN task_tags tt ON tt.tag_id = t.id
		WHERE tt.task_id = ? ORDER BY t.title, t.id`, taskID)
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]models.TagRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	result := []models.TagRow{}
	for rows.Next() {
		var t models.TagRow
		if err := rows.Scan(&t.ID, &t.Title, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tag rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, t models.TagRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tags (id, title, color) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, color = excluded.color
	`, t.ID, t.Title, t.Color)
	if err != nil {
		return fmt.Errorf("failed to upsert tag %d: %w", t.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete tag %d: %w", id, err)
	}
	return n > 0, nil
}

// DeleteExcept removes every cached tag whose id is not in keep.
func (r *SQLiteRepository) DeleteExcept(ctx context.Context, keep []int64) (int64, error) {
	q := `DELETE FROM tags`
	if len(keep) > 0 {
		q += fmt.Sprintf(` WHERE id NOT IN (%s)`, dbx.Placeholders(len(keep)))
	}
	n, err := dbx.ExecAffected(ctx, r.db, q, dbx.Args(keep)...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune tags: %w", err)
	}
	return n, nil
}
