package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

const selectColumns = `SELECT id, content, author_id, task_id, created_at, updated_at FROM comments`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanRow(s interface{ Scan(...any) error }) (models.CommentRow, error) {
	var c models.CommentRow
	err := s.Scan(&c.ID, &c.Content, &c.AuthorID, &c.TaskID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.CommentRow, error) {
	c, err := scanRow(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %d: %w", id, err)
	}
	return &c, nil
}

// ListByTask returns the comments of a task, oldest id first.
func (r *SQLiteRepository) ListByTask(ctx context.Context, taskID int64) ([]models.CommentRow, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE task_id = ? ORDER BY id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	result := []models.CommentRow{}
	for rows.Next() {
		c, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, c models.CommentRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, content, author_id, task_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content    = excluded.content,
			author_id  = excluded.author_id,
			task_id    = excluded.task_id,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, c.ID, c.Content, c.AuthorID, c.TaskID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert comment %d: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteByTaskExcept(ctx context.Context, taskID int64, keep []int64) (int64, error) {
	n, err := dbx.DeleteMissing(ctx, r.db, "comments", "task_id", taskID, "id", keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune comments of task %d: %w", taskID, err)
	}
	return n, nil
}
