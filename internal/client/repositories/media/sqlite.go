package media

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

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.MediaRow, error) {
	var m models.MediaRow
	err := r.db.QueryRowContext(ctx,
		`SELECT id, filename, type, url, created_at, updated_at FROM media WHERE id = ?`, id,
	).Scan(&m.ID, &m.Filename, &m.Type, &m.URL, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media %d: %w", id, err)
	}
	return &m, nil
}

func (r *SQLiteRepository) ListForTask(ctx context.Context, taskID int64) ([]models.MediaRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.filename, m.type, m.url, m.created_at, m.updated_at
		FROM media m JOIN task_media tm ON tm.media_id = m.id
		WHERE tm.task_id = ? ORDER BY m.id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	result := []models.MediaRow{}
	for rows.Next() {
		var m models.MediaRow
		if err := rows.Scan(&m.ID, &m.Filename, &m.Type, &m.URL, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan media row: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate media rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, m models.MediaRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO media (id, filename, type, url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename   = excluded.filename,
			type       = excluded.type,
			url        = excluded.url,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, m.ID, m.Filename, m.Type, m.URL, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert media %d: %w", m.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete media %d: %w", id, err)
	}
	return n > 0, nil
}
