package users

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

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.UserRow, error) {
	var u models.UserRow
	err := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, username, email, avatar_url, created_at, updated_at
		FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, u models.UserRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, full_name, username, email, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name  = excluded.full_name,
			username   = excluded.username,
			email      = excluded.email,
			avatar_url = excluded.avatar_url,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, u.ID, u.FullName, u.Username, u.Email, u.AvatarURL, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", u.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return n > 0, nil
}
