package workspaces

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

const selectColumns = `SELECT id, title, owner_id, created_at, updated_at FROM workspaces`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (models.WorkspaceRow, error) {
	var w models.WorkspaceRow
	err := s.Scan(&w.ID, &w.Title, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.WorkspaceRow, error) {
	w, err := scanRow(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace %d: %w", id, err)
	}
	return &w, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.WorkspaceRow, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	result := []models.WorkspaceRow{}
	for rows.Next() {
		w, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace row: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workspace rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, w models.WorkspaceRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, title, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title      = excluded.title,
			owner_id   = excluded.owner_id,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, w.ID, w.Title, w.OwnerID, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert workspace %d: %w", w.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM workspaces WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete workspace %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteByOwnerExcept(ctx context.Context, ownerID int64, keep []int64) (int64, error) {
	n, err := dbx.DeleteMissing(ctx, r.db, "workspaces", "owner_id", ownerID, "id", keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune workspaces of owner %d: %w", ownerID, err)
	}
	return n, nil
}
