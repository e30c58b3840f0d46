package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

const selectColumns = `SELECT id, title, icon, workspace_id, created_at, updated_at FROM projects`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanRow(s interface{ Scan(...any) error }) (models.ProjectRow, error) {
	var p models.ProjectRow
	err := s.Scan(&p.ID, &p.Title, &p.Icon, &p.WorkspaceID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.ProjectRow, error) {
	p, err := scanRow(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return &p, nil
}

func (r *SQLiteRepository) ListByWorkspace(ctx context.Context, workspaceID int64) ([]models.ProjectRow, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE workspace_id = ? ORDER BY id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	result := []models.ProjectRow{}
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, p models.ProjectRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, icon, workspace_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title        = excluded.title,
			icon         = excluded.icon,
			workspace_id = excluded.workspace_id,
			created_at   = excluded.created_at,
			updated_at   = excluded.updated_at
	`, p.ID, p.Title, p.Icon, p.WorkspaceID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert project %d: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteByWorkspaceExcept(ctx context.Context, workspaceID int64, keep []int64) (int64, error) {
	n, err := dbx.DeleteMissing(ctx, r.db, "projects", "workspace_id", workspaceID, "id", keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune projects of workspace %d: %w", workspaceID, err)
	}
	return n, nil
}
