package members

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

func (r *SQLiteRepository) Get(ctx context.Context, workspaceID, userID int64) (*models.MemberRow, error) {
	m := models.MemberRow{WorkspaceID: workspaceID, UserID: userID}
	err := r.db.QueryRowContext(ctx,
		`SELECT role_id FROM workspace_members WHERE workspace_id = ? AND user_id = ?`,
		workspaceID, userID,
	).Scan(&m.RoleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member %d/%d: %w", workspaceID, userID, err)
	}
	return &m, nil
}

func (r *SQLiteRepository) ListByWorkspace(ctx context.Context, workspaceID int64) ([]models.MemberRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT workspace_id, user_id, role_id FROM workspace_members
		WHERE workspace_id = ? ORDER BY user_id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	result := []models.MemberRow{}
	for rows.Next() {
		var m models.MemberRow
		if err := rows.Scan(&m.WorkspaceID, &m.UserID, &m.RoleID); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, m models.MemberRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role_id) VALUES (?, ?, ?)
		ON CONFLICT(workspace_id, user_id) DO UPDATE SET role_id = excluded.role_id
	`, m.WorkspaceID, m.UserID, m.RoleID)
	if err != nil {
		return fmt.Errorf("failed to upsert member %d/%d: %w", m.WorkspaceID, m.UserID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, workspaceID, userID int64) (bool, error) {
	n, err := dbx.ExecAffected(ctx, r.db,
		`DELETE FROM workspace_members WHERE workspace_id = ? AND user_id = ?`, workspaceID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete member %d/%d: %w", workspaceID, userID, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteByWorkspaceExcept(ctx context.Context, workspaceID int64, keepUserIDs []int64) (int64, error) {
	n, err := dbx.DeleteMissing(ctx, r.db, "workspace_members", "workspace_id", workspaceID, "user_id", keepUserIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to prune members of workspace %d: %w", workspaceID, err)
	}
	return n, nil
}
