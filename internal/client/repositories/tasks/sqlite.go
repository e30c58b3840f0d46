package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

const selectColumns = `
	SELECT t.id, t.title, t.description, t.deadline, t.timer, t.status, t.project_id,
	       t.bookmarked, t.created_at, t.updated_at
	FROM tasks t`

// joinTable describes one of the link tables owned by this repository.
type joinTable struct {
	table  string
	column string
	field  func(*models.TaskRow) *[]int64
}

var joinTables = []joinTable{
	{table: "task_tags", column: "tag_id", field: func(r *models.TaskRow) *[]int64 { return &r.TagIDs }},
	{table: "task_media", column: "media_id", field: func(r *models.TaskRow) *[]int64 { return &r.MediaIDs }},
	{table: "task_assignees", column: "user_id", field: func(r *models.TaskRow) *[]int64 { return &r.AssigneeIDs }},
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanRow(s interface{ Scan(...any) error }) (models.TaskRow, error) {
	var t models.TaskRow
	err := s.Scan(&t.ID, &t.Title, &t.Description, &t.Deadline, &t.Timer, &t.Status, &t.ProjectID,
		&t.Bookmarked, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.TaskRow, error) {
	t, err := scanRow(r.db.QueryRowContext(ctx, selectColumns+` WHERE t.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}

	rows := []models.TaskRow{t}
	if err := r.loadLinks(ctx, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *SQLiteRepository) ListByProject(ctx context.Context, projectID int64) ([]models.TaskRow, error) {
	return r.list(ctx, selectColumns+` WHERE t.project_id = ? ORDER BY t.id`, projectID)
}

func (r *SQLiteRepository) ListBookmarked(ctx context.Context) ([]models.TaskRow, error) {
	return r.list(ctx, selectColumns+` WHERE t.bookmarked = 1 ORDER BY t.id`)
}

func (r *SQLiteRepository) ListAssignedTo(ctx context.Context, userID int64) ([]models.TaskRow, error) {
	return r.list(ctx, selectColumns+`
		JOIN task_assignees a ON a.task_id = t.id
		WHERE a.user_id = ? ORDER BY t.id`, userID)
}

// list reads the task rows first and closes the result set before loading
// links, since the pool may hold a single connection.
func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.TaskRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	result := []models.TaskRow{}
	for rows.Next() {
		t, err := scanRow(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("failed to close task rows: %w", err)
	}

	if err := r.loadLinks(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) loadLinks(ctx context.Context, tasks []models.TaskRow) error {
	if len(tasks) == 0 {
		return nil
	}
	index := make(map[int64]*models.TaskRow, len(tasks))
	ids := make([]int64, 0, len(tasks))
	for i := range tasks {
		index[tasks[i].ID] = &tasks[i]
		ids = append(ids, tasks[i].ID)
	}

	for _, jt := range joinTables {
		query := fmt.Sprintf(`SELECT task_id, %s FROM %s WHERE task_id IN (%s) ORDER BY task_id, %s`,
			jt.column, jt.table, dbx.Placeholders(len(ids)), jt.column)
		if err := r.scanLinks(ctx, jt, index, query, dbx.Args(ids)); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) scanLinks(ctx context.Context, jt joinTable, index map[int64]*models.TaskRow, query string, args []any) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", jt.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID, linked int64
		if err := rows.Scan(&taskID, &linked); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", jt.table, err)
		}
		if t, ok := index[taskID]; ok {
			f := jt.field(t)
			*f = append(*f, linked)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate %s rows: %w", jt.table, err)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, t models.TaskRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, deadline, timer, status, project_id, bookmarked, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title       = excluded.title,
			description = excluded.description,
			deadline    = excluded.deadline,
			timer       = excluded.timer,
			status      = excluded.status,
			project_id  = excluded.project_id,
			bookmarked  = excluded.bookmarked,
			created_at  = excluded.created_at,
			updated_at  = excluded.updated_at
	`, t.ID, t.Title, t.Description, t.Deadline, t.Timer, t.Status, t.ProjectID, t.Bookmarked, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert task %d: %w", t.ID, err)
	}

	for _, jt := range joinTables {
		if err := r.replaceLinks(ctx, jt, t.ID, *jt.field(&t)); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) replaceLinks(ctx context.Context, jt joinTable, taskID int64, linked []int64) error {
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE task_id = ?`, jt.table), taskID); err != nil {
		return fmt.Errorf("failed to clear %s of task %d: %w", jt.table, taskID, err)
	}
	insert := fmt.Sprintf(`INSERT OR IGNORE INTO %s (task_id, %s) VALUES (?, ?)`, jt.table, jt.column)
	for _, id := range linked {
		if _, err := r.db.ExecContext(ctx, insert, taskID, id); err != nil {
			return fmt.Errorf("failed to link task %d in %s: %w", taskID, jt.table, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	n, err := dbx.ExecAffected(ctx, r.db, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	for _, jt := range joinTables {
		if _, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE task_id = ?`, jt.table), id); err != nil {
			return false, fmt.Errorf("failed to clear %s of task %d: %w", jt.table, id, err)
		}
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteByProjectExcept(ctx context.Context, projectID int64, keep []int64) (int64, error) {
	n, err := dbx.DeleteMissing(ctx, r.db, "tasks", "project_id", projectID, "id", keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune tasks of project %d: %w", projectID, err)
	}
	if n == 0 {
		return 0, nil
	}
	for _, jt := range joinTables {
		q := fmt.Sprintf(`DELETE FROM %s WHERE task_id NOT IN (SELECT id FROM tasks)`, jt.table)
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return 0, fmt.Errorf("failed to prune orphaned %s: %w", jt.table, err)
		}
	}
	return n, nil
}

func (r *SQLiteRepository) SetMediaLinks(ctx context.Context, taskID int64, mediaIDs []int64) error {
	return r.replaceLinks(ctx, joinTables[1], taskID, mediaIDs)
}

func (r *SQLiteRepository) AddMediaLink(ctx context.Context, taskID, mediaID int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO task_media (task_id, media_id) VALUES (?, ?)`, taskID, mediaID)
	if err != nil {
		return fmt.Errorf("failed to link media %d to task %d: %w", mediaID, taskID, err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveMediaLinks(ctx context.Context, mediaID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_media WHERE media_id = ?`, mediaID); err != nil {
		return fmt.Errorf("failed to unlink media %d: %w", mediaID, err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveTagLinks(ctx context.Context, tagID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_tags WHERE tag_id = ?`, tagID); err != nil {
		return fmt.Errorf("failed to unlink tag %d: %w", tagID, err)
	}
	return nil
}
