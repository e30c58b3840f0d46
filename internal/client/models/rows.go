package models

import "database/sql"

// Cache rows mirror the SQLite columns one to one. Nullable columns use the
// database/sql null wrappers so the repositories can scan them directly.

type UserRow struct {
	ID        int64
	FullName  string
	Username  string
	Email     string
	AvatarURL string
	CreatedAt sql.NullString
	UpdatedAt sql.NullString
}

type WorkspaceRow struct {
	ID        int64
	Title     string
	OwnerID   int64
	CreatedAt sql.NullString
	UpdatedAt sql.NullString
}

type MemberRow struct {
	WorkspaceID int64
	UserID      int64
	RoleID      int64
}

type ProjectRow struct {
	ID          int64
	Title       string
	Icon        string
	WorkspaceID int64
	CreatedAt   sql.NullString
	UpdatedAt   sql.NullString
}

// TaskRow carries the tasks columns plus the ids held in its join tables.
type TaskRow struct {
	ID          int64
	Title       string
	Description string
	Deadline    sql.NullString
	Timer       int64
	Status      string
	ProjectID   int64
	Bookmarked  bool
	CreatedAt   sql.NullString
	UpdatedAt   sql.NullString
	TagIDs      []int64
	MediaIDs    []int64
	AssigneeIDs []int64
}

type CommentRow struct {
	ID        int64
	Content   string
	AuthorID  int64
	TaskID    int64
	CreatedAt sql.NullString
	UpdatedAt sql.NullString
}

type TagRow struct {
	ID    int64
	Title string
	Color string
}

type MediaRow struct {
	ID        int64
	Filename  string
	Type      string
	URL       string
	CreatedAt sql.NullString
	UpdatedAt sql.NullString
}
