package models

// User is an account known to the server.
type User struct {
	ID        int64
	FullName  string
	Username  string
	Email     string
	AvatarURL string
	CreatedAt *string
	UpdatedAt *string
}

// Workspace is owned by exactly one user and groups projects.
type Workspace struct {
	ID        int64
	Title     string
	OwnerID   int64
	CreatedAt *string
	UpdatedAt *string
}

// WorkspaceMember links a user to a workspace under one role.
type WorkspaceMember struct {
	WorkspaceID int64
	UserID      int64
	RoleID      int64
}

type Project struct {
	ID          int64
	Title       string
	Icon        string
	WorkspaceID int64
	CreatedAt   *string
	UpdatedAt   *string
}

// Task belongs to a project. TagIDs, MediaIDs and AssigneeIDs mirror the
// task_tags, task_media and task_assignees join rows.
type Task struct {
	ID          int64
	Title       string
	Description string
	Deadline    *string
	Timer       int64
	Status      Status
	ProjectID   int64
	TagIDs      []int64
	MediaIDs    []int64
	AssigneeIDs []int64
	Bookmarked  bool
	CreatedAt   *string
	UpdatedAt   *string
}

type Comment struct {
	ID        int64
	Content   string
	AuthorID  int64
	TaskID    int64
	CreatedAt *string
	UpdatedAt *string
}

type Tag struct {
	ID    int64
	Title string
	Color string
}

type Media struct {
	ID        int64
	Filename  string
	Type      string
	URL       string
	CreatedAt *string
	UpdatedAt *string
}
