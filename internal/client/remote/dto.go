package remote

import "github.com/dmitrijs2005/taskkeeper/internal/client/models"

// envelope is the BaseResponse wrapper of every successful call.
type envelope[T any] struct {
	Content T `json:"content"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is sent as query parameters of GET /users/register.
type RegisterRequest struct {
	FullName        string
	Username        string
	Avatar          string
	Email           string
	Password        string
	ConfirmPassword string
}

type UserResponse struct {
	ID        int64   `json:"id"`
	FullName  string  `json:"fullName"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	AvatarURL string  `json:"avatarUrl"`
	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type WorkspaceRequest struct {
	Title   string `json:"title"`
	OwnerID int64  `json:"ownerId"`
}

type WorkspaceResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	OwnerID   int64   `json:"ownerId"`
	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type MemberRequest struct {
	UserID int64 `json:"userId"`
	RoleID int64 `json:"roleId"`
}

type MemberResponse struct {
	WorkspaceID int64 `json:"workspaceId"`
	UserID      int64 `json:"userId"`
	RoleID      int64 `json:"roleId"`
}

type ProjectRequest struct {
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	WorkspaceID int64  `json:"workspaceId"`
}

type ProjectResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Icon        string  `json:"icon"`
	WorkspaceID int64   `json:"workspaceId"`
	CreatedAt   *string `json:"createdAt,omitempty"`
	UpdatedAt   *string `json:"updatedAt,omitempty"`
}

type TaskRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Deadline    *string       `json:"deadline,omitempty"`
	Timer       int64         `json:"timer"`
	Status      models.Status `json:"status"`
	ProjectID   int64         `json:"projectId"`
}

// TaskResponse.Status decodes through models.Status, so an unknown status
// fails the whole response.
type TaskResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Deadline    *string       `json:"deadline,omitempty"`
	Timer       int64         `json:"timer"`
	Status      models.Status `json:"status"`
	ProjectID   int64         `json:"projectId"`
	TagIDs      []int64       `json:"tagIds"`
	MediaIDs    []int64       `json:"mediaIds"`
	AssigneeIDs []int64       `json:"assigneeIds"`
	Bookmarked  bool          `json:"bookmarked"`
	CreatedAt   *string       `json:"createdAt,omitempty"`
	UpdatedAt   *string       `json:"updatedAt,omitempty"`
}

type BookmarkRequest struct {
	Bookmarked bool `json:"bookmarked"`
}

type AssigneeRequest struct {
	UserID int64 `json:"userId"`
}

type CommentRequest struct {
	Content  string `json:"content"`
	AuthorID int64  `json:"authorId"`
	TaskID   int64  `json:"taskId"`
}

type CommentResponse struct {
	ID        int64   `json:"id"`
	Content   string  `json:"content"`
	AuthorID  int64   `json:"authorId"`
	TaskID    int64   `json:"taskId"`
	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type TagRequest struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

type TagResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

type MediaRequest struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	TaskID   int64  `json:"taskId"`
}

type MediaResponse struct {
	ID        int64   `json:"id"`
	Filename  string  `json:"filename"`
	Type      string  `json:"type"`
	URL       string  `json:"url"`
	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}
