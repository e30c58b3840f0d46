package mapper

import (
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
)

// User

func UserDTOToModel(d remote.UserResponse) models.User {
	return models.User{
		ID:        d.ID,
		FullName:  d.FullName,
		Username:  d.Username,
		Email:     d.Email,
		AvatarURL: d.AvatarURL,
		CreatedAt: copyPtr(d.CreatedAt),
		UpdatedAt: copyPtr(d.UpdatedAt),
	}
}

func UserModelToRow(m models.User) models.UserRow {
	return models.UserRow{
		ID:        m.ID,
		FullName:  m.FullName,
		Username:  m.Username,
		Email:     m.Email,
		AvatarURL: m.AvatarURL,
		CreatedAt: nullString(m.CreatedAt),
		UpdatedAt: nullString(m.UpdatedAt),
	}
}

func UserDTOToRow(d remote.UserResponse) models.UserRow {
	return UserModelToRow(UserDTOToModel(d))
}

func UserRowToModel(r models.UserRow) models.User {
	return models.User{
		ID:        r.ID,
		FullName:  r.FullName,
		Username:  r.Username,
		Email:     r.Email,
		AvatarURL: r.AvatarURL,
		CreatedAt: stringPtr(r.CreatedAt),
		UpdatedAt: stringPtr(r.UpdatedAt),
	}
}

// Workspace

func WorkspaceDTOToModel(d remote.WorkspaceResponse) models.Workspace {
	return models.Workspace{
		ID:        d.ID,
		Title:     d.Title,
		OwnerID:   d.OwnerID,
		CreatedAt: copyPtr(d.CreatedAt),
		UpdatedAt: copyPtr(d.UpdatedAt),
	}
}

func WorkspaceModelToRow(m models.Workspace) models.WorkspaceRow {
	return models.WorkspaceRow{
		ID:        m.ID,
		Title:     m.Title,
		OwnerID:   m.OwnerID,
		CreatedAt: nullString(m.CreatedAt),
		UpdatedAt: nullString(m.UpdatedAt),
	}
}

func WorkspaceDTOToRow(d remote.WorkspaceResponse) models.WorkspaceRow {
	return WorkspaceModelToRow(WorkspaceDTOToModel(d))
}

func WorkspaceRowToModel(r models.WorkspaceRow) models.Workspace {
	return models.Workspace{
		ID:        r.ID,
		Title:     r.Title,
		OwnerID:   r.OwnerID,
		CreatedAt: stringPtr(r.CreatedAt),
		UpdatedAt: stringPtr(r.UpdatedAt),
	}
}

// Member

func MemberDTOToModel(d remote.MemberResponse) models.WorkspaceMember {
	return models.WorkspaceMember{WorkspaceID: d.WorkspaceID, UserID: d.UserID, RoleID: d.RoleID}
}

func MemberModelToRow(m models.WorkspaceMember) models.MemberRow {
	return models.MemberRow{WorkspaceID: m.WorkspaceID, UserID: m.UserID, RoleID: m.RoleID}
}

func MemberDTOToRow(d remote.MemberResponse) models.MemberRow {
	return MemberModelToRow(MemberDTOToModel(d))
}

func MemberRowToModel(r models.MemberRow) models.WorkspaceMember {
	return models.WorkspaceMember{WorkspaceID: r.WorkspaceID, UserID: r.UserID, RoleID: r.RoleID}
}

// Project

func ProjectDTOToModel(d remote.ProjectResponse) models.Project {
	return models.Project{
		ID:          d.ID,
		Title:       d.Title,
		Icon:        d.Icon,
		WorkspaceID: d.WorkspaceID,
		CreatedAt:   copyPtr(d.CreatedAt),
		UpdatedAt:   copyPtr(d.UpdatedAt),
	}
}

func ProjectModelToRow(m models.Project) models.ProjectRow {
	return models.ProjectRow{
		ID:          m.ID,
		Title:       m.Title,
		Icon:        m.Icon,
		WorkspaceID: m.WorkspaceID,
		CreatedAt:   nullString(m.CreatedAt),
		UpdatedAt:   nullString(m.UpdatedAt),
	}
}

func ProjectDTOToRow(d remote.ProjectResponse) models.ProjectRow {
	return ProjectModelToRow(ProjectDTOToModel(d))
}

func ProjectRowToModel(r models.ProjectRow) models.Project {
	return models.Project{
		ID:          r.ID,
		Title:       r.Title,
		Icon:        r.Icon,
		WorkspaceID: r.WorkspaceID,
		CreatedAt:   stringPtr(r.CreatedAt),
		UpdatedAt:   stringPtr(r.UpdatedAt),
	}
}

// Task

func TaskDTOToModel(d remote.TaskResponse) models.Task {
	return models.Task{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Deadline:    copyPtr(d.Deadline),
		Timer:       d.Timer,
		Status:      d.Status,
		ProjectID:   d.ProjectID,
		TagIDs:      copyIDs(d.TagIDs),
		MediaIDs:    copyIDs(d.MediaIDs),
		AssigneeIDs: copyIDs(d.AssigneeIDs),
		Bookmarked:  d.Bookmarked,
		CreatedAt:   copyPtr(d.CreatedAt),
		UpdatedAt:   copyPtr(d.UpdatedAt),
	}
}

func TaskModelToRow(m models.Task) models.TaskRow {
	return models.TaskRow{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Deadline:    nullString(m.Deadline),
		Timer:       m.Timer,
		Status:      string(m.Status),
		ProjectID:   m.ProjectID,
		Bookmarked:  m.Bookmarked,
		CreatedAt:   nullString(m.CreatedAt),
		UpdatedAt:   nullString(m.UpdatedAt),
		TagIDs:      copyIDs(m.TagIDs),
		MediaIDs:    copyIDs(m.MediaIDs),
		AssigneeIDs: copyIDs(m.AssigneeIDs),
	}
}

func TaskDTOToRow(d remote.TaskResponse) models.TaskRow {
	return TaskModelToRow(TaskDTOToModel(d))
}

// TaskRowToModel trusts the status column, which the schema constrains to
// the valid set.
func TaskRowToModel(r models.TaskRow) models.Task {
	return models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Deadline:    stringPtr(r.Deadline),
		Timer:       r.Timer,
		Status:      models.Status(r.Status),
		ProjectID:   r.ProjectID,
		TagIDs:      copyIDs(r.TagIDs),
		MediaIDs:    copyIDs(r.MediaIDs),
		AssigneeIDs: copyIDs(r.AssigneeIDs),
		Bookmarked:  r.Bookmarked,
		CreatedAt:   stringPtr(r.CreatedAt),
		UpdatedAt:   stringPtr(r.UpdatedAt),
	}
}

// Comment

func CommentDTOToModel(d remote.CommentResponse) models.Comment {
	return models.Comment{
		ID:        d.ID,
		Content:   d.Content,
		AuthorID:  d.AuthorID,
		TaskID:    d.TaskID,
		CreatedAt: copyPtr(d.CreatedAt),
		UpdatedAt: copyPtr(d.UpdatedAt),
	}
}

func CommentModelToRow(m models.Comment) models.CommentRow {
	return models.CommentRow{
		ID:        m.ID,
		Content:   m.Content,
		AuthorID:  m.AuthorID,
		TaskID:    m.TaskID,
		CreatedAt: nullString(m.CreatedAt),
		UpdatedAt: nullString(m.UpdatedAt),
	}
}

func CommentDTOToRow(d remote.CommentResponse) models.CommentRow {
	return CommentModelToRow(CommentDTOToModel(d))
}

func CommentRowToModel(r models.CommentRow) models.Comment {
	return models.Comment{
		ID:        r.ID,
		Content:   r.Content,
		AuthorID:  r.AuthorID,
		TaskID:    r.TaskID,
		CreatedAt: stringPtr(r.CreatedAt),
		UpdatedAt: stringPtr(r.UpdatedAt),
	}
}

// Tag

func TagDTOToModel(d remote.TagResponse) models.Tag {
	return models.Tag{ID: d.ID, Title: d.Title, Color: d.Color}
}

func TagModelToRow(m models.Tag) models.TagRow {
	return models.TagRow{ID: m.ID, Title: m.Title, Color: m.Color}
}

func TagDTOToRow(d remote.TagResponse) models.TagRow {
	return TagModelToRow(TagDTOToModel(d))
}

func TagRowToModel(r models.TagRow) models.Tag {
	return models.Tag{ID: r.ID, Title: r.Title, Color: r.Color}
}

// Media

func MediaDTOToModel(d remote.MediaResponse) models.Media {
	return models.Media{
		ID:        d.ID,
		Filename:  d.Filename,
		Type:      d.Type,
		URL:       d.URL,
		CreatedAt: copyPtr(d.CreatedAt),
		UpdatedAt: copyPtr(d.UpdatedAt),
	}
}

func MediaModelToRow(m models.Media) models.MediaRow {
	return models.MediaRow{
		ID:        m.ID,
		Filename:  m.Filename,
		Type:      m.Type,
		URL:       m.URL,
		CreatedAt: nullString(m.CreatedAt),
		UpdatedAt: nullString(m.UpdatedAt),
	}
}

func MediaDTOToRow(d remote.MediaResponse) models.MediaRow {
	return MediaModelToRow(MediaDTOToModel(d))
}

func MediaRowToModel(r models.MediaRow) models.Media {
	return models.Media{
		ID:        r.ID,
		Filename:  r.Filename,
		Type:      r.Type,
		URL:       r.URL,
		CreatedAt: stringPtr(r.CreatedAt),
		UpdatedAt: stringPtr(r.UpdatedAt),
	}
}

// Generic list helper used by the services.
func Map[In, Out any](in []In, f func(In) Out) []Out {
	out := make([]Out, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
