package remote

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv, rec := stubServer(t, http.StatusOK, `{"content":{"token":"tok123"}}`)
	c := New(srv.URL, nil)

	token, err := c.Login(context.Background(), "a@b.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/users/login", rec.path)
	q, err := url.ParseQuery(rec.query)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", q.Get("email"))
	assert.Equal(t, "pw1", q.Get("password"))
}

func TestLogin_EmptyToken(t *testing.T) {
	srv, _ := stubServer(t, http.StatusOK, `{"content":{"token":""}}`)
	c := New(srv.URL, nil)

	_, err := c.Login(context.Background(), "a@b.com", "pw1")
	require.ErrorIs(t, err, ErrEmptyToken)
}

func TestRegister_AcceptsBothResponseShapes(t *testing.T) {
	for name, body := range map[string]string{
		"bare string":     `"tok-bare"`,
		"string envelope": `{"content":"tok-bare"}`,
		"token envelope":  `{"content":{"token":"tok-bare"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, rec := stubServer(t, http.StatusOK, body)
			c := New(srv.URL, nil)

			token, err := c.Register(context.Background(), RegisterRequest{
				FullName: "Ann Lee", Username: "ann", Email: "a@b.com", Password: "pw", ConfirmPassword: "pw",
			})
			require.NoError(t, err)
			assert.Equal(t, "tok-bare", token)

			q, err := url.ParseQuery(rec.query)
			require.NoError(t, err)
			assert.Equal(t, "Ann Lee", q.Get("fullname"))
			assert.Equal(t, "pw", q.Get("confirmPassword"))
			_, hasAvatar := q["avatar"]
			assert.False(t, hasAvatar)
		})
	}
}

func TestEndpoints_MethodsAndPaths(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		body   string
		method string
		path   string
		call   func(c *HTTPClient) error
	}{
		{"get user", `{"content":{}}`, "GET", "/users/3", func(c *HTTPClient) error { _, err := c.GetUser(ctx, 3); return err }},
		{"get workspace", `{"content":{}}`, "GET", "/workspaces/4", func(c *HTTPClient) error { _, err := c.GetWorkspace(ctx, 4); return err }},
		{"list workspaces", `{"content":[]}`, "GET", "/workspaces/u/1", func(c *HTTPClient) error { _, err := c.ListWorkspaces(ctx, 1); return err }},
		{"update workspace", `{"content":{}}`, "PUT", "/workspace/4", func(c *HTTPClient) error {
			_, err := c.UpdateWorkspace(ctx, 4, WorkspaceRequest{Title: "x"})
			return err
		}},
		{"delete workspace", `{"content":null}`, "DELETE", "/workspace/4", func(c *HTTPClient) error { return c.DeleteWorkspace(ctx, 4) }},
		{"list members", `{"content":[]}`, "GET", "/workspaces/4/members", func(c *HTTPClient) error { _, err := c.ListMembers(ctx, 4); return err }},
		{"add member", `{"content":{}}`, "POST", "/workspaces/4/members", func(c *HTTPClient) error {
			_, err := c.AddMember(ctx, 4, MemberRequest{UserID: 2, RoleID: 3})
			return err
		}},
		{"update member", `{"content":{}}`, "PUT", "/workspaces/4/members/2", func(c *HTTPClient) error {
			_, err := c.UpdateMember(ctx, 4, 2, MemberRequest{UserID: 2, RoleID: 1})
			return err
		}},
		{"remove member", `{"content":null}`, "DELETE", "/workspaces/4/members/2", func(c *HTTPClient) error { return c.RemoveMember(ctx, 4, 2) }},
		{"list projects", `{"content":[]}`, "GET", "/projects/w/4", func(c *HTTPClient) error { _, err := c.ListProjects(ctx, 4); return err }},
		{"get project", `{"content":{}}`, "GET", "/projects/5", func(c *HTTPClient) error { _, err := c.GetProject(ctx, 5); return err }},
		{"create project", `{"content":{}}`, "POST", "/projects/", func(c *HTTPClient) error { _, err := c.CreateProject(ctx, ProjectRequest{}); return err }},
		{"update project", `{"content":{}}`, "PUT", "/projects/5", func(c *HTTPClient) error { _, err := c.UpdateProject(ctx, 5, ProjectRequest{}); return err }},
		{"delete project", `{"content":null}`, "DELETE", "/projects/5", func(c *HTTPClient) error { return c.DeleteProject(ctx, 5) }},
		{"list tasks", `{"content":[]}`, "GET", "/tasks/p/5", func(c *HTTPClient) error { _, err := c.ListTasks(ctx, 5); return err }},
		{"get task", `{"content":{"status":"done"}}`, "GET", "/tasks/6", func(c *HTTPClient) error { _, err := c.GetTask(ctx, 6); return err }},
		{"create task", `{"content":{"status":"pending"}}`, "POST", "/tasks/", func(c *HTTPClient) error {
			_, err := c.CreateTask(ctx, TaskRequest{Title: "t", Status: models.StatusPending})
			return err
		}},
		{"update task", `{"content":{"status":"pending"}}`, "PUT", "/tasks/6", func(c *HTTPClient) error {
			_, err := c.UpdateTask(ctx, 6, TaskRequest{Title: "t", Status: models.StatusPending})
			return err
		}},
		{"delete task", `{"content":null}`, "DELETE", "/tasks/6", func(c *HTTPClient) error { return c.DeleteTask(ctx, 6) }},
		{"bookmark", `{"content":{"status":"pending"}}`, "PUT", "/tasks/6/bookmark", func(c *HTTPClient) error {
			_, err := c.SetBookmark(ctx, 6, true)
			return err
		}},
		{"assign", `{"content":{"status":"pending"}}`, "POST", "/tasks/6/assignees", func(c *HTTPClient) error {
			_, err := c.AddAssignee(ctx, 6, 2)
			return err
		}},
		{"unassign", `{"content":{"status":"pending"}}`, "DELETE", "/tasks/6/assignees/2", func(c *HTTPClient) error {
			_, err := c.RemoveAssignee(ctx, 6, 2)
			return err
		}},
		{"list comments", `{"content":[]}`, "GET", "/comments/t/6", func(c *HTTPClient) error { _, err := c.ListComments(ctx, 6); return err }},
		{"create comment", `{"content":{}}`, "POST", "/comments/", func(c *HTTPClient) error { _, err := c.CreateComment(ctx, CommentRequest{}); return err }},
		{"update comment", `{"content":{}}`, "PUT", "/comments/8", func(c *HTTPClient) error { _, err := c.UpdateComment(ctx, 8, CommentRequest{}); return err }},
		{"delete comment", `{"content":null}`, "DELETE", "/comments/8", func(c *HTTPClient) error { return c.DeleteComment(ctx, 8) }},
		{"list tags", `{"content":[]}`, "GET", "/tags/", func(c *HTTPClient) error { _, err := c.ListTags(ctx); return err }},
		{"create tag", `{"content":{}}`, "POST", "/tags/", func(c *HTTPClient) error { _, err := c.CreateTag(ctx, TagRequest{}); return err }},
		{"delete tag", `{"content":null}`, "DELETE", "/tags/9", func(c *HTTPClient) error { return c.DeleteTag(ctx, 9) }},
		{"attach tag", `{"content":{"status":"pending"}}`, "POST", "/tasks/6/tags/9", func(c *HTTPClient) error {
			_, err := c.AttachTag(ctx, 6, 9)
			return err
		}},
		{"detach tag", `{"content":{"status":"pending"}}`, "DELETE", "/tasks/6/tags/9", func(c *HTTPClient) error {
			_, err := c.DetachTag(ctx, 6, 9)
			return err
		}},
		{"list media", `{"content":[]}`, "GET", "/media/t/6", func(c *HTTPClient) error { _, err := c.ListMedia(ctx, 6); return err }},
		{"create media", `{"content":{}}`, "POST", "/media/", func(c *HTTPClient) error { _, err := c.CreateMedia(ctx, MediaRequest{TaskID: 6}); return err }},
		{"delete media", `{"content":null}`, "DELETE", "/media/10", func(c *HTTPClient) error { return c.DeleteMedia(ctx, 10) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, rec := stubServer(t, http.StatusOK, tt.body)
			c := New(srv.URL, nil)

			require.NoError(t, tt.call(c))
			assert.Equal(t, tt.method, rec.method)
			assert.Equal(t, tt.path, rec.path)
		})
	}
}

func TestListTasks_DecodesJoinIDs(t *testing.T) {
	srv, _ := stubServer(t, http.StatusOK, `{"content":[{"id":6,"title":"t","status":"in_progress","projectId":5,
		"tagIds":[1,2],"mediaIds":[3],"assigneeIds":[4],"bookmarked":true,"createdAt":"2024-01-01"}]}`)
	c := New(srv.URL, nil)

	tasks, err := c.ListTasks(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, []int64{1, 2}, got.TagIDs)
	assert.Equal(t, []int64{3}, got.MediaIDs)
	assert.Equal(t, []int64{4}, got.AssigneeIDs)
	assert.True(t, got.Bookmarked)
	require.NotNil(t, got.CreatedAt)
	assert.Equal(t, "2024-01-01", *got.CreatedAt)
	assert.Nil(t, got.UpdatedAt)
}
