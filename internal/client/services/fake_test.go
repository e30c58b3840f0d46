package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/store"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

const wait = 2 * time.Second

func setupDeps(t *testing.T) Deps {
	t.Helper()
	db, err := store.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return Deps{DB: db, Hub: watch.NewHub(), Log: logging.Nop()}
}

func count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func next[T any](t *testing.T, s *watch.Stream[T]) T {
	t.Helper()
	select {
	case v, ok := <-s.C:
		require.True(t, ok, "stream closed unexpectedly")
		return v
	case <-time.After(wait):
		t.Fatal("no emission")
	}
	var zero T
	return zero
}

func assertQuiet[T any](t *testing.T, s *watch.Stream[T]) {
	t.Helper()
	select {
	case v := <-s.C:
		t.Fatalf("unexpected emission: %v", v)
	case <-time.After(100 * time.Millisecond):
	}
}

type fixedUser int64

func (u fixedUser) UserID() (int64, bool) { return int64(u), u > 0 }

// fakeRemote is an in-process server. Entries in fail make the named method
// return that error.
type fakeRemote struct {
	mu     sync.Mutex
	nextID int64
	fail   map[string]error
	calls  map[string]int

	token      string
	users      map[int64]remote.UserResponse
	workspaces map[int64]remote.WorkspaceResponse
	members    map[int64][]remote.MemberResponse
	projects   map[int64]remote.ProjectResponse
	tasks      map[int64]remote.TaskResponse
	comments   map[int64]remote.CommentResponse
	tags       map[int64]remote.TagResponse
	media      map[int64]remote.MediaResponse
	mediaTask  map[int64]int64
}

var _ remote.Client = (*fakeRemote)(nil)

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		nextID:     100,
		fail:       map[string]error{},
		calls:      map[string]int{},
		users:      map[int64]remote.UserResponse{},
		workspaces: map[int64]remote.WorkspaceResponse{},
		members:    map[int64][]remote.MemberResponse{},
		projects:   map[int64]remote.ProjectResponse{},
		tasks:      map[int64]remote.TaskResponse{},
		comments:   map[int64]remote.CommentResponse{},
		tags:       map[int64]remote.TagResponse{},
		media:      map[int64]remote.MediaResponse{},
		mediaTask:  map[int64]int64{},
	}
}

func (f *fakeRemote) enter(method string) error {
	f.mu.Lock()
	f.calls[method]++
	err := f.fail[method]
	f.mu.Unlock()
	return err
}

func (f *fakeRemote) failWith(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method] = err
}

func (f *fakeRemote) called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeRemote) id() int64 {
	f.nextID++
	return f.nextID
}

func notFound(path string) error {
	return &remote.HTTPError{StatusCode: 404, Method: "GET", Path: path, Message: "not found"}
}

func (f *fakeRemote) Login(_ context.Context, email, password string) (string, error) {
	if err := f.enter("Login"); err != nil {
		return "", err
	}
	return f.token, nil
}

func (f *fakeRemote) Register(_ context.Context, req remote.RegisterRequest) (string, error) {
	if err := f.enter("Register"); err != nil {
		return "", err
	}
	return f.token, nil
}

func (f *fakeRemote) GetUser(_ context.Context, id int64) (*remote.UserResponse, error) {
	if err := f.enter("GetUser"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, notFound(fmt.Sprintf("/users/%d", id))
	}
	return &u, nil
}

func (f *fakeRemote) GetWorkspace(_ context.Context, id int64) (*remote.WorkspaceResponse, error) {
	if err := f.enter("GetWorkspace"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.workspaces[id]
	if !ok {
		return nil, notFound("/workspaces")
	}
	return &w, nil
}

func (f *fakeRemote) ListWorkspaces(_ context.Context, ownerID int64) ([]remote.WorkspaceResponse, error) {
	if err := f.enter("ListWorkspaces"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []remote.WorkspaceResponse
	for _, w := range f.workspaces {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateWorkspace(_ context.Context, req remote.WorkspaceRequest) (*remote.WorkspaceResponse, error) {
	if err := f.enter("CreateWorkspace"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w := remote.WorkspaceResponse{ID: f.id(), Title: req.Title, OwnerID: req.OwnerID}
	f.workspaces[w.ID] = w
	return &w, nil
}

func (f *fakeRemote) UpdateWorkspace(_ context.Context, id int64, req remote.WorkspaceRequest) (*remote.WorkspaceResponse, error) {
	if err := f.enter("UpdateWorkspace"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.workspaces[id]; !ok {
		return nil, notFound("/workspaces")
	}
	w := remote.WorkspaceResponse{ID: id, Title: req.Title, OwnerID: req.OwnerID}
	f.workspaces[id] = w
	return &w, nil
}

func (f *fakeRemote) DeleteWorkspace(_ context.Context, id int64) error {
	if err := f.enter("DeleteWorkspace"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.workspaces[id]; !ok {
		return notFound("/workspaces")
	}
	delete(f.workspaces, id)
	return nil
}

func (f *fakeRemote) ListMembers(_ context.Context, workspaceID int64) ([]remote.MemberResponse, error) {
	if err := f.enter("ListMembers"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remote.MemberResponse(nil), f.members[workspaceID]...), nil
}

func (f *fakeRemote) AddMember(_ context.Context, workspaceID int64, req remote.MemberRequest) (*remote.MemberResponse, error) {
	if err := f.enter("AddMember"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m := remote.MemberResponse{WorkspaceID: workspaceID, UserID: req.UserID, RoleID: req.RoleID}
	f.members[workspaceID] = append(f.members[workspaceID], m)
	return &m, nil
}

func (f *fakeRemote) UpdateMember(_ context.Context, workspaceID, userID int64, req remote.MemberRequest) (*remote.MemberResponse, error) {
	if err := f.enter("UpdateMember"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.members[workspaceID] {
		if m.UserID == userID {
			f.members[workspaceID][i].RoleID = req.RoleID
			out := f.members[workspaceID][i]
			return &out, nil
		}
	}
	return nil, notFound("/members")
}

func (f *fakeRemote) RemoveMember(_ context.Context, workspaceID, userID int64) error {
	if err := f.enter("RemoveMember"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.members[workspaceID]
	for i, m := range list {
		if m.UserID == userID {
			f.members[workspaceID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return notFound("/members")
}

func (f *fakeRemote) ListProjects(_ context.Context, workspaceID int64) ([]remote.ProjectResponse, error) {
	if err := f.enter("ListProjects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []remote.ProjectResponse
	for _, p := range f.projects {
		if p.WorkspaceID == workspaceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRemote) GetProject(_ context.Context, id int64) (*remote.ProjectResponse, error) {
	if err := f.enter("GetProject"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, notFound("/projects")
	}
	return &p, nil
}

func (f *fakeRemote) CreateProject(_ context.Context, req remote.ProjectRequest) (*remote.ProjectResponse, error) {
	if err := f.enter("CreateProject"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := remote.ProjectResponse{ID: f.id(), Title: req.Title, Icon: req.Icon, WorkspaceID: req.WorkspaceID}
	f.projects[p.ID] = p
	return &p, nil
}

func (f *fakeRemote) UpdateProject(_ context.Context, id int64, req remote.ProjectRequest) (*remote.ProjectResponse, error) {
	if err := f.enter("UpdateProject"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return nil, notFound("/projects")
	}
	p := remote.ProjectResponse{ID: id, Title: req.Title, Icon: req.Icon, WorkspaceID: req.WorkspaceID}
	f.projects[id] = p
	return &p, nil
}

func (f *fakeRemote) DeleteProject(_ context.Context, id int64) error {
	if err := f.enter("DeleteProject"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return notFound("/projects")
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeRemote) ListTasks(_ context.Context, projectID int64) ([]remote.TaskResponse, error) {
	if err := f.enter("ListTasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []remote.TaskResponse
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRemote) GetTask(_ context.Context, id int64) (*remote.TaskResponse, error) {
	if err := f.enter("GetTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return nil, notFound("/tasks")
	}
	return &t, nil
}

func (f *fakeRemote) CreateTask(_ context.Context, req remote.TaskRequest) (*remote.TaskResponse, error) {
	if err := f.enter("CreateTask"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := remote.TaskResponse{
		ID: f.id(), Title: req.Title, Description: req.Description, Deadline: req.Deadline,
		Timer: req.Timer, Status: req.Status, ProjectID: req.ProjectID,
	}
	f.tasks[t.ID] = t
	return &t, nil
}

func (f *fakeRemote) UpdateTask(_ context.Context, id int64, req remote.TaskRequest) (*remote.TaskResponse, error) {
	if err := f.enter("UpdateTask"); err != nil {
		return nil, err
	}
	return f.editTask(id, func(t *remote.TaskResponse) {
		t.Title, t.Description, t.Deadline = req.Title, req.Description, req.Deadline
		t.Timer, t.Status, t.ProjectID = req.Timer, req.Status, req.ProjectID
	})
}

func (f *fakeRemote) DeleteTask(_ context.Context, id int64) error {
	if err := f.enter("DeleteTask"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return notFound("/tasks")
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeRemote) SetBookmark(_ context.Context, id int64, bookmarked bool) (*remote.TaskResponse, error) {
	if err := f.enter("SetBookmark"); err != nil {
		return nil, err
	}
	return f.editTask(id, func(t *remote.TaskResponse) { t.Bookmarked = bookmarked })
}

func (f *fakeRemote) AddAssignee(_ context.Context, id, userID int64) (*remote.TaskResponse, error) {
	if err := f.enter("AddAssignee"); err != nil {
		return nil, err
	}
	return f.editTask(id, func(t *remote.TaskResponse) { t.AssigneeIDs = appendID(t.AssigneeIDs, userID) })
}

func (f *fakeRemote) RemoveAssignee(_ context.Context, id, userID int64) (*remote.TaskResponse, error) {
	if err := f.enter("RemoveAssignee"); err != nil {
		return nil, err
	}
	return f.editTask(id, func(t *remote.TaskResponse) { t.AssigneeIDs = removeID(t.AssigneeIDs, userID) })
}

func (f *fakeRemote) editTask(id int64, edit func(*remote.TaskResponse)) (*remote.TaskResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return nil, notFound("/tasks")
	}
	edit(&t)
	f.tasks[id] = t
	return &t, nil
}

func appendID(ids []int64, id int64) []int64 {
	out := removeID(ids, id)
	return append(out, id)
}

func removeID(ids []int64, id int64) []int64 {
	var out []int64
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (f *fakeRemote) ListComments(_ context.Context, taskID int64) ([]remote.CommentResponse, error) {
	if err := f.enter("ListComments"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []remote.CommentResponse
	for _, c := range f.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateComment(_ context.Context, req remote.CommentRequest) (*remote.CommentResponse, error) {
	if err := f.enter("CreateComment"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := remote.CommentResponse{ID: f.id(), Content: req.Content, AuthorID: req.AuthorID, TaskID: req.TaskID}
	f.comments[c.ID] = c
	return &c, nil
}

func (f *fakeRemote) UpdateComment(_ context.Context, id int64, req remote.CommentRequest) (*remote.CommentResponse, error) {
	if err := f.enter("UpdateComment"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return nil, notFound("/comments")
	}
	c := remote.CommentResponse{ID: id, Content: req.Content, AuthorID: req.AuthorID, TaskID: req.TaskID}
	f.comments[id] = c
	return &c, nil
}

func (f *fakeRemote) DeleteComment(_ context.Context, id int64) error {
	if err := f.enter("DeleteComment"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return notFound("/comments")
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeRemote) ListTags(_ context.Context) ([]remote.TagResponse, error) {
	if err := f.enter("ListTags"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []remote.TagResponse
	for _, t := range f.tags {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRemote) CreateTag(_ context.Context, req remote.TagRequest) (*remote.TagResponse, error) {
	if err := f.enter("CreateTag"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := remote.TagResponse{ID: f.id(), Title: req.Title, Color: req.Color}
	f.tags[t.ID] = t
	return &t, nil
}

func (f *fakeRemote) DeleteTag(_ context.Context, id int64) error {
	if err := f.enter("DeleteTag"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tags[id]; !ok {
		return notFound("/tags")
	}
	delete(f.tags, id)
	for tid, t := range f.tasks {
		t.TagIDs = removeID(t.TagIDs, id)
		f.tasks[tid] = t
	}
	return nil
}

func (f *fakeRemote) AttachTag(_ context.Context, taskID, tagID int64) (*remote.TaskResponse, error) {
	if err := f.enter("AttachTag"); err != nil {
		return nil, err
	}
	return f.editTask(taskID, func(t *remote.TaskResponse) { t.TagIDs = appendID(t.TagIDs, tagID) })
}

func (f *fakeRemote) DetachTag(_ context.Context, taskID, tagID int64) (*remote.TaskResponse, error) {
	if err := f.enter("DetachTag"); err != nil {
		return nil, err
	}
	return f.editTask(taskID, func(t *remote.TaskResponse) { t.TagIDs = removeID(t.TagIDs, tagID) })
}

func (f *fakeRemote) ListMedia(_ context.Context, taskID int64) ([]remote.MediaResponse, error) {
	if err := f.enter("ListMedia"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []remote.MediaResponse
	for id, tid := range f.mediaTask {
		if tid == taskID {
			out = append(out, f.media[id])
		}
	}
	return out, nil
}

func (f *fakeRemote) CreateMedia(_ context.Context, req remote.MediaRequest) (*remote.MediaResponse, error) {
	if err := f.enter("CreateMedia"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m := remote.MediaResponse{ID: f.id(), Filename: req.Filename, Type: req.Type, URL: req.URL}
	f.media[m.ID] = m
	f.mediaTask[m.ID] = req.TaskID
	return &m, nil
}

func (f *fakeRemote) DeleteMedia(_ context.Context, id int64) error {
	if err := f.enter("DeleteMedia"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.media[id]; !ok {
		return notFound("/media")
	}
	delete(f.media, id)
	delete(f.mediaTask, id)
	return nil
}
