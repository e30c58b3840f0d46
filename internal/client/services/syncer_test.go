package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
)

func newSyncer(deps Deps, api *fakeRemote, user CurrentUser) *Syncer {
	return NewSyncer(
		NewUserService(deps, api, user),
		NewWorkspaceService(deps, api),
		NewProjectService(deps, api),
		user, deps.Log,
	)
}

func TestSyncer_SyncOnce(t *testing.T) {
	deps := setupDeps(t)
	api := newFakeRemote()
	api.users[1] = remote.UserResponse{ID: 1, Username: "ann"}
	api.workspaces[10] = remote.WorkspaceResponse{ID: 10, Title: "Home", OwnerID: 1}
	api.workspaces[11] = remote.WorkspaceResponse{ID: 11, Title: "Work", OwnerID: 1}
	api.workspaces[12] = remote.WorkspaceResponse{ID: 12, Title: "Not mine", OwnerID: 2}
	api.projects[20] = remote.ProjectResponse{ID: 20, Title: "Garden", WorkspaceID: 10}
	api.projects[21] = remote.ProjectResponse{ID: 21, Title: "Launch", WorkspaceID: 11}
	api.members[10] = []remote.MemberResponse{{WorkspaceID: 10, UserID: 1, RoleID: 1}}

	require.NoError(t, newSyncer(deps, api, fixedUser(1)).SyncOnce(context.Background()))

	assert.Equal(t, 1, count(t, deps.DB, "users"))
	assert.Equal(t, 2, count(t, deps.DB, "workspaces"))
	assert.Equal(t, 2, count(t, deps.DB, "projects"))
	assert.Equal(t, 1, count(t, deps.DB, "workspace_members"))
}

func TestSyncer_RecordsLastSync(t *testing.T) {
	ctx := context.Background()
	deps := setupDeps(t)
	api := newFakeRemote()
	api.users[1] = remote.UserResponse{ID: 1, Username: "ann"}
	s := newSyncer(deps, api, fixedUser(1))
	s.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("EET", 2*3600)) }

	_, ok, err := s.LastSync(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SyncOnce(ctx))

	// A fresh syncer over the same cache sees the stamp.
	last, ok, err := newSyncer(deps, api, fixedUser(1)).LastSync(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, last.Equal(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)), last)
}

func TestSyncer_SignedOut(t *testing.T) {
	deps := setupDeps(t)
	api := newFakeRemote()
	err := newSyncer(deps, api, fixedUser(0)).SyncOnce(context.Background())
	require.ErrorIs(t, err, ErrNotSignedIn)
	assert.Zero(t, api.called("ListWorkspaces"))
}

func TestSyncer_StopsOnError(t *testing.T) {
	deps := setupDeps(t)
	api := newFakeRemote()
	api.users[1] = remote.UserResponse{ID: 1, Username: "ann"}
	api.workspaces[10] = remote.WorkspaceResponse{ID: 10, Title: "Home", OwnerID: 1}
	api.failWith("ListProjects", &remote.HTTPError{StatusCode: 500})

	s := newSyncer(deps, api, fixedUser(1))
	err := s.SyncOnce(context.Background())
	require.ErrorIs(t, err, remote.ErrServer)

	_, ok, err := s.LastSync(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSyncer_RunUntilCancelled(t *testing.T) {
	deps := setupDeps(t)
	api := newFakeRemote()
	s := newSyncer(deps, api, fixedUser(1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return api.called("ListWorkspaces") >= 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSyncer_RunDisabled(t *testing.T) {
	deps := setupDeps(t)
	api := newFakeRemote()
	newSyncer(deps, api, fixedUser(1)).Run(context.Background(), 0)
	assert.Zero(t, api.called("ListWorkspaces"))
}
