package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// Syncer periodically pulls the signed-in user's workspaces and their
// projects into the cache.
type Syncer struct {
	users      *UserService
	workspaces *WorkspaceService
	projects   *ProjectService
	current    CurrentUser
	meta       metadata.Repository
	log        logging.Logger
	now        func() time.Time

	// parallel bounds the per-workspace fan-out.
	parallel int
}

func NewSyncer(users *UserService, workspaces *WorkspaceService, projects *ProjectService, current CurrentUser, log logging.Logger) *Syncer {
	if log == nil {
		log = logging.Nop()
	}
	return &Syncer{
		users:      users,
		workspaces: workspaces,
		projects:   projects,
		current:    current,
		meta:       metadata.NewSQLiteRepository(workspaces.db),
		log:        log,
		now:        time.Now,
		parallel:   4,
	}
}

// SyncOnce refreshes the current user, their workspaces, and the projects
// and members of every cached workspace. The first error cancels the rest.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	userID, ok := s.current.UserID()
	if !ok {
		return ErrNotSignedIn
	}

	if err := s.workspaces.Refresh(ctx, userID); err != nil {
		return err
	}
	list, err := s.workspaces.Cached(ctx, userID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	g.Go(func() error {
		_, err := s.users.Refresh(gctx, userID)
		return err
	})
	for _, ws := range list {
		ws := ws
		g.Go(func() error {
			if err := s.projects.Refresh(gctx, ws.ID); err != nil {
				return err
			}
			return s.workspaces.RefreshMembers(gctx, ws.ID)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	if err := s.meta.Put(ctx, metadata.KeyLastSync, stamp); err != nil {
		s.log.Warn(ctx, "could not record sync time", "error", err)
	}
	s.log.Debug(ctx, "sync finished", "user_id", userID, "workspaces", len(list))
	return nil
}

// LastSync returns the time of the last successful SyncOnce, possibly from
// a previous run.
func (s *Syncer) LastSync(ctx context.Context) (time.Time, bool, error) {
	v, ok, err := s.meta.Get(ctx, metadata.KeyLastSync)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last sync %q: %w", v, err)
	}
	return t, true, nil
}

// Run calls SyncOnce every interval until ctx is done. Failures are logged
// and retried on the next tick. A non-positive interval disables it.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := s.SyncOnce(ctx)
			switch {
			case err == nil, ctx.Err() != nil:
			case errors.Is(err, ErrNotSignedIn):
				s.log.Debug(ctx, "background sync skipped", "reason", err)
			default:
				s.log.Warn(ctx, "background sync failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
