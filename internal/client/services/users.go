package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/mapper"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// CurrentUser exposes the id of the signed-in user, if known.
type CurrentUser interface {
	UserID() (int64, bool)
}

// UserService caches user profiles. Users are never created or edited from
// the client.
type UserService struct {
	deps    Deps
	log     logging.Logger
	api     remote.UserAPI
	current CurrentUser
}

func NewUserService(deps Deps, api remote.UserAPI, current CurrentUser) *UserService {
	return &UserService{deps: deps, log: deps.logger(), api: api, current: current}
}

func loadUser(ctx context.Context, q dbx.DBTX, id int64) (*models.User, error) {
	row, err := users.NewSQLiteRepository(q).Get(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	u := mapper.UserRowToModel(*row)
	return &u, nil
}

func (s *UserService) ObserveByID(ctx context.Context, id int64) *watch.Stream[*models.User] {
	return watch.Watch(ctx, s.deps.Hub, s.log, func(ctx context.Context) (*models.User, error) {
		return loadUser(ctx, s.deps.DB, id)
	}, nil, watch.TopicUsers)
}

// ObserveCurrent follows the signed-in user: it re-emits when the session
// changes as well as when the cached profile does.
func (s *UserService) ObserveCurrent(ctx context.Context) *watch.Stream[*models.User] {
	return watch.Watch(ctx, s.deps.Hub, s.log, func(ctx context.Context) (*models.User, error) {
		id, ok := s.current.UserID()
		if !ok {
			return nil, nil
		}
		return loadUser(ctx, s.deps.DB, id)
	}, nil, watch.TopicUsers, watch.TopicSession)
}

// Refresh fetches one profile. A 404 evicts the cached copy.
func (s *UserService) Refresh(ctx context.Context, id int64) (*models.User, error) {
	dto, err := s.api.GetUser(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "remote fetch failed", "resource", "user", "id", id, "error", err)
		if errors.Is(err, remote.ErrNotFound) {
			if _, evictErr := users.NewSQLiteRepository(s.deps.DB).Delete(ctx, id); evictErr != nil {
				return nil, fmt.Errorf("evict user %d: %w", id, evictErr)
			}
			s.deps.Hub.Publish(watch.TopicUsers)
		}
		return nil, err
	}

	m := mapper.UserDTOToModel(*dto)
	if err := users.NewSQLiteRepository(s.deps.DB).Upsert(ctx, mapper.UserModelToRow(m)); err != nil {
		return nil, fmt.Errorf("cache user: %w", err)
	}
	s.deps.Hub.Publish(watch.TopicUsers)
	return &m, nil
}

// RefreshCurrent refreshes the signed-in user's profile.
func (s *UserService) RefreshCurrent(ctx context.Context) (*models.User, error) {
	id, ok := s.current.UserID()
	if !ok {
		return nil, ErrNotSignedIn
	}
	return s.Refresh(ctx, id)
}
