package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/mapper"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/members"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/workspaces"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

type WorkspaceInput struct {
	Title   string
	OwnerID int64
}

// WorkspaceAPI is the remote surface used by WorkspaceService.
type WorkspaceAPI interface {
	remote.WorkspaceAPI
	remote.MemberAPI
}

// WorkspaceService is a Collection keyed by owner id, plus membership.
type WorkspaceService struct {
	*cached[models.Workspace, WorkspaceInput, remote.WorkspaceResponse]
	api WorkspaceAPI
}

var _ Collection[models.Workspace, WorkspaceInput] = (*WorkspaceService)(nil)

func NewWorkspaceService(deps Deps, api WorkspaceAPI) *WorkspaceService {
	toRequest := func(in WorkspaceInput) remote.WorkspaceRequest {
		return remote.WorkspaceRequest{Title: in.Title, OwnerID: in.OwnerID}
	}
	c := &cached[models.Workspace, WorkspaceInput, remote.WorkspaceResponse]{
		name:        "workspace",
		db:          deps.DB,
		hub:         deps.Hub,
		log:         deps.logger(),
		writeTopics: []watch.Topic{watch.TopicWorkspaces, watch.TopicMembers},
		readTopics:  []watch.Topic{watch.TopicWorkspaces},
		validate: func(in WorkspaceInput) error {
			return required("title", in.Title)
		},
		get: func(ctx context.Context, q dbx.DBTX, id int64) (*models.Workspace, error) {
			row, err := workspaces.NewSQLiteRepository(q).Get(ctx, id)
			if err != nil || row == nil {
				return nil, err
			}
			m := mapper.WorkspaceRowToModel(*row)
			return &m, nil
		},
		list: func(ctx context.Context, q dbx.DBTX, ownerID int64) ([]models.Workspace, error) {
			rows, err := workspaces.NewSQLiteRepository(q).ListByOwner(ctx, ownerID)
			if err != nil {
				return nil, err
			}
			return mapper.Map(rows, mapper.WorkspaceRowToModel), nil
		},
		save: func(ctx context.Context, tx dbx.DBTX, d remote.WorkspaceResponse) (models.Workspace, error) {
			m := mapper.WorkspaceDTOToModel(d)
			return m, workspaces.NewSQLiteRepository(tx).Upsert(ctx, mapper.WorkspaceModelToRow(m))
		},
		evict: func(ctx context.Context, tx dbx.DBTX, id int64) (bool, error) {
			if _, err := members.NewSQLiteRepository(tx).DeleteByWorkspaceExcept(ctx, id, nil); err != nil {
				return false, err
			}
			return workspaces.NewSQLiteRepository(tx).Delete(ctx, id)
		},
		prune: func(ctx context.Context, tx dbx.DBTX, ownerID int64, keep []int64) error {
			_, err := workspaces.NewSQLiteRepository(tx).DeleteByOwnerExcept(ctx, ownerID, keep)
			return err
		},
		idOf:  func(d remote.WorkspaceResponse) int64 { return d.ID },
		fetch: api.ListWorkspaces,
		create: func(ctx context.Context, in WorkspaceInput) (*remote.WorkspaceResponse, error) {
			return api.CreateWorkspace(ctx, toRequest(in))
		},
		update: func(ctx context.Context, id int64, in WorkspaceInput) (*remote.WorkspaceResponse, error) {
			return api.UpdateWorkspace(ctx, id, toRequest(in))
		},
		remove: api.DeleteWorkspace,
	}
	return &WorkspaceService{cached: c, api: api}
}

// RefreshOne fetches a single workspace; a 404 evicts it.
func (s *WorkspaceService) RefreshOne(ctx context.Context, id int64) (*models.Workspace, error) {
	dto, err := s.api.GetWorkspace(ctx, id)
	if err != nil {
		return nil, s.remoteFailed(ctx, "fetch", id, err)
	}
	return s.store(ctx, *dto)
}

// Cached returns the owner's cached workspaces without subscribing.
func (s *WorkspaceService) Cached(ctx context.Context, ownerID int64) ([]models.Workspace, error) {
	return s.list(ctx, s.db, ownerID)
}

func (s *WorkspaceService) ObserveMembers(ctx context.Context, workspaceID int64) *watch.Stream[[]models.WorkspaceMember] {
	return watch.Watch(ctx, s.hub, s.log, func(ctx context.Context) ([]models.WorkspaceMember, error) {
		rows, err := members.NewSQLiteRepository(s.db).ListByWorkspace(ctx, workspaceID)
		if err != nil {
			return nil, err
		}
		return mapper.Map(rows, mapper.MemberRowToModel), nil
	}, []models.WorkspaceMember{}, watch.TopicMembers)
}

func (s *WorkspaceService) RefreshMembers(ctx context.Context, workspaceID int64) error {
	dtos, err := s.api.ListMembers(ctx, workspaceID)
	if err != nil {
		s.log.Warn(ctx, "remote fetch failed", "resource", "member", "workspace_id", workspaceID, "error", err)
		return err
	}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := members.NewSQLiteRepository(tx)
		keep := make([]int64, 0, len(dtos))
		for _, d := range dtos {
			if err := repo.Upsert(ctx, mapper.MemberDTOToRow(d)); err != nil {
				return err
			}
			keep = append(keep, d.UserID)
		}
		_, err := repo.DeleteByWorkspaceExcept(ctx, workspaceID, keep)
		return err
	})
	if err != nil {
		return fmt.Errorf("refresh members: %w", err)
	}
	s.hub.Publish(watch.TopicMembers)
	return nil
}

// AddMember adds userID to the workspace. A 409 means the user is already a
// member.
func (s *WorkspaceService) AddMember(ctx context.Context, workspaceID, userID, roleID int64) (*models.WorkspaceMember, error) {
	if err := validateMember(userID, roleID); err != nil {
		return nil, err
	}
	dto, err := s.api.AddMember(ctx, workspaceID, remote.MemberRequest{UserID: userID, RoleID: roleID})
	if err != nil {
		s.log.Warn(ctx, "remote add member failed", "workspace_id", workspaceID, "user_id", userID, "error", err)
		return nil, err
	}
	return s.storeMember(ctx, *dto)
}

// UpdateMemberRole changes a member's role. A 404 evicts the membership.
func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, workspaceID, userID, roleID int64) (*models.WorkspaceMember, error) {
	if err := validateMember(userID, roleID); err != nil {
		return nil, err
	}
	dto, err := s.api.UpdateMember(ctx, workspaceID, userID, remote.MemberRequest{UserID: userID, RoleID: roleID})
	if err != nil {
		s.log.Warn(ctx, "remote update member failed", "workspace_id", workspaceID, "user_id", userID, "error", err)
		if errors.Is(err, remote.ErrNotFound) {
			if _, evictErr := s.evictMember(ctx, workspaceID, userID); evictErr != nil {
				s.log.Error(ctx, "evict failed", "workspace_id", workspaceID, "user_id", userID, "error", evictErr)
			}
		}
		return nil, err
	}
	return s.storeMember(ctx, *dto)
}

// RemoveMember follows the Delete contract of Collection.
func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	if err := s.api.RemoveMember(ctx, workspaceID, userID); err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			if _, evictErr := s.evictMember(ctx, workspaceID, userID); evictErr != nil {
				return false, evictErr
			}
			return false, nil
		}
		return false, err
	}
	return s.evictMember(ctx, workspaceID, userID)
}

func validateMember(userID, roleID int64) error {
	if err := positive("user id", userID); err != nil {
		return err
	}
	if _, err := models.RoleByID(roleID); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func (s *WorkspaceService) storeMember(ctx context.Context, d remote.MemberResponse) (*models.WorkspaceMember, error) {
	m := mapper.MemberDTOToModel(d)
	if err := members.NewSQLiteRepository(s.db).Upsert(ctx, mapper.MemberModelToRow(m)); err != nil {
		return nil, fmt.Errorf("cache member: %w", err)
	}
	s.hub.Publish(watch.TopicMembers)
	return &m, nil
}

func (s *WorkspaceService) evictMember(ctx context.Context, workspaceID, userID int64) (bool, error) {
	existed, err := members.NewSQLiteRepository(s.db).Delete(ctx, workspaceID, userID)
	if err != nil {
		return false, fmt.Errorf("evict member: %w", err)
	}
	if existed {
		s.hub.Publish(watch.TopicMembers)
	}
	return existed, nil
}
