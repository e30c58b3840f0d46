package services

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/mapper"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/projects"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
)

type ProjectInput struct {
	Title       string
	Icon        string
	WorkspaceID int64
}

// ProjectService is a Collection keyed by workspace id.
type ProjectService struct {
	*cached[models.Project, ProjectInput, remote.ProjectResponse]
	api remote.ProjectAPI
}

var _ Collection[models.Project, ProjectInput] = (*ProjectService)(nil)

func NewProjectService(deps Deps, api remote.ProjectAPI) *ProjectService {
	toRequest := func(in ProjectInput) remote.ProjectRequest {
		return remote.ProjectRequest{Title: in.Title, Icon: in.Icon, WorkspaceID: in.WorkspaceID}
	}
	c := &cached[models.Project, ProjectInput, remote.ProjectResponse]{
		name:        "project",
		db:          deps.DB,
		hub:         deps.Hub,
		log:         deps.logger(),
		writeTopics: []watch.Topic{watch.TopicProjects},
		readTopics:  []watch.Topic{watch.TopicProjects},
		validate: func(in ProjectInput) error {
			if err := required("title", in.Title); err != nil {
				return err
			}
			return positive("workspace id", in.WorkspaceID)
		},
		get: func(ctx context.Context, q dbx.DBTX, id int64) (*models.Project, error) {
			row, err := projects.NewSQLiteRepository(q).Get(ctx, id)
			if err != nil || row == nil {
				return nil, err
			}
			m := mapper.ProjectRowToModel(*row)
			return &m, nil
		},
		list: func(ctx context.Context, q dbx.DBTX, workspaceID int64) ([]models.Project, error) {
			rows, err := projects.NewSQLiteRepository(q).ListByWorkspace(ctx, workspaceID)
			if err != nil {
				return nil, err
			}
			return mapper.Map(rows, mapper.ProjectRowToModel), nil
		},
		save: func(ctx context.Context, tx dbx.DBTX, d remote.ProjectResponse) (models.Project, error) {
			m := mapper.ProjectDTOToModel(d)
			return m, projects.NewSQLiteRepository(tx).Upsert(ctx, mapper.ProjectModelToRow(m))
		},
		evict: func(ctx context.Context, tx dbx.DBTX, id int64) (bool, error) {
			return projects.NewSQLiteRepository(tx).Delete(ctx, id)
		},
		prune: func(ctx context.Context, tx dbx.DBTX, workspaceID int64, keep []int64) error {
			_, err := projects.NewSQLiteRepository(tx).DeleteByWorkspaceExcept(ctx, workspaceID, keep)
			return err
		},
		idOf:  func(d remote.ProjectResponse) int64 { return d.ID },
		fetch: api.ListProjects,
		create: func(ctx context.Context, in ProjectInput) (*remote.ProjectResponse, error) {
			return api.CreateProject(ctx, toRequest(in))
		},
		update: func(ctx context.Context, id int64, in ProjectInput) (*remote.ProjectResponse, error) {
			return api.UpdateProject(ctx, id, toRequest(in))
		},
		remove: api.DeleteProject,
	}
	return &ProjectService{cached: c, api: api}
}

// RefreshOne fetches a single project; a 404 evicts it.
func (s *ProjectService) RefreshOne(ctx context.Context, id int64) (*models.Project, error) {
	dto, err := s.api.GetProject(ctx, id)
	if err != nil {
		return nil, s.remoteFailed(ctx, "fetch", id, err)
	}
	return s.store(ctx, *dto)
}
