package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/blobstore"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
	"github.com/dmitrijs2005/taskkeeper/internal/client/session"
	"github.com/dmitrijs2005/taskkeeper/internal/client/store"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req remote.RegisterRequest) (string, error)
	Logout(ctx context.Context) error
	SignedIn() bool
}

type Profiles interface {
	ObserveCurrent(ctx context.Context) *watch.Stream[*models.User]
	RefreshCurrent(ctx context.Context) (*models.User, error)
}

type Members interface {
	ObserveMembers(ctx context.Context, workspaceID int64) *watch.Stream[[]models.WorkspaceMember]
	RefreshMembers(ctx context.Context, workspaceID int64) error
	AddMember(ctx context.Context, workspaceID, userID, roleID int64) (*models.WorkspaceMember, error)
	UpdateMemberRole(ctx context.Context, workspaceID, userID, roleID int64) (*models.WorkspaceMember, error)
	RemoveMember(ctx context.Context, workspaceID, userID int64) (bool, error)
}

type TaskActions interface {
	ObserveBookmarked(ctx context.Context) *watch.Stream[[]models.Task]
	ObserveAssignedTo(ctx context.Context, userID int64) *watch.Stream[[]models.Task]
	Bookmark(ctx context.Context, id int64) (bool, error)
	Assign(ctx context.Context, id, userID int64) (*models.Task, error)
	Unassign(ctx context.Context, id, userID int64) (*models.Task, error)
	SetStatus(ctx context.Context, id int64, status models.Status) (*models.Task, error)
}

type Tags interface {
	ObserveAll(ctx context.Context) *watch.Stream[[]models.Tag]
	ObserveForTask(ctx context.Context, taskID int64) *watch.Stream[[]models.Tag]
	Refresh(ctx context.Context) error
	Create(ctx context.Context, title, color string) (*models.Tag, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Attach(ctx context.Context, taskID, tagID int64) (*models.Task, error)
	Detach(ctx context.Context, taskID, tagID int64) (*models.Task, error)
}

type Media interface {
	ObserveForTask(ctx context.Context, taskID int64) *watch.Stream[[]models.Media]
	RefreshForTask(ctx context.Context, taskID int64) error
	Upload(ctx context.Context, taskID int64, filename, contentType string, body io.Reader) (*models.Media, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Syncer interface {
	SyncOnce(ctx context.Context) error
	Run(ctx context.Context, interval time.Duration)
	LastSync(ctx context.Context) (time.Time, bool, error)
}

// Services is everything the REPL talks to. Nil members disable the
// commands that need them.
type Services struct {
	Auth        Authenticator
	Current     services.CurrentUser
	Users       Profiles
	Workspaces  services.Collection[models.Workspace, services.WorkspaceInput]
	Members     Members
	Projects    services.Collection[models.Project, services.ProjectInput]
	Tasks       services.Collection[models.Task, services.TaskInput]
	TaskActions TaskActions
	Comments    services.Collection[models.Comment, services.CommentInput]
	Tags        Tags
	Media       Media
	Syncer      Syncer
}

type App struct {
	svc          Services
	log          logging.Logger
	syncInterval time.Duration
	reader       *bufio.Reader
	out          io.Writer
	closers      []func() error
}

// New returns an App over svc reading commands from in and printing to out.
func New(svc Services, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{svc: svc, log: log, reader: bufio.NewReader(in), out: out}
}

// NewApp wires the production stack from c: logger, SQLite cache, session,
// REST client, optional S3 blob store and the sync services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := newLogger(c)

	db, err := store.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	hub := watch.NewHub()
	holder := session.NewHolder(metadata.NewSQLiteRepository(db), hub)
	if err := holder.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	api := remote.New(c.BaseURL, holder,
		remote.WithTimeout(c.RequestTimeout),
		remote.WithRateLimit(c.RateLimit),
		remote.WithLogger(log),
	)

	svc := newServices(ctx, c, db, hub, holder, api, log)
	app := New(svc, log, os.Stdin, os.Stdout)
	app.syncInterval = c.SyncInterval
	app.closers = append(app.closers, db.Close)
	return app, nil
}

func newLogger(c *config.Config) logging.Logger {
	opts := logging.Options{Level: c.LogLevel, File: c.LogFile}
	if c.LogFile != "" {
		opts.Console = io.Discard
	}
	return logging.New(opts)
}

func newServices(ctx context.Context, c *config.Config, db *sql.DB, hub *watch.Hub, holder *session.Holder, api *remote.HTTPClient, log logging.Logger) Services {
	deps := services.Deps{DB: db, Hub: hub, Log: log}

	var blobs services.BlobStore
	if c.S3Endpoint != "" {
		s, err := blobstore.New(ctx, blobstore.Options{
			Endpoint:  c.S3Endpoint,
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		})
		if err != nil {
			log.Warn(ctx, "media uploads disabled", "error", err)
		} else {
			blobs = s
		}
	}

	users := services.NewUserService(deps, api, holder)
	workspaces := services.NewWorkspaceService(deps, api)
	projects := services.NewProjectService(deps, api)
	tasks := services.NewTaskService(deps, api)

	return Services{
		Auth:        services.NewAuthService(api, holder, log),
		Current:     holder,
		Users:       users,
		Workspaces:  workspaces,
		Members:     workspaces,
		Projects:    projects,
		Tasks:       tasks,
		TaskActions: tasks,
		Comments:    services.NewCommentService(deps, api),
		Tags:        services.NewTagService(deps, api),
		Media:       services.NewMediaService(deps, api, blobs),
		Syncer:      services.NewSyncer(users, workspaces, projects, holder, log),
	}
}

// Run starts background sync and blocks in the REPL until the user exits
// or ctx is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close(ctx)

	if a.svc.Syncer != nil {
		go a.svc.Syncer.Run(ctx, a.syncInterval)
	}

	fmt.Fprintln(a.out, "Welcome to taskkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn(ctx, "close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.svc.Auth != nil && a.svc.Auth.SignedIn()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	if a.svc.Current != nil {
		if id, ok := a.svc.Current.UserID(); ok {
			return fmt.Sprintf("(user %d)", id)
		}
	}
	return "(signed in)"
}

func (a *App) userID() (int64, error) {
	if a.svc.Current == nil {
		return 0, services.ErrNotSignedIn
	}
	id, ok := a.svc.Current.UserID()
	if !ok {
		return 0, services.ErrNotSignedIn
	}
	return id, nil
}
