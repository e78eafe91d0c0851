package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/config"
	"github.com/dmitrijs2005/notekeeper/internal/client/controller"
	"github.com/dmitrijs2005/notekeeper/internal/client/export"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/netstate"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/activity"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/categories"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/history"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/dmitrijs2005/notekeeper/internal/client/view"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// controllerAPI is the part of *controller.Controller the commands use.
type controllerAPI interface {
	Init(ctx context.Context) error
	Close()

	Auth() controller.AuthState
	Notes() controller.NotesState
	Modal() controller.ModalState
	Locks() *view.LockSet
	Online() bool
	ResolvedView() controller.View
	Displayed() []models.Note

	ShowForgot()
	ShowLogin()
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
	RequestPasswordReset(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, password string) error
	ApplyRecoveryLink(ctx context.Context, link string) error
	Logout(ctx context.Context)

	SetSearch(q string)
	SetCategory(name string)
	ToggleTrash(ctx context.Context) error
	StartEdit(id string) (models.Note, error)
	CancelEdit()
	Submit(ctx context.Context, d services.Draft) error
	TogglePin(ctx context.Context, id string) error
	MoveToTrash(ctx context.Context, id string) error
	RestoreFromTrash(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
	Undo(ctx context.Context, id string) error
	Unlock(id, pin string) error

	OpenNote(id string) error
	OpenHistory(ctx context.Context, id string) error
	OpenLogs(ctx context.Context) error
	PreviewImage(id string) (string, error)
	OpenCategories()
	CloseModals()

	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
	Export(ctx context.Context) (string, error)
	Refresh(ctx context.Context) error
}

type App struct {
	config  *config.Config
	ctl     controllerAPI
	monitor *netstate.Monitor
	prober  netstate.Prober
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	// last is the list most recently printed by list; refs index into it.
	mu   sync.Mutex
	last []models.Note

	closers []io.Closer
}

// NewApp opens the local cache and the remote store, builds the services
// and returns an App ready to Run. The remote store is opened lazily, so
// NewApp succeeds while offline.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log, err := logging.New(c.LogBackend, logFile, c.LogLevel)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	a := &App{
		config:  c,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closers: []io.Closer{logFile},
	}

	cache, err := client.OpenCache(ctx, c.CachePath)
	if err != nil {
		log.Error(ctx, "error initializing cache", "error", err)
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, cache)

	remote, err := client.OpenRemote(c.DatabaseDSN)
	if err != nil {
		a.close()
		return nil, err
	}
	a.closers = append(a.closers, remote)

	if c.MigrateRemote {
		if err := client.MigrateRemote(ctx, remote); err != nil {
			log.Error(ctx, "remote migration failed", "error", err)
			a.close()
			return nil, err
		}
	}

	authClient := client.NewAuthClient(c.AuthURL, c.AnonKey, nil)
	a.monitor = netstate.NewMonitor(false, log.With("component", "netstate"))
	a.prober = client.NewProber(remote, authClient)
	a.ctl = a.newController(remote, cache, authClient, log)
	return a, nil
}

func (a *App) newController(remote, cache *sql.DB, authClient client.AuthProvider, log logging.Logger) *controller.Controller {
	c := a.config
	cacheSvc := services.NewCacheService(cache)

	noteSvc := services.NewNoteService(services.NoteServiceOptions{
		Notes:    notes.NewPostgresRepository(remote),
		History:  history.NewPostgresRepository(remote),
		Activity: activity.NewPostgresRepository(remote),
		Images: storage.NewS3Storage(storage.Options{
			Endpoint:  c.StorageEndpoint,
			Region:    c.StorageRegion,
			AccessKey: c.StorageAccessKey,
			SecretKey: c.StorageSecretKey,
			Bucket:    c.StorageBucket,
			PublicURL: c.StoragePublicURL,
		}),
		Log:      log.With("component", "notes"),
		SealPINs: c.SealPINs,
	})

	return controller.New(controller.Options{
		Auth:       services.NewAuthService(authClient, cacheSvc, c.RedirectURL, log.With("component", "auth")),
		Notes:      noteSvc,
		Categories: services.NewCategoryService(categories.NewPostgresRepository(remote)),
		Activity:   services.NewActivityService(activity.NewPostgresRepository(remote)),
		Cache:      cacheSvc,
		Net:        a.monitor,
		Exporter:   export.NewExporter(c.ExportDir),
		Confirm:    controller.ConfirmFunc(a.confirm),
		Notify:     controller.NotifyFunc(a.notify),
		Log:        log.With("component", "controller"),
	})
}

func (a *App) close() {
	if s, ok := a.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func (a *App) confirm(question string) bool {
	return confirmFn(a.reader, question, a.out)
}

func (a *App) notify(msg string) {
	printlnFn(msg)
}

// Run probes connectivity once, starts the online status watcher, loads
// cached state and runs the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to notekeeper (type 'help' for commands)")

	probeCtx, probeCancel := context.WithTimeout(ctx, a.config.OnlineCheckInterval)
	a.monitor.Check(probeCtx, a.prober)
	probeCancel()
	go a.monitor.Watch(ctx, a.prober, a.config.OnlineCheckInterval)

	if err := a.ctl.Init(ctx); err != nil {
		a.log.Warn(ctx, "initial refresh failed", "error", err)
		printlnFn(common.Message(err))
	}
	defer a.ctl.Close()

	runREPL(ctx, a, a.reader)
}

func (a *App) View() controller.View {
	return a.ctl.ResolvedView()
}

// Status is the prompt prefix: user, connectivity and the active filters.
func (a *App) Status() string {
	var parts []string
	if s := a.ctl.Auth().Session; s != nil {
		parts = append(parts, s.User.Email)
	}
	if a.ctl.Online() {
		parts = append(parts, "online")
	} else {
		parts = append(parts, "offline")
	}
	st := a.ctl.Notes()
	if st.ShowTrash {
		parts = append(parts, "trash")
	}
	if st.Category != "" && st.Category != view.AllCategories {
		parts = append(parts, "#"+st.Category)
	}
	if st.Search != "" {
		parts = append(parts, fmt.Sprintf("%q", st.Search))
	}
	if st.Editing != nil {
		parts = append(parts, "editing "+shortRef(st.Editing.ID))
	}
	return "(" + strings.Join(parts, " ") + ")"
}
