// Package controller owns the client state and runs every user operation:
// connectivity policy, validation and confirmation first, then the service
// call, then a re-fetch.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/client/export"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/netstate"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/view"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) bool
}

// Notifier shows an informational message.
type Notifier interface {
	Notify(msg string)
}

type ConfirmFunc func(question string) bool

func (f ConfirmFunc) Confirm(q string) bool { return f(q) }

type NotifyFunc func(msg string)

func (f NotifyFunc) Notify(msg string) { f(msg) }

type Options struct {
	Auth       services.AuthService
	Notes      services.NoteService
	Categories services.CategoryService
	Activity   services.ActivityService
	Cache      services.CacheService
	Net        *netstate.Monitor
	Exporter   *export.Exporter
	Confirm    Confirmer
	Notify     Notifier
	Log        logging.Logger
}

type Controller struct {
	authSvc     services.AuthService
	noteSvc     services.NoteService
	categorySvc services.CategoryService
	activitySvc services.ActivityService
	cache       services.CacheService
	net         *netstate.Monitor
	exporter    *export.Exporter
	confirm     Confirmer
	notify      Notifier
	log         logging.Logger

	// opMu serialises user operations.
	opMu sync.Mutex

	mu    sync.RWMutex
	auth  AuthState
	notes NotesState
	modal ModalState
	locks *view.LockSet

	// async runs listener-triggered work.
	async func(func())
	unsub []func()
}

func New(opts Options) *Controller {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	confirm := opts.Confirm
	if confirm == nil {
		confirm = ConfirmFunc(func(string) bool { return true })
	}
	notify := opts.Notify
	if notify == nil {
		notify = NotifyFunc(func(string) {})
	}
	net := opts.Net
	if net == nil {
		net = netstate.NewMonitor(true, log)
	}
	return &Controller{
		authSvc:     opts.Auth,
		noteSvc:     opts.Notes,
		categorySvc: opts.Categories,
		activitySvc: opts.Activity,
		cache:       opts.Cache,
		net:         net,
		exporter:    opts.Exporter,
		confirm:     confirm,
		notify:      notify,
		log:         log,
		auth:        AuthState{View: ViewLogin},
		notes: NotesState{
			Notes:      []models.Note{},
			Categories: services.DefaultCategories(),
			Category:   view.AllCategories,
		},
		locks: view.NewLockSet(),
		async: func(f func()) { go f() },
	}
}

// Init seeds state from the cache, restores the session and, when online,
// fetches fresh data.
func (c *Controller) Init(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	notes, err := c.cache.LoadNotes(ctx)
	if err != nil {
		c.log.Warn(ctx, "failed to read cached notes", "error", err)
	}
	cats, err := c.cache.LoadCategories(ctx)
	if err != nil {
		c.log.Warn(ctx, "failed to read cached categories", "error", err)
	}

	c.mu.Lock()
	c.notes.Notes = notes
	c.notes.Categories = cats
	c.mu.Unlock()

	c.unsub = append(c.unsub,
		c.authSvc.Subscribe(c.onAuthEvent),
		c.net.Subscribe(c.onNetChange),
	)

	if s := c.authSvc.Restore(ctx, c.net.Online()); s != nil {
		c.setView(ViewMain)
	}
	return c.refresh(ctx)
}

// Close detaches the listeners registered by Init.
func (c *Controller) Close() {
	for _, fn := range c.unsub {
		fn()
	}
	c.unsub = nil
}

func (c *Controller) onAuthEvent(event models.AuthEvent, s *models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.auth.Session = s
	switch event {
	case models.EventPasswordRecovery:
		c.auth.View = ViewReset
	case models.EventSignedIn:
		c.auth.View = ViewMain
	case models.EventSignedOut:
		c.auth.View = ViewLogin
	}
}

func (c *Controller) onNetChange(online bool) {
	if !online {
		return
	}
	c.async(func() {
		ctx := context.Background()
		if err := c.Refresh(ctx); err != nil {
			c.log.Warn(ctx, "refresh after reconnect failed", "error", err)
		}
	})
}

func (c *Controller) setView(v View) {
	c.mu.Lock()
	c.auth.View = v
	c.mu.Unlock()
}

// Auth returns a copy of the auth state.
func (c *Controller) Auth() AuthState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}

// Notes returns a copy of the notes state.
func (c *Controller) Notes() NotesState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notes.clone()
}

// Modal returns a copy of the modal state.
func (c *Controller) Modal() ModalState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modal
}

func (c *Controller) Locks() *view.LockSet { return c.locks }

func (c *Controller) Online() bool { return c.net.Online() }

// ResolvedView applies the login gate. With no session but cached notes the
// main view is shown so the user can read offline.
func (c *Controller) ResolvedView() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := c.auth.View
	if c.auth.Session == nil && len(c.notes.Notes) == 0 && v != ViewForgot && v != ViewReset {
		return ViewLogin
	}
	if v == ViewForgot || v == ViewReset {
		return v
	}
	return ViewMain
}

// Displayed returns the notes matching the current search and category.
func (c *Controller) Displayed() []models.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return view.Filter(c.notes.Notes, c.notes.Search, c.notes.Category)
}

// Note finds a loaded note by id.
func (c *Controller) Note(id string) (models.Note, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, n := range c.notes.Notes {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Note{}, common.NewUserError(common.ErrNotFound, "Note not found.")
}

func (c *Controller) userID() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.auth.Session == nil {
		return "", common.NewUserError(common.ErrUnauthorized, "Please log in first.")
	}
	return c.auth.Session.User.ID, nil
}

// guard runs the connectivity check for action, then resolves the user.
func (c *Controller) guard(action netstate.Action) (string, error) {
	if err := c.net.Require(action); err != nil {
		return "", err
	}
	return c.userID()
}

// Refresh re-fetches notes and categories. It does nothing offline or
// without a session.
func (c *Controller) Refresh(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) error {
	return errors.Join(c.fetchNotes(ctx), c.fetchCategories(ctx))
}

func (c *Controller) fetchNotes(ctx context.Context) error {
	if !c.net.Online() {
		return nil
	}
	uid, err := c.userID()
	if err != nil {
		return nil
	}

	c.mu.RLock()
	trash := c.notes.ShowTrash
	c.mu.RUnlock()

	list, err := c.noteSvc.List(ctx, uid, trash)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.notes.Notes = list
	c.mu.Unlock()

	if !trash {
		if err := c.cache.SaveNotes(ctx, list); err != nil {
			c.log.Warn(ctx, "failed to cache notes", "error", err)
		}
	}
	return nil
}

func (c *Controller) fetchCategories(ctx context.Context) error {
	if !c.net.Online() {
		return nil
	}
	uid, err := c.userID()
	if err != nil {
		return nil
	}

	cats, err := c.categorySvc.List(ctx, uid)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.notes.Categories = cats
	c.mu.Unlock()

	if err := c.cache.SaveCategories(ctx, cats); err != nil {
		c.log.Warn(ctx, "failed to cache categories", "error", err)
	}
	return nil
}
