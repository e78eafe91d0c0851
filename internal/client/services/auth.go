// Package services contains the application services of the notekeeper
// client. Each service wraps repositories or remote clients and leaves
// connectivity checks, confirmations and view state to the controller.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// refreshMargin is how close to expiry a session is refreshed ahead of use.
const refreshMargin = time.Minute

// AuthListener receives session changes. s is nil after sign-out.
type AuthListener func(event models.AuthEvent, s *models.Session)

// AuthService holds the current session and persists it in the cache.
//
// Contract:
//   - Restore: load the persisted session, refresh it when expired and online.
//   - SignIn / SignUp: authenticate and persist the new session.
//   - RequestPasswordReset / UpdatePassword: the recovery flow.
//   - ApplyRecoveryLink: install the session carried by a recovery link.
//   - SignOut: always clears the local session and cache.
type AuthService interface {
	Restore(ctx context.Context, online bool) *models.Session
	Session() *models.Session
	SignIn(ctx context.Context, email, password string) error
	// SignUp reports whether the account needs email confirmation first.
	SignUp(ctx context.Context, email, password string) (bool, error)
	RequestPasswordReset(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, password string) error
	ApplyRecoveryLink(ctx context.Context, link string) error
	SignOut(ctx context.Context)
	Subscribe(fn AuthListener) func()
}

type authService struct {
	provider    client.AuthProvider
	cache       CacheService
	redirectURL string
	log         logging.Logger
	now         func() time.Time

	mu        sync.RWMutex
	session   *models.Session
	nextID    int
	listeners map[int]AuthListener
}

func NewAuthService(provider client.AuthProvider, cache CacheService, redirectURL string, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{
		provider:    provider,
		cache:       cache,
		redirectURL: redirectURL,
		log:         log,
		now:         time.Now,
		listeners:   make(map[int]AuthListener),
	}
}

func (a *authService) Session() *models.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *authService) Subscribe(fn AuthListener) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.listeners, id)
	}
}

func (a *authService) emit(event models.AuthEvent, s *models.Session) {
	a.mu.RLock()
	fns := make([]AuthListener, 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.mu.RUnlock()

	for _, fn := range fns {
		fn(event, s)
	}
}

// install sets and persists s, then notifies listeners with event.
func (a *authService) install(ctx context.Context, event models.AuthEvent, s *models.Session) {
	a.mu.Lock()
	a.session = s
	a.mu.Unlock()

	if err := a.cache.SaveSession(ctx, s); err != nil {
		a.log.Warn(ctx, "failed to persist session", "error", err)
	}
	a.emit(event, s)
}

func (a *authService) Restore(ctx context.Context, online bool) *models.Session {
	s, err := a.cache.LoadSession(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to load persisted session", "error", err)
	}

	if s != nil && online && s.ExpiresWithin(a.now(), 0) {
		fresh, err := a.refresh(ctx, s)
		if err != nil {
			a.log.Warn(ctx, "session refresh failed", "error", err)
			s = nil
			if err := a.cache.SaveSession(ctx, nil); err != nil {
				a.log.Warn(ctx, "failed to drop expired session", "error", err)
			}
		} else {
			s = fresh
			if err := a.cache.SaveSession(ctx, s); err != nil {
				a.log.Warn(ctx, "failed to persist session", "error", err)
			}
		}
	}

	a.mu.Lock()
	a.session = s
	a.mu.Unlock()

	a.emit(models.EventInitialSession, s)
	return s
}

func (a *authService) refresh(ctx context.Context, s *models.Session) (*models.Session, error) {
	if s.RefreshToken == "" {
		return nil, errors.New("session has no refresh token")
	}
	return a.provider.Refresh(ctx, s.RefreshToken)
}

// fresh returns the current session, refreshing it when close to expiry.
func (a *authService) fresh(ctx context.Context) (*models.Session, error) {
	s := a.Session()
	if s == nil {
		return nil, common.NewUserError(common.ErrUnauthorized, "Not signed in.")
	}
	if !s.ExpiresWithin(a.now(), refreshMargin) {
		return s, nil
	}
	next, err := a.refresh(ctx, s)
	if err != nil {
		return nil, err
	}
	a.install(ctx, models.EventTokenRefreshed, next)
	return next, nil
}

func (a *authService) SignIn(ctx context.Context, email, password string) error {
	s, err := a.provider.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "signed in", "user_id", s.User.ID)
	a.install(ctx, models.EventSignedIn, s)
	return nil
}

func (a *authService) SignUp(ctx context.Context, email, password string) (bool, error) {
	s, err := a.provider.SignUp(ctx, email, password)
	if err != nil {
		return false, err
	}
	if s == nil {
		return true, nil
	}
	a.log.Info(ctx, "signed up", "user_id", s.User.ID)
	a.install(ctx, models.EventSignedIn, s)
	return false, nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	return a.provider.Recover(ctx, email, a.redirectURL)
}

func (a *authService) UpdatePassword(ctx context.Context, password string) error {
	s, err := a.fresh(ctx)
	if err != nil {
		return err
	}
	if err := a.provider.UpdatePassword(ctx, s.AccessToken, password); err != nil {
		return err
	}
	a.emit(models.EventUserUpdated, s)
	return nil
}

func (a *authService) ApplyRecoveryLink(ctx context.Context, link string) error {
	s, err := client.ParseRecoveryLink(link, a.now())
	if err != nil {
		if errors.Is(err, client.ErrNotRecoveryLink) {
			return common.NewUserError(common.ErrValidation, "Not a password recovery link.")
		}
		return common.NewUserError(common.ErrValidation, "Invalid recovery link.")
	}
	a.install(ctx, models.EventPasswordRecovery, s)
	return nil
}

// SignOut never fails: remote errors are logged and local state is wiped.
func (a *authService) SignOut(ctx context.Context) {
	if s := a.Session(); s != nil && a.provider != nil {
		if err := a.provider.SignOut(ctx, s.AccessToken); err != nil {
			a.log.Warn(ctx, "remote sign-out failed", "error", err)
		}
	}

	if err := a.cache.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear local cache", "error", err)
	}

	a.mu.Lock()
	a.session = nil
	a.mu.Unlock()

	a.log.Info(ctx, "signed out")
	a.emit(models.EventSignedOut, nil)
}
