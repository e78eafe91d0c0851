// Package netstate tracks whether the backend is reachable and gates
// remote operations on it.
package netstate

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// Action names a remote operation that needs connectivity.
type Action string

const (
	ActionLogin          Action = "login"
	ActionSignup         Action = "signup"
	ActionResetPassword  Action = "reset-password"
	ActionUpdatePassword Action = "update-password"
	ActionSave           Action = "save"
	ActionPin            Action = "pin"
	ActionTrash          Action = "trash"
	ActionRestore        Action = "restore"
	ActionDelete         Action = "delete"
	ActionUndo           Action = "undo"
	ActionAddCategory    Action = "add-category"
	ActionDeleteCategory Action = "delete-category"
	ActionHistory        Action = "history"
	ActionLogs           Action = "logs"
	ActionRefresh        Action = "refresh"
)

var offlineMessages = map[Action]string{
	ActionLogin:          "Cannot login while offline.",
	ActionSignup:         "Cannot signup while offline.",
	ActionResetPassword:  "Offline.",
	ActionUpdatePassword: "Offline.",
	ActionSave:           "You are OFFLINE. Cannot save edits.",
	ActionPin:            "Offline: Cannot pin.",
	ActionTrash:          "Offline: Cannot trash.",
	ActionRestore:        "Offline: Cannot restore.",
	ActionDelete:         "Offline: Cannot delete.",
	ActionUndo:           "Offline: Cannot undo.",
	ActionAddCategory:    "Offline: Cannot add categories.",
	ActionDeleteCategory: "Offline: Cannot delete categories.",
	ActionHistory:        "History requires internet.",
	ActionLogs:           "Logs require internet.",
}

// OfflineError is returned by Require when the monitor is offline.
type OfflineError struct {
	Action Action
}

func (e *OfflineError) Error() string {
	if msg, ok := offlineMessages[e.Action]; ok {
		return msg
	}
	return "Offline."
}

func (e *OfflineError) Is(target error) bool { return target == common.ErrOffline }

// Prober checks connectivity; a nil error means online.
type Prober interface {
	Probe(ctx context.Context) error
}

type ProberFunc func(ctx context.Context) error

func (f ProberFunc) Probe(ctx context.Context) error { return f(ctx) }

// Monitor holds the online flag. Listeners fire only on transitions.
type Monitor struct {
	mu        sync.RWMutex
	online    bool
	nextID    int
	listeners map[int]func(online bool)
	log       logging.Logger
}

func NewMonitor(online bool, log logging.Logger) *Monitor {
	if log == nil {
		log = logging.Nop()
	}
	return &Monitor{
		online:    online,
		listeners: make(map[int]func(bool)),
		log:       log,
	}
}

func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Set records the new state and notifies listeners when it changed.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	fns := make([]func(bool), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	m.log.Info(context.Background(), "connectivity changed", "online", online)
	for _, fn := range fns {
		fn(online)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Require returns an *OfflineError for action when offline.
func (m *Monitor) Require(action Action) error {
	if m.Online() {
		return nil
	}
	return &OfflineError{Action: action}
}

// Check runs one probe and feeds the result into Set.
func (m *Monitor) Check(ctx context.Context, p Prober) bool {
	err := p.Probe(ctx)
	if err != nil && m.Online() {
		m.log.Warn(ctx, "connectivity probe failed", "error", err)
	}
	m.Set(err == nil)
	return err == nil
}

// Watch probes every interval until ctx is done.
func (m *Monitor) Watch(ctx context.Context, p Prober, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval)
			m.Check(probeCtx, p)
			cancel()
		}
	}
}
