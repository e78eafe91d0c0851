package view

import (
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/cryptox"
)

// LockSet remembers which PIN-protected notes were unlocked in this session.
// It is never persisted.
type LockSet struct {
	mu       sync.RWMutex
	unlocked map[string]struct{}
}

func NewLockSet() *LockSet {
	return &LockSet{unlocked: make(map[string]struct{})}
}

// Unlock adds the note to the set when pin matches its stored PIN.
func (l *LockSet) Unlock(n models.Note, pin string) error {
	if !n.HasPIN() {
		return nil
	}
	if !cryptox.MatchPIN(*n.Password, pin) {
		return common.NewUserError(common.ErrWrongPIN, "Wrong PIN")
	}
	l.mu.Lock()
	l.unlocked[n.ID] = struct{}{}
	l.mu.Unlock()
	return nil
}

// Locked reports whether n must be shown as a placeholder.
func (l *LockSet) Locked(n models.Note) bool {
	if !n.HasPIN() {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.unlocked[n.ID]
	return !ok
}

// Require returns "Note is locked." for a locked note.
func (l *LockSet) Require(n models.Note) error {
	if l.Locked(n) {
		return common.NewUserError(common.ErrLocked, "Note is locked.")
	}
	return nil
}

func (l *LockSet) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.unlocked)
}

func (l *LockSet) Clear() {
	l.mu.Lock()
	l.unlocked = make(map[string]struct{})
	l.mu.Unlock()
}
