package controller

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/common"
)

type fakeAuth struct {
	services.AuthService

	mu        sync.Mutex
	session   *models.Session
	restored  *models.Session
	signInErr error
	listeners []services.AuthListener
	signedOut bool
}

func (f *fakeAuth) Subscribe(fn services.AuthListener) func() {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
	return func() {}
}

func (f *fakeAuth) emit(e models.AuthEvent, s *models.Session) {
	f.session = s
	for _, fn := range f.listeners {
		fn(e, s)
	}
}

func (f *fakeAuth) Restore(context.Context, bool) *models.Session {
	f.emit(models.EventInitialSession, f.restored)
	return f.restored
}

func (f *fakeAuth) Session() *models.Session { return f.session }

func (f *fakeAuth) SignIn(_ context.Context, email, _ string) error {
	if f.signInErr != nil {
		return f.signInErr
	}
	f.emit(models.EventSignedIn, &models.Session{AccessToken: "t", User: models.User{ID: "u1", Email: email}})
	return nil
}

func (f *fakeAuth) SignUp(context.Context, string, string) (bool, error) { return true, nil }

func (f *fakeAuth) RequestPasswordReset(context.Context, string) error { return nil }

func (f *fakeAuth) UpdatePassword(context.Context, string) error { return nil }

func (f *fakeAuth) ApplyRecoveryLink(context.Context, string) error {
	f.emit(models.EventPasswordRecovery, &models.Session{AccessToken: "rec", User: models.User{ID: "u1"}})
	return nil
}

func (f *fakeAuth) SignOut(context.Context) {
	f.signedOut = true
	f.emit(models.EventSignedOut, nil)
}

type updateCall struct {
	current     models.Note
	draft       services.Draft
	keepHistory bool
}

type fakeNotes struct {
	services.NoteService

	list     []models.Note
	trash    []models.Note
	lists    []bool
	created  []services.Draft
	updates  []updateCall
	pins     map[string]bool
	trashed  []string
	restored []string
	purged   []string
	history  map[string][]models.HistorySnapshot
	applied  []string
	remote   int
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{pins: map[string]bool{}, history: map[string][]models.HistorySnapshot{}}
}

func (f *fakeNotes) List(_ context.Context, _ string, trashed bool) ([]models.Note, error) {
	f.remote++
	f.lists = append(f.lists, trashed)
	if trashed {
		return append([]models.Note(nil), f.trash...), nil
	}
	return append([]models.Note(nil), f.list...), nil
}

func (f *fakeNotes) Create(_ context.Context, uid string, d services.Draft) (*models.Note, error) {
	f.remote++
	f.created = append(f.created, d)
	n := models.Note{ID: "new", UserID: uid, Content: d.Content, Category: d.Category}
	f.list = append([]models.Note{n}, f.list...)
	return &n, nil
}

func (f *fakeNotes) Update(_ context.Context, _ string, current models.Note, d services.Draft, keep bool) (*models.Note, error) {
	f.remote++
	f.updates = append(f.updates, updateCall{current, d, keep})
	if keep {
		f.history[current.ID] = append([]models.HistorySnapshot{models.SnapshotOf(current)}, f.history[current.ID]...)
	}
	for i := range f.list {
		if f.list[i].ID == current.ID {
			f.list[i].Content = d.Content
			f.list[i].Category = d.Category
		}
	}
	n := current
	n.Content = d.Content
	return &n, nil
}

func (f *fakeNotes) SetPinned(_ context.Context, _, id string, pinned bool) error {
	f.remote++
	f.pins[id] = pinned
	return nil
}

func (f *fakeNotes) Trash(_ context.Context, _, id string) error {
	f.remote++
	f.trashed = append(f.trashed, id)
	return nil
}

func (f *fakeNotes) Restore(_ context.Context, _, id string) error {
	f.remote++
	f.restored = append(f.restored, id)
	return nil
}

func (f *fakeNotes) Purge(_ context.Context, _, id string) error {
	f.remote++
	f.purged = append(f.purged, id)
	return nil
}

func (f *fakeNotes) History(_ context.Context, _, id string) ([]models.HistorySnapshot, error) {
	f.remote++
	return f.history[id], nil
}

func (f *fakeNotes) LatestSnapshot(_ context.Context, _, id string) (*models.HistorySnapshot, error) {
	f.remote++
	h := f.history[id]
	if len(h) == 0 {
		return nil, common.NewUserError(common.ErrNoHistory, "No history found.")
	}
	return &h[0], nil
}

func (f *fakeNotes) ApplySnapshot(_ context.Context, _, id string, s *models.HistorySnapshot) error {
	f.remote++
	f.applied = append(f.applied, id)
	for i := range f.list {
		if f.list[i].ID == id {
			f.list[i].Content = s.Content
			f.list[i].Category = s.Category
		}
	}
	return nil
}

type fakeCategories struct {
	remote  []string
	added   []string
	deleted []string
	calls   int
}

func (f *fakeCategories) List(context.Context, string) ([]string, error) {
	f.calls++
	return services.MergeCategories(f.remote), nil
}

func (f *fakeCategories) Add(_ context.Context, _ string, name string, current []string) (string, error) {
	f.calls++
	name, err := services.ValidateNewCategory(name, current)
	if err != nil {
		return "", err
	}
	f.added = append(f.added, name)
	f.remote = append(f.remote, name)
	return name, nil
}

func (f *fakeCategories) Delete(_ context.Context, _ string, name string) error {
	f.calls++
	f.deleted = append(f.deleted, name)
	return nil
}

type fakeActivity struct {
	entries []models.ActivityLogEntry
	calls   int
}

func (f *fakeActivity) Recent(context.Context, string) ([]models.ActivityLogEntry, error) {
	f.calls++
	return f.entries, nil
}

type recordingUI struct {
	answer    bool
	questions []string
	messages  []string
}

func (r *recordingUI) Confirm(q string) bool {
	r.questions = append(r.questions, q)
	return r.answer
}

func (r *recordingUI) Notify(msg string) {
	r.messages = append(r.messages, msg)
}
