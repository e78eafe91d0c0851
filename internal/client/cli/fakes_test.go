package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/client/controller"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/view"
)

// fakeCtl records calls and returns the error configured for the method.
type fakeCtl struct {
	online    bool
	view      controller.View
	auth      controller.AuthState
	notes     controller.NotesState
	modal     controller.ModalState
	locks     *view.LockSet
	displayed []models.Note

	errs  map[string]error
	calls []string

	email, password string
	submitted       []services.Draft
	exportPath      string
}

func newFakeCtl(notes ...models.Note) *fakeCtl {
	return &fakeCtl{
		online:    true,
		view:      controller.ViewMain,
		notes:     controller.NotesState{Categories: services.DefaultCategories(), Category: view.AllCategories},
		locks:     view.NewLockSet(),
		displayed: notes,
		errs:      map[string]error{},
	}
}

func (f *fakeCtl) call(name string, args ...any) error {
	rec := name
	for _, a := range args {
		rec += " " + fmt.Sprint(a)
	}
	f.calls = append(f.calls, rec)
	return f.errs[name]
}

func (f *fakeCtl) Init(context.Context) error { return f.call("Init") }
func (f *fakeCtl) Close()                     { _ = f.call("Close") }

func (f *fakeCtl) Auth() controller.AuthState    { return f.auth }
func (f *fakeCtl) Notes() controller.NotesState  { return f.notes }
func (f *fakeCtl) Modal() controller.ModalState  { return f.modal }
func (f *fakeCtl) Locks() *view.LockSet          { return f.locks }
func (f *fakeCtl) Online() bool                  { return f.online }
func (f *fakeCtl) ResolvedView() controller.View { return f.view }
func (f *fakeCtl) Displayed() []models.Note      { return f.displayed }

func (f *fakeCtl) ShowForgot() { _ = f.call("ShowForgot"); f.view = controller.ViewForgot }
func (f *fakeCtl) ShowLogin()  { _ = f.call("ShowLogin"); f.view = controller.ViewLogin }

func (f *fakeCtl) SignIn(_ context.Context, email, password string) error {
	f.email, f.password = email, password
	return f.call("SignIn", email)
}

func (f *fakeCtl) SignUp(_ context.Context, email, password string) error {
	f.email, f.password = email, password
	return f.call("SignUp", email)
}

func (f *fakeCtl) RequestPasswordReset(_ context.Context, email string) error {
	return f.call("RequestPasswordReset", email)
}

func (f *fakeCtl) UpdatePassword(_ context.Context, password string) error {
	f.password = password
	return f.call("UpdatePassword")
}

func (f *fakeCtl) ApplyRecoveryLink(_ context.Context, link string) error {
	return f.call("ApplyRecoveryLink", link)
}

func (f *fakeCtl) Logout(context.Context) { _ = f.call("Logout") }

func (f *fakeCtl) SetSearch(q string)                { _ = f.call("SetSearch", q); f.notes.Search = q }
func (f *fakeCtl) SetCategory(name string)           { _ = f.call("SetCategory", name); f.notes.Category = name }
func (f *fakeCtl) ToggleTrash(context.Context) error { return f.call("ToggleTrash") }

func (f *fakeCtl) StartEdit(id string) (models.Note, error) {
	if err := f.call("StartEdit", id); err != nil {
		return models.Note{}, err
	}
	for _, n := range f.displayed {
		if n.ID == id {
			f.notes.Editing = &n
			return n, nil
		}
	}
	return models.Note{}, fmt.Errorf("no note %s", id)
}

func (f *fakeCtl) CancelEdit() { _ = f.call("CancelEdit"); f.notes.Editing = nil }

func (f *fakeCtl) Submit(_ context.Context, d services.Draft) error {
	f.submitted = append(f.submitted, d)
	return f.call("Submit")
}

func (f *fakeCtl) TogglePin(_ context.Context, id string) error   { return f.call("TogglePin", id) }
func (f *fakeCtl) MoveToTrash(_ context.Context, id string) error { return f.call("MoveToTrash", id) }
func (f *fakeCtl) RestoreFromTrash(_ context.Context, id string) error {
	return f.call("RestoreFromTrash", id)
}
func (f *fakeCtl) PermanentDelete(_ context.Context, id string) error {
	return f.call("PermanentDelete", id)
}
func (f *fakeCtl) Undo(_ context.Context, id string) error { return f.call("Undo", id) }
func (f *fakeCtl) Unlock(id, pin string) error             { return f.call("Unlock", id, pin) }

func (f *fakeCtl) OpenNote(id string) error {
	if err := f.call("OpenNote", id); err != nil {
		return err
	}
	for _, n := range f.displayed {
		if n.ID == id {
			f.modal.Viewing = &n
		}
	}
	return nil
}

func (f *fakeCtl) OpenHistory(_ context.Context, id string) error { return f.call("OpenHistory", id) }
func (f *fakeCtl) OpenLogs(context.Context) error                 { return f.call("OpenLogs") }
func (f *fakeCtl) PreviewImage(id string) (string, error) {
	return "https://cdn.example/img.png", f.call("PreviewImage", id)
}
func (f *fakeCtl) OpenCategories() { _ = f.call("OpenCategories") }
func (f *fakeCtl) CloseModals()    { _ = f.call("CloseModals"); f.modal = controller.ModalState{} }

func (f *fakeCtl) AddCategory(_ context.Context, name string) error {
	return f.call("AddCategory", name)
}
func (f *fakeCtl) DeleteCategory(_ context.Context, name string) error {
	return f.call("DeleteCategory", name)
}
func (f *fakeCtl) Export(context.Context) (string, error) {
	return f.exportPath, f.call("Export")
}
func (f *fakeCtl) Refresh(context.Context) error { return f.call("Refresh") }

func (f *fakeCtl) called(name string) bool {
	for _, c := range f.calls {
		if c == name || strings.HasPrefix(c, name+" ") {
			return true
		}
	}
	return false
}

// captureOutput stubs printlnFn and returns everything printed.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var b strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&b, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &b
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(string, io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func newTestApp(ctl *fakeCtl, lines ...string) *App {
	return &App{ctl: ctl, reader: readerFromLines(lines...), out: io.Discard}
}
