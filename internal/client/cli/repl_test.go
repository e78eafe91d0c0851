package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/client/controller"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	view  controller.View
	calls []string
	err   error
}

func (f *fakeExec) rec(name string, arg ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(arg, " ")))
	return f.err
}

func (f *fakeExec) View() controller.View { return f.view }
func (f *fakeExec) Status() string        { return "(test)" }

func (f *fakeExec) Login(context.Context) error {
	f.view = controller.ViewMain
	return f.rec("login")
}
func (f *fakeExec) SignUp(context.Context) error { return f.rec("signup") }
func (f *fakeExec) Forgot(context.Context) error {
	f.view = controller.ViewForgot
	return f.rec("forgot")
}
func (f *fakeExec) Recover(_ context.Context, link string) error { return f.rec("recover", link) }
func (f *fakeExec) SendReset(context.Context) error              { return f.rec("send") }
func (f *fakeExec) Back(context.Context) error {
	f.view = controller.ViewLogin
	return f.rec("back")
}
func (f *fakeExec) NewPassword(context.Context) error { return f.rec("newpassword") }

func (f *fakeExec) List(context.Context) error                 { return f.rec("list") }
func (f *fakeExec) Search(_ context.Context, q string) error   { return f.rec("search", q) }
func (f *fakeExec) Category(_ context.Context, n string) error { return f.rec("category", n) }
func (f *fakeExec) Trash(context.Context) error                { return f.rec("trash") }
func (f *fakeExec) New(context.Context) error                  { return f.rec("new") }
func (f *fakeExec) Edit(_ context.Context, r string) error     { return f.rec("edit", r) }
func (f *fakeExec) Cancel(context.Context) error               { return f.rec("cancel") }
func (f *fakeExec) Pin(_ context.Context, r string) error      { return f.rec("pin", r) }
func (f *fakeExec) Remove(_ context.Context, r string) error   { return f.rec("rm", r) }
func (f *fakeExec) Restore(_ context.Context, r string) error  { return f.rec("restore", r) }
func (f *fakeExec) Purge(_ context.Context, r string) error    { return f.rec("purge", r) }
func (f *fakeExec) Undo(_ context.Context, r string) error     { return f.rec("undo", r) }
func (f *fakeExec) History(_ context.Context, r string) error  { return f.rec("history", r) }
func (f *fakeExec) Logs(context.Context) error                 { return f.rec("logs") }
func (f *fakeExec) Show(_ context.Context, r string) error     { return f.rec("view", r) }
func (f *fakeExec) Image(_ context.Context, r string) error    { return f.rec("image", r) }
func (f *fakeExec) Unlock(_ context.Context, r string) error   { return f.rec("unlock", r) }
func (f *fakeExec) Categories(context.Context) error           { return f.rec("cats") }
func (f *fakeExec) AddCategory(_ context.Context, n string) error {
	return f.rec("addcat", n)
}
func (f *fakeExec) DeleteCategory(_ context.Context, n string) error {
	return f.rec("delcat", n)
}
func (f *fakeExec) Export(context.Context) error  { return f.rec("export") }
func (f *fakeExec) Refresh(context.Context) error { return f.rec("refresh") }
func (f *fakeExec) Logout(context.Context) error {
	f.view = controller.ViewLogin
	return f.rec("logout")
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{view: controller.ViewLogin}
	runREPL(context.Background(), exec, readerFromLines(
		"list",
		"login",
		"list",
		"search call me",
		"category Work",
		"pin 2",
		"view ab12",
		"addcat Side Projects",
		"logout",
		"pin 1",
		"exit",
	))

	assert.Equal(t, []string{
		"login",
		"list",
		"search call me",
		"category Work",
		"pin 2",
		"view ab12",
		"addcat Side Projects",
		"logout",
	}, exec.calls)
	assert.Contains(t, out.String(), "Unknown command: list")
	assert.Contains(t, out.String(), "Unknown command: pin")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_ForgotAndReset(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{view: controller.ViewLogin}
	runREPL(context.Background(), exec, readerFromLines(
		"forgot",
		"send",
		"back",
		"recover https://app.example/#access_token=x&type=recovery",
	))

	assert.Equal(t, []string{
		"forgot",
		"send",
		"back",
		"recover https://app.example/#access_token=x&type=recovery",
	}, exec.calls)
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{view: controller.ViewMain}
	runREPL(context.Background(), exec, readerFromLines("pin", "edit   ", "", "quit", "list"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "Usage: pin <ref>")
	assert.Contains(t, out.String(), "Usage: edit <ref>")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_PrintsUserMessages(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{view: controller.ViewMain}
	exec.err = errors.Join(errors.New("wrapped"), common.NewUserError(common.ErrOffline, "Offline: Cannot pin."))
	runREPL(context.Background(), exec, readerFromLines("pin 1"))

	assert.Equal(t, []string{"pin 1"}, exec.calls)
	assert.Contains(t, out.String(), "Offline: Cannot pin.")
}

func TestRunREPL_HelpAndStatus(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{view: controller.ViewReset}, readerFromLines("help", "status"))

	assert.Contains(t, out.String(), "Available commands: newpassword, status, help, exit")
	assert.Contains(t, out.String(), "(test)")
}

func TestAvailable(t *testing.T) {
	assert.True(t, available(controller.ViewLogin, "recover"))
	assert.False(t, available(controller.ViewLogin, "new"))
	assert.True(t, available(controller.ViewForgot, "back"))
	assert.False(t, available(controller.ViewForgot, "login"))
	assert.True(t, available(controller.ViewMain, "delcat"))
	assert.True(t, available(controller.ViewReset, "status"))
	assert.False(t, available(controller.ViewReset, "logout"))
}
