package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/controller"
	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	View() controller.View
	Status() string

	Login(ctx context.Context) error
	SignUp(ctx context.Context) error
	Forgot(ctx context.Context) error
	Recover(ctx context.Context, link string) error
	SendReset(ctx context.Context) error
	Back(ctx context.Context) error
	NewPassword(ctx context.Context) error

	List(ctx context.Context) error
	Search(ctx context.Context, q string) error
	Category(ctx context.Context, name string) error
	Trash(ctx context.Context) error
	New(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Cancel(ctx context.Context) error
	Pin(ctx context.Context, ref string) error
	Remove(ctx context.Context, ref string) error
	Restore(ctx context.Context, ref string) error
	Purge(ctx context.Context, ref string) error
	Undo(ctx context.Context, ref string) error
	History(ctx context.Context, ref string) error
	Logs(ctx context.Context) error
	Show(ctx context.Context, ref string) error
	Image(ctx context.Context, ref string) error
	Unlock(ctx context.Context, ref string) error
	Categories(ctx context.Context) error
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
	Export(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

var viewCommands = map[controller.View][]string{
	controller.ViewLogin:  {"login", "signup", "forgot", "recover <link>"},
	controller.ViewForgot: {"send", "back"},
	controller.ViewReset:  {"newpassword"},
	controller.ViewMain: {
		"list", "search <text>", "category <name|All>", "trash",
		"new", "edit <ref>", "cancel",
		"pin <ref>", "rm <ref>", "restore <ref>", "purge <ref>", "undo <ref>",
		"history <ref>", "logs", "view <ref>", "image <ref>", "unlock <ref>",
		"cats", "addcat <name>", "delcat <name>",
		"export", "refresh", "logout",
	},
}

var alwaysCommands = []string{"status", "help", "exit"}

// available reports whether cmd may run in view v.
func available(v controller.View, cmd string) bool {
	for _, c := range alwaysCommands {
		if c == cmd {
			return true
		}
	}
	for _, c := range viewCommands[v] {
		if strings.Fields(c)[0] == cmd {
			return true
		}
	}
	return false
}

func helpText(v controller.View) string {
	cmds := append(append([]string(nil), viewCommands[v]...), alwaysCommands...)
	return "Available commands: " + strings.Join(cmds, ", ")
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first token is the command and the rest of the line its argument.
// Which commands are accepted depends on the resolved view: the login form,
// the forgot-password form, the reset-password form or the note list.
// A <ref> names a note by its position in the last printed list or by an
// id prefix.
//
// Handler errors are printed as their user-facing message; the loop keeps
// running.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("notes %s > ", a.Status()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}
		if cmd == "quit" {
			cmd = "exit"
		}
		if cmd == "exit" {
			printlnFn("Bye!")
			return
		}

		v := a.View()
		if !available(v, cmd) {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := dispatch(ctx, a, v, cmd, arg); err != nil {
			printlnFn(common.Message(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, v controller.View, cmd, arg string) error {
	switch cmd {
	case "help":
		printlnFn(helpText(v))
		return nil
	case "status":
		printlnFn(a.Status())
		return nil

	case "login":
		return a.Login(ctx)
	case "signup":
		return a.SignUp(ctx)
	case "forgot":
		return a.Forgot(ctx)
	case "recover":
		return needArg(arg, "recover <link>", func() error { return a.Recover(ctx, arg) })
	case "send":
		return a.SendReset(ctx)
	case "back":
		return a.Back(ctx)
	case "newpassword":
		return a.NewPassword(ctx)

	case "list":
		return a.List(ctx)
	case "search":
		return a.Search(ctx, arg)
	case "category":
		return needArg(arg, "category <name|All>", func() error { return a.Category(ctx, arg) })
	case "trash":
		return a.Trash(ctx)
	case "new":
		return a.New(ctx)
	case "edit":
		return needArg(arg, "edit <ref>", func() error { return a.Edit(ctx, arg) })
	case "cancel":
		return a.Cancel(ctx)
	case "pin":
		return needArg(arg, "pin <ref>", func() error { return a.Pin(ctx, arg) })
	case "rm":
		return needArg(arg, "rm <ref>", func() error { return a.Remove(ctx, arg) })
	case "restore":
		return needArg(arg, "restore <ref>", func() error { return a.Restore(ctx, arg) })
	case "purge":
		return needArg(arg, "purge <ref>", func() error { return a.Purge(ctx, arg) })
	case "undo":
		return needArg(arg, "undo <ref>", func() error { return a.Undo(ctx, arg) })
	case "history":
		return needArg(arg, "history <ref>", func() error { return a.History(ctx, arg) })
	case "logs":
		return a.Logs(ctx)
	case "view":
		return needArg(arg, "view <ref>", func() error { return a.Show(ctx, arg) })
	case "image":
		return needArg(arg, "image <ref>", func() error { return a.Image(ctx, arg) })
	case "unlock":
		return needArg(arg, "unlock <ref>", func() error { return a.Unlock(ctx, arg) })
	case "cats":
		return a.Categories(ctx)
	case "addcat":
		return a.AddCategory(ctx, arg)
	case "delcat":
		return needArg(arg, "delcat <name>", func() error { return a.DeleteCategory(ctx, arg) })
	case "export":
		return a.Export(ctx)
	case "refresh":
		return a.Refresh(ctx)
	case "logout":
		return a.Logout(ctx)
	}
	return nil
}

func needArg(arg, usage string, fn func() error) error {
	if arg == "" {
		printlnFn("Usage:", usage)
		return nil
	}
	return fn()
}
