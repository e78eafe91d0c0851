package cli

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// getSimpleText, getPassword and confirmFn are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirmFn     = Confirm
)

func (a *App) credentials() (string, string, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(password)
	return email, string(password), nil
}

// Login prompts for credentials and signs in. Offline it is refused before
// any prompt.
func (a *App) Login(ctx context.Context) error {
	if !a.ctl.Online() {
		return a.ctl.SignIn(ctx, "", "")
	}
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	if err := a.ctl.SignIn(ctx, email, password); err != nil {
		return err
	}
	printlnFn("Logged in.")
	return a.List(ctx)
}

// SignUp prompts for credentials and creates an account. When the account
// needs email confirmation the controller notifies the user.
func (a *App) SignUp(ctx context.Context) error {
	if !a.ctl.Online() {
		return a.ctl.SignUp(ctx, "", "")
	}
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	return a.ctl.SignUp(ctx, email, password)
}

func (a *App) Forgot(context.Context) error {
	a.ctl.ShowForgot()
	printlnFn("Type 'send' to receive a reset link or 'back' to return.")
	return nil
}

func (a *App) Back(context.Context) error {
	a.ctl.ShowLogin()
	return nil
}

// SendReset asks for an email and requests a password reset link.
func (a *App) SendReset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	return a.ctl.RequestPasswordReset(ctx, email)
}

// Recover applies the link from a password reset email and switches to the
// reset form.
func (a *App) Recover(ctx context.Context, link string) error {
	if err := a.ctl.ApplyRecoveryLink(ctx, link); err != nil {
		return err
	}
	printlnFn("Type 'newpassword' to choose a new password.")
	return nil
}

func (a *App) NewPassword(ctx context.Context) error {
	password, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	return a.ctl.UpdatePassword(ctx, string(password))
}

// Logout always succeeds; it wipes the session, the cache and every lock.
func (a *App) Logout(ctx context.Context) error {
	a.ctl.Logout(ctx)
	a.setLast(nil)
	printlnFn("Logged out.")
	return nil
}
