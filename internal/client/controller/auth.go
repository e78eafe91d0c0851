package controller

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/netstate"
	"github.com/dmitrijs2005/notekeeper/internal/client/view"
)

// ShowForgot switches to the forgot-password form.
func (c *Controller) ShowForgot() { c.setView(ViewForgot) }

// ShowLogin returns to the login form.
func (c *Controller) ShowLogin() { c.setView(ViewLogin) }

func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.net.Require(netstate.ActionLogin); err != nil {
		return err
	}
	if err := c.authSvc.SignIn(ctx, email, password); err != nil {
		return err
	}
	return c.refresh(ctx)
}

func (c *Controller) SignUp(ctx context.Context, email, password string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.net.Require(netstate.ActionSignup); err != nil {
		return err
	}
	confirm, err := c.authSvc.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	if confirm {
		c.notify.Notify("Check your email for confirmation.")
		return nil
	}
	return c.refresh(ctx)
}

func (c *Controller) RequestPasswordReset(ctx context.Context, email string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.net.Require(netstate.ActionResetPassword); err != nil {
		return err
	}
	if err := c.authSvc.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	c.notify.Notify("Reset link sent to your email.")
	return nil
}

func (c *Controller) UpdatePassword(ctx context.Context, password string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.net.Require(netstate.ActionUpdatePassword); err != nil {
		return err
	}
	if err := c.authSvc.UpdatePassword(ctx, password); err != nil {
		return err
	}
	c.notify.Notify("Password updated.")
	c.setView(ViewLogin)
	return nil
}

// ApplyRecoveryLink installs the session from a recovery email link and
// switches to the reset form.
func (c *Controller) ApplyRecoveryLink(ctx context.Context, link string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.authSvc.ApplyRecoveryLink(ctx, link)
}

// Logout always succeeds and wipes every piece of local state.
func (c *Controller) Logout(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.authSvc.SignOut(ctx)
	c.locks.Clear()

	c.mu.Lock()
	c.auth = AuthState{View: ViewLogin}
	c.notes.Notes = []models.Note{}
	c.notes.Editing = nil
	c.notes.ShowTrash = false
	c.notes.Search = ""
	c.notes.Category = view.AllCategories
	c.modal = ModalState{}
	c.mu.Unlock()
}
