package controller

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/netstate"
	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// OpenNote shows the full-view modal of an unlocked note.
func (c *Controller) OpenNote(id string) error {
	n, err := c.Note(id)
	if err != nil {
		return err
	}
	if err := c.locks.Require(n); err != nil {
		return err
	}
	c.mu.Lock()
	c.modal.Viewing = &n
	c.mu.Unlock()
	return nil
}

// OpenHistory loads every snapshot of a note into the history modal.
func (c *Controller) OpenHistory(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.requireUnlocked(id); err != nil {
		return err
	}
	uid, err := c.guard(netstate.ActionHistory)
	if err != nil {
		return err
	}
	list, err := c.noteSvc.History(ctx, uid, id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.modal.HistoryNoteID = id
	c.modal.History = list
	c.mu.Unlock()
	return nil
}

// OpenLogs loads the recent activity into the logs modal.
func (c *Controller) OpenLogs(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	uid, err := c.guard(netstate.ActionLogs)
	if err != nil {
		return err
	}
	entries, err := c.activitySvc.Recent(ctx, uid)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.modal.LogsOpen = true
	c.modal.Logs = entries
	c.mu.Unlock()
	return nil
}

// PreviewImage opens the image modal of an unlocked note.
func (c *Controller) PreviewImage(id string) (string, error) {
	n, err := c.Note(id)
	if err != nil {
		return "", err
	}
	if err := c.locks.Require(n); err != nil {
		return "", err
	}
	if n.Image() == "" {
		return "", common.NewUserError(common.ErrNotFound, "Note has no image.")
	}
	c.mu.Lock()
	c.modal.PreviewImage = n.Image()
	c.mu.Unlock()
	return n.Image(), nil
}

func (c *Controller) OpenCategories() {
	c.mu.Lock()
	c.modal.CategoriesOpen = true
	c.mu.Unlock()
}

// CloseModals closes every open modal.
func (c *Controller) CloseModals() {
	c.mu.Lock()
	c.modal = ModalState{}
	c.mu.Unlock()
}
