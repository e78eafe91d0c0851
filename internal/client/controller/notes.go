package controller

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/netstate"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/common"
)

func (c *Controller) SetSearch(q string) {
	c.mu.Lock()
	c.notes.Search = q
	c.mu.Unlock()
}

// SetCategory selects a category filter; "All" clears it.
func (c *Controller) SetCategory(name string) {
	c.mu.Lock()
	c.notes.Category = name
	c.mu.Unlock()
}

// ToggleTrash switches between the main list and the trash, re-fetching.
func (c *Controller) ToggleTrash(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	c.notes.ShowTrash = !c.notes.ShowTrash
	c.mu.Unlock()
	return c.fetchNotes(ctx)
}

// StartEdit loads an unlocked note into the edit buffer.
func (c *Controller) StartEdit(id string) (models.Note, error) {
	n, err := c.Note(id)
	if err != nil {
		return models.Note{}, err
	}
	if err := c.locks.Require(n); err != nil {
		return models.Note{}, err
	}
	c.mu.Lock()
	c.notes.Editing = &n
	c.mu.Unlock()
	return n, nil
}

func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.notes.Editing = nil
	c.mu.Unlock()
}

func (c *Controller) setBusy(b bool) {
	c.mu.Lock()
	c.notes.Busy = b
	c.mu.Unlock()
}

// Submit saves the draft as a new note, or over the note being edited.
// It is rejected while another operation is in flight.
func (c *Controller) Submit(ctx context.Context, d services.Draft) error {
	if !c.opMu.TryLock() {
		return common.NewUserError(common.ErrBusy, "Please wait, another operation is in progress.")
	}
	defer c.opMu.Unlock()

	if err := c.net.Require(netstate.ActionSave); err != nil {
		return err
	}
	if err := services.ValidateDraft(d); err != nil {
		return err
	}
	uid, err := c.userID()
	if err != nil {
		return err
	}

	c.setBusy(true)
	defer c.setBusy(false)

	c.mu.RLock()
	editing := c.notes.Editing
	c.mu.RUnlock()

	if editing != nil {
		keep := c.confirm.Confirm("Save previous version?")
		if _, err := c.noteSvc.Update(ctx, uid, *editing, d, keep); err != nil {
			return err
		}
	} else {
		if _, err := c.noteSvc.Create(ctx, uid, d); err != nil {
			return err
		}
	}

	c.CancelEdit()
	return c.fetchNotes(ctx)
}

func (c *Controller) TogglePin(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	uid, err := c.guard(netstate.ActionPin)
	if err != nil {
		return err
	}
	n, err := c.Note(id)
	if err != nil {
		return err
	}
	if err := c.noteSvc.SetPinned(ctx, uid, id, !n.IsPinned); err != nil {
		return err
	}
	return c.fetchNotes(ctx)
}

// MoveToTrash soft-deletes a note after confirmation.
func (c *Controller) MoveToTrash(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	uid, err := c.guard(netstate.ActionTrash)
	if err != nil {
		return err
	}
	if !c.confirm.Confirm("Move to Trash?") {
		return nil
	}
	if err := c.noteSvc.Trash(ctx, uid, id); err != nil {
		return err
	}
	return c.fetchNotes(ctx)
}

func (c *Controller) RestoreFromTrash(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	uid, err := c.guard(netstate.ActionRestore)
	if err != nil {
		return err
	}
	if err := c.noteSvc.Restore(ctx, uid, id); err != nil {
		return err
	}
	return c.fetchNotes(ctx)
}

// PermanentDelete removes a note and its history after confirmation.
func (c *Controller) PermanentDelete(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	uid, err := c.guard(netstate.ActionDelete)
	if err != nil {
		return err
	}
	if !c.confirm.Confirm("Permanently delete?") {
		return nil
	}
	if err := c.noteSvc.Purge(ctx, uid, id); err != nil {
		return err
	}
	return c.fetchNotes(ctx)
}

// Undo reapplies the newest history snapshot of a note.
func (c *Controller) Undo(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.requireUnlocked(id); err != nil {
		return err
	}
	uid, err := c.guard(netstate.ActionUndo)
	if err != nil {
		return err
	}
	snap, err := c.noteSvc.LatestSnapshot(ctx, uid, id)
	if err != nil {
		return err
	}
	if !c.confirm.Confirm("Undo changes?") {
		return nil
	}
	if err := c.noteSvc.ApplySnapshot(ctx, uid, id, snap); err != nil {
		return err
	}
	return c.fetchNotes(ctx)
}

// requireUnlocked fails with ErrLocked for a PIN note not unlocked this session.
func (c *Controller) requireUnlocked(id string) error {
	n, err := c.Note(id)
	if err != nil {
		return err
	}
	return c.locks.Require(n)
}

// Unlock records a correct PIN for the session.
func (c *Controller) Unlock(id, pin string) error {
	n, err := c.Note(id)
	if err != nil {
		return err
	}
	return c.locks.Unlock(n, pin)
}
