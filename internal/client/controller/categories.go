package controller

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/client/netstate"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/view"
)

func (c *Controller) AddCategory(ctx context.Context, name string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	uid, err := c.guard(netstate.ActionAddCategory)
	if err != nil {
		return err
	}

	c.mu.RLock()
	current := append([]string(nil), c.notes.Categories...)
	c.mu.RUnlock()

	if _, err := c.categorySvc.Add(ctx, uid, name, current); err != nil {
		return err
	}
	return c.fetchCategories(ctx)
}

// DeleteCategory refuses the built-in categories regardless of connectivity.
func (c *Controller) DeleteCategory(ctx context.Context, name string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := services.ValidateDeleteCategory(name); err != nil {
		return err
	}
	uid, err := c.guard(netstate.ActionDeleteCategory)
	if err != nil {
		return err
	}
	if !c.confirm.Confirm(fmt.Sprintf("Delete category %q?", name)) {
		return nil
	}
	if err := c.categorySvc.Delete(ctx, uid, name); err != nil {
		return err
	}

	c.mu.Lock()
	if c.notes.Category == name {
		c.notes.Category = view.AllCategories
	}
	c.mu.Unlock()
	return c.fetchCategories(ctx)
}
