package controller

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/client/export"
)

// Export writes the displayed grid to a PDF and returns its path.
func (c *Controller) Export(ctx context.Context) (string, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.exporter == nil {
		return "", &export.Error{Err: errors.New("export is not configured")}
	}

	c.setBusy(true)
	defer c.setBusy(false)

	path, err := c.exporter.Export(export.Cards(c.Displayed(), c.locks))
	if err != nil {
		c.log.Error(ctx, "export failed", "error", err)
		return "", err
	}
	c.log.Info(ctx, "notes exported", "path", path)
	return path, nil
}
