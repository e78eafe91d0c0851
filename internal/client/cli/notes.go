package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/view"
	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// readFile is a test seam for loading image attachments.
var readFile = os.ReadFile

func (a *App) setLast(list []models.Note) {
	a.mu.Lock()
	a.last = list
	a.mu.Unlock()
}

// resolve maps a ref to a note: a 1-based index into the last printed list,
// or a unique id prefix among the displayed notes.
func (a *App) resolve(ref string) (models.Note, error) {
	a.mu.Lock()
	last := a.last
	a.mu.Unlock()
	if last == nil {
		last = a.ctl.Displayed()
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(last) {
			return models.Note{}, common.NewUserError(common.ErrNotFound, "Note not found.")
		}
		return last[n-1], nil
	}

	var found []models.Note
	for _, n := range a.ctl.Displayed() {
		if strings.HasPrefix(n.ID, ref) {
			found = append(found, n)
		}
	}
	switch len(found) {
	case 0:
		return models.Note{}, common.NewUserError(common.ErrNotFound, "Note not found.")
	case 1:
		return found[0], nil
	default:
		return models.Note{}, common.NewUserError(common.ErrValidation, "Ambiguous note reference.")
	}
}

func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// List prints the displayed notes as cards and remembers their order.
func (a *App) List(context.Context) error {
	list := a.ctl.Displayed()
	a.setLast(list)

	st := a.ctl.Notes()
	title := "Notes"
	if st.ShowTrash {
		title = "Trash"
	}
	printlnFn(view.Title(title))
	printlnFn(view.Cards(list, a.ctl.Locks()))
	if !a.ctl.Online() {
		printlnFn(view.Muted("Offline: showing cached notes."))
	}
	return nil
}

func (a *App) Search(ctx context.Context, q string) error {
	a.ctl.SetSearch(q)
	return a.List(ctx)
}

// Category selects a category filter; "All" shows every note.
func (a *App) Category(ctx context.Context, name string) error {
	if strings.EqualFold(name, view.AllCategories) {
		name = view.AllCategories
	}
	a.ctl.SetCategory(name)
	return a.List(ctx)
}

// Trash switches between the note list and the trash.
func (a *App) Trash(ctx context.Context) error {
	if err := a.ctl.ToggleTrash(ctx); err != nil {
		return err
	}
	return a.List(ctx)
}

// New prompts for a note and saves it. An edit in progress is dropped.
func (a *App) New(ctx context.Context) error {
	a.ctl.CancelEdit()

	category := a.ctl.Notes().Category
	if category == "" || category == view.AllCategories {
		category = services.DefaultCategories()[0]
	}
	d, err := a.promptDraft(nil, category)
	if err != nil {
		return err
	}
	if err := a.ctl.Submit(ctx, d); err != nil {
		return err
	}
	printlnFn("Saved.")
	return a.List(ctx)
}

// Edit loads an unlocked note into the edit buffer and prompts for the new
// values. Blank answers keep the current ones. A failed save keeps the
// buffer until "cancel".
func (a *App) Edit(ctx context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	n, err = a.ctl.StartEdit(n.ID)
	if err != nil {
		return err
	}
	printlnFn(view.FullNote(n))

	d, err := a.promptDraft(&n, n.Category)
	if err != nil {
		return err
	}
	if err := a.ctl.Submit(ctx, d); err != nil {
		return err
	}
	printlnFn("Saved.")
	return a.List(ctx)
}

func (a *App) Cancel(context.Context) error {
	a.ctl.CancelEdit()
	return nil
}

// promptDraft asks for content, category, PIN and an optional image. With
// current set, blank answers keep the note's values.
func (a *App) promptDraft(current *models.Note, category string) (services.Draft, error) {
	var d services.Draft

	content, err := GetMultiline(a.reader, "Enter note text", a.out)
	if err != nil {
		return d, err
	}
	if content == "" && current != nil {
		content = current.Content
	}
	d.Content = content

	cat, err := getSimpleText(a.reader, fmt.Sprintf("Category [%s]", category), a.out)
	if err != nil {
		return d, err
	}
	if cat == "" {
		cat = category
	}
	d.Category = cat

	pinPrompt := "PIN (empty for none)"
	if current != nil {
		pinPrompt = "PIN (empty keeps, '-' removes)"
	}
	pin, err := getSimpleText(a.reader, pinPrompt, a.out)
	if err != nil {
		return d, err
	}
	switch {
	case current != nil && pin == "":
		d.PIN = nil
	case pin == "-":
		pin = ""
		d.PIN = &pin
	default:
		d.PIN = &pin
	}

	path, err := getSimpleText(a.reader, "Image file path (empty for none)", a.out)
	if err != nil {
		return d, err
	}
	if path != "" {
		img, err := loadImage(path)
		if err != nil {
			return d, err
		}
		d.Image = img
	}
	return d, nil
}

func loadImage(path string) (*models.ImageFile, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &models.ImageFile{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

func (a *App) Pin(ctx context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.ctl.TogglePin(ctx, n.ID); err != nil {
		return err
	}
	return a.List(ctx)
}

// Remove moves a note to the trash.
func (a *App) Remove(ctx context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.ctl.MoveToTrash(ctx, n.ID); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Restore(ctx context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.ctl.RestoreFromTrash(ctx, n.ID); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Purge(ctx context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.ctl.PermanentDelete(ctx, n.ID); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Undo(ctx context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.ctl.Undo(ctx, n.ID); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) History(ctx context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.ctl.OpenHistory(ctx, n.ID); err != nil {
		return err
	}
	defer a.ctl.CloseModals()
	printlnFn(view.History(a.ctl.Modal().History))
	return nil
}

func (a *App) Logs(ctx context.Context) error {
	if err := a.ctl.OpenLogs(ctx); err != nil {
		return err
	}
	defer a.ctl.CloseModals()
	printlnFn(view.Logs(a.ctl.Modal().Logs))
	return nil
}

// Show prints the full view of an unlocked note.
func (a *App) Show(_ context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if err := a.ctl.OpenNote(n.ID); err != nil {
		return err
	}
	defer a.ctl.CloseModals()
	if v := a.ctl.Modal().Viewing; v != nil {
		printlnFn(view.FullNote(*v))
	}
	return nil
}

func (a *App) Image(_ context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	url, err := a.ctl.PreviewImage(n.ID)
	if err != nil {
		return err
	}
	defer a.ctl.CloseModals()
	printlnFn(view.ImagePreview(url))
	return nil
}

// Unlock asks for the PIN of a locked note and reveals it for the rest of
// the session.
func (a *App) Unlock(_ context.Context, ref string) error {
	n, err := a.resolve(ref)
	if err != nil {
		return err
	}
	if !a.ctl.Locks().Locked(n) {
		printlnFn("Note is not locked.")
		return nil
	}
	pin, err := getPassword("Enter PIN", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pin)
	if err := a.ctl.Unlock(n.ID, string(pin)); err != nil {
		return err
	}
	printlnFn(view.FullNote(n))
	return nil
}

// Categories prints the category manager.
func (a *App) Categories(context.Context) error {
	a.ctl.OpenCategories()
	defer a.ctl.CloseModals()
	printlnFn(view.CategoryList(a.ctl.Notes().Categories, services.IsDefaultCategory))
	return nil
}

func (a *App) AddCategory(ctx context.Context, name string) error {
	if err := a.ctl.AddCategory(ctx, name); err != nil {
		return err
	}
	return a.Categories(ctx)
}

func (a *App) DeleteCategory(ctx context.Context, name string) error {
	if err := a.ctl.DeleteCategory(ctx, name); err != nil {
		return err
	}
	return a.Categories(ctx)
}

// Export writes the displayed cards to a PDF.
func (a *App) Export(ctx context.Context) error {
	path, err := a.ctl.Export(ctx)
	if err != nil {
		return err
	}
	printlnFn("Exported to", path)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.ctl.Refresh(ctx); err != nil {
		return err
	}
	return a.List(ctx)
}
