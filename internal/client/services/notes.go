package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/activity"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/history"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/cryptox"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/google/uuid"
)

// Draft is the edit buffer submitted by the user.
type Draft struct {
	Content  string
	Category string
	// PIN is nil to keep the current PIN on edit; "" removes it.
	PIN   *string
	Image *models.ImageFile
}

// NoteService performs note mutations against the remote store. Callers
// apply connectivity checks and confirmations before calling it.
type NoteService interface {
	List(ctx context.Context, userID string, trashed bool) ([]models.Note, error)
	Create(ctx context.Context, userID string, d Draft) (*models.Note, error)
	// Update writes d over current, first saving a history snapshot of
	// current when keepHistory is set.
	Update(ctx context.Context, userID string, current models.Note, d Draft, keepHistory bool) (*models.Note, error)
	SetPinned(ctx context.Context, userID, noteID string, pinned bool) error
	Trash(ctx context.Context, userID, noteID string) error
	Restore(ctx context.Context, userID, noteID string) error
	Purge(ctx context.Context, userID, noteID string) error
	History(ctx context.Context, userID, noteID string) ([]models.HistorySnapshot, error)
	// LatestSnapshot returns a "No history found." error matching
	// common.ErrNoHistory when the note was never versioned.
	LatestSnapshot(ctx context.Context, userID, noteID string) (*models.HistorySnapshot, error)
	ApplySnapshot(ctx context.Context, userID, noteID string, s *models.HistorySnapshot) error
}

type NoteServiceOptions struct {
	Notes    notes.Repository
	History  history.Repository
	Activity activity.Repository
	Images   storage.Uploader
	Log      logging.Logger
	// SealPINs stores new PINs as argon2id digests.
	SealPINs bool
}

type noteService struct {
	notes    notes.Repository
	history  history.Repository
	activity activity.Repository
	images   storage.Uploader
	log      logging.Logger
	sealPINs bool
	now      func() time.Time
}

func NewNoteService(opts NoteServiceOptions) NoteService {
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	return &noteService{
		notes:    opts.Notes,
		history:  opts.History,
		activity: opts.Activity,
		images:   opts.Images,
		log:      log,
		sealPINs: opts.SealPINs,
		now:      time.Now,
	}
}

// ValidateDraft rejects drafts whose content is blank.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.Content) == "" {
		return common.NewUserError(common.ErrValidation, "Note content cannot be empty.")
	}
	return nil
}

func (s *noteService) List(ctx context.Context, userID string, trashed bool) ([]models.Note, error) {
	list, err := s.notes.List(ctx, userID, trashed)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	return list, nil
}

// logActivity never fails the caller.
func (s *noteService) logActivity(ctx context.Context, userID, noteID string, action models.Action, details string) {
	err := s.activity.Insert(ctx, &models.ActivityLogEntry{
		ID:        uuid.NewString(),
		NoteID:    noteID,
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.log.Warn(ctx, "activity log insert failed", "note_id", noteID, "action", action, "error", err)
	}
}

func (s *noteService) upload(ctx context.Context, img *models.ImageFile) (*string, error) {
	if img == nil {
		return nil, nil
	}
	if s.images == nil {
		return nil, storage.ErrNotConfigured
	}
	url, err := s.images.Upload(ctx, *img)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (s *noteService) pin(raw string) (*string, error) {
	if raw == "" {
		return nil, nil
	}
	if !s.sealPINs {
		return &raw, nil
	}
	sealed, err := cryptox.SealPIN(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to seal pin: %w", err)
	}
	return &sealed, nil
}

func (s *noteService) Create(ctx context.Context, userID string, d Draft) (*models.Note, error) {
	if err := ValidateDraft(d); err != nil {
		return nil, err
	}

	imageURL, err := s.upload(ctx, d.Image)
	if err != nil {
		return nil, err
	}

	var password *string
	if d.PIN != nil {
		if password, err = s.pin(*d.PIN); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	n := &models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   d.Content,
		Category:  d.Category,
		ImageURL:  imageURL,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: &now,
	}
	if err := s.notes.Insert(ctx, n); err != nil {
		return nil, err
	}

	s.logActivity(ctx, userID, n.ID, models.ActionCreated, "In "+n.Category)
	return n, nil
}

func (s *noteService) Update(ctx context.Context, userID string, current models.Note, d Draft, keepHistory bool) (*models.Note, error) {
	if err := ValidateDraft(d); err != nil {
		return nil, err
	}

	imageURL := current.ImageURL
	if d.Image != nil {
		url, err := s.upload(ctx, d.Image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	password := current.Password
	if d.PIN != nil {
		var err error
		if password, err = s.pin(*d.PIN); err != nil {
			return nil, err
		}
	}

	if keepHistory {
		snap := models.SnapshotOf(current)
		snap.ID = uuid.NewString()
		snap.UserID = userID
		snap.CreatedAt = s.now().UTC()
		if err := s.history.Insert(ctx, &snap); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	n := current
	n.UserID = userID
	n.Content = d.Content
	n.Category = d.Category
	n.ImageURL = imageURL
	n.Password = password
	n.UpdatedAt = &now

	if err := s.notes.Update(ctx, &n); err != nil {
		return nil, err
	}

	s.logActivity(ctx, userID, n.ID, models.ActionEdited, "In "+n.Category)
	return &n, nil
}

func (s *noteService) SetPinned(ctx context.Context, userID, noteID string, pinned bool) error {
	if err := s.notes.SetPinned(ctx, userID, noteID, pinned); err != nil {
		return err
	}
	action := models.ActionUnpinned
	if pinned {
		action = models.ActionPinned
	}
	s.logActivity(ctx, userID, noteID, action, "Status updated")
	return nil
}

func (s *noteService) Trash(ctx context.Context, userID, noteID string) error {
	if err := s.notes.SetTrashed(ctx, userID, noteID, true); err != nil {
		return err
	}
	s.logActivity(ctx, userID, noteID, models.ActionDeleted, "To Trash")
	return nil
}

func (s *noteService) Restore(ctx context.Context, userID, noteID string) error {
	if err := s.notes.SetTrashed(ctx, userID, noteID, false); err != nil {
		return err
	}
	s.logActivity(ctx, userID, noteID, models.ActionRestored, "From Trash")
	return nil
}

func (s *noteService) Purge(ctx context.Context, userID, noteID string) error {
	return s.notes.Delete(ctx, userID, noteID)
}

func (s *noteService) History(ctx context.Context, userID, noteID string) ([]models.HistorySnapshot, error) {
	list, err := s.history.ListByNote(ctx, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return list, nil
}

func (s *noteService) LatestSnapshot(ctx context.Context, userID, noteID string) (*models.HistorySnapshot, error) {
	snap, err := s.history.Latest(ctx, userID, noteID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(common.ErrNoHistory, "No history found.")
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *noteService) ApplySnapshot(ctx context.Context, userID, noteID string, snap *models.HistorySnapshot) error {
	if err := s.notes.ApplySnapshot(ctx, userID, noteID, snap, s.now().UTC()); err != nil {
		return err
	}
	s.logActivity(ctx, userID, noteID, models.ActionRestored, "Undo Applied")
	return nil
}
