package notes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
)

// Repository describes operations on the user's notes.
type Repository interface {
	// List returns the notes whose trash flag equals trashed.
	List(ctx context.Context, userID string, trashed bool) ([]models.Note, error)

	// Insert creates a note row. The caller assigns the id.
	Insert(ctx context.Context, note *models.Note) error

	// Update overwrites content, category, image, password and updated_at.
	Update(ctx context.Context, note *models.Note) error

	// ApplySnapshot overwrites content, category and image from s.
	ApplySnapshot(ctx context.Context, userID, noteID string, s *models.HistorySnapshot, at time.Time) error

	SetPinned(ctx context.Context, userID, noteID string, pinned bool) error
	SetTrashed(ctx context.Context, userID, noteID string, trashed bool) error

	// Delete removes the row for good.
	Delete(ctx context.Context, userID, noteID string) error
}
