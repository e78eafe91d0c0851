package models

import "time"

// HistorySnapshot is an immutable copy of a note taken before an edit.
type HistorySnapshot struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotOf copies the versioned fields of n.
func SnapshotOf(n Note) HistorySnapshot {
	return HistorySnapshot{
		NoteID:   n.ID,
		UserID:   n.UserID,
		Content:  n.Content,
		Category: n.Category,
		ImageURL: n.ImageURL,
	}
}
