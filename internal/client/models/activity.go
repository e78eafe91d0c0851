package models

import "time"

// Action tags an activity log entry.
type Action string

const (
	ActionCreated  Action = "Created"
	ActionEdited   Action = "Edited"
	ActionDeleted  Action = "Deleted"
	ActionRestored Action = "Restored"
	ActionPinned   Action = "Pinned"
	ActionUnpinned Action = "Unpinned"
)

// ActivityLogEntry is one row of the append-only audit trail.
type ActivityLogEntry struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	UserID    string    `json:"user_id"`
	Action    Action    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
