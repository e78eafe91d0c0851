package controller

import (
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
)

// View is the screen requested by the user or by an auth event.
type View string

const (
	ViewLogin  View = "login"
	ViewForgot View = "forgot"
	ViewReset  View = "reset"
	ViewMain   View = "main"
)

// AuthState holds the session and the requested view.
type AuthState struct {
	Session *models.Session
	View    View
}

// NotesState holds the note list and how it is filtered.
type NotesState struct {
	Notes      []models.Note
	Categories []string
	Search     string
	Category   string
	ShowTrash  bool
	// Editing is the note in the edit buffer, nil when creating.
	Editing *models.Note
	Busy    bool
}

// ModalState holds what the open modals show.
type ModalState struct {
	Viewing        *models.Note
	HistoryNoteID  string
	History        []models.HistorySnapshot
	LogsOpen       bool
	Logs           []models.ActivityLogEntry
	PreviewImage   string
	CategoriesOpen bool
}

func (s NotesState) clone() NotesState {
	out := s
	out.Notes = append([]models.Note(nil), s.Notes...)
	out.Categories = append([]string(nil), s.Categories...)
	if s.Editing != nil {
		e := *s.Editing
		out.Editing = &e
	}
	return out
}
