// Package models defines the notekeeper domain types shared by the
// repositories, services and presentation layers. JSON tags follow the
// remote column names so cached lists and remote rows have one shape.
package models

import (
	"strings"
	"time"
)

// Note is a single user note.
type Note struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	ImageURL  *string    `json:"image_url"`
	Password  *string    `json:"password"`
	IsPinned  bool       `json:"is_pinned"`
	IsTrash   bool       `json:"is_trash"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// HasPIN reports whether the note is PIN-protected.
func (n Note) HasPIN() bool {
	return n.Password != nil && *n.Password != ""
}

// Image returns the image URL or "".
func (n Note) Image() string {
	if n.ImageURL == nil {
		return ""
	}
	return *n.ImageURL
}

// ImageFile is an image picked for upload.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Ext returns the text after the last dot of the file name, or the whole
// name when it has no dot.
func (f ImageFile) Ext() string {
	if i := strings.LastIndex(f.Name, "."); i >= 0 {
		return f.Name[i+1:]
	}
	return f.Name
}
