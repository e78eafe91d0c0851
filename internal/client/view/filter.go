// Package view holds the presentation rules of the note list: filtering,
// PIN locks, phone-number links, date formatting and terminal rendering.
package view

import (
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
)

// AllCategories selects every category.
const AllCategories = "All"

// Filter returns the notes whose content contains search (case-insensitive)
// and whose category equals category, keeping the input order.
func Filter(notes []models.Note, search, category string) []models.Note {
	q := strings.ToLower(search)
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if !strings.Contains(strings.ToLower(n.Content), q) {
			continue
		}
		if category != AllCategories && n.Category != category {
			continue
		}
		out = append(out, n)
	}
	return out
}
