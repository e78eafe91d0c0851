package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/common"
)

func modal(title string, lines ...string) string {
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{Title(title), ""}, lines...)...))
}

// FullNote renders the full-view modal of an unlocked note.
func FullNote(n models.Note) string {
	lines := []string{header(n), "", RenderContent(n.Content), ""}
	if n.Image() != "" {
		lines = append(lines, mutedStyle.Render("image: "+n.Image()))
	}
	lines = append(lines, footer(n))
	return modal("Note", lines...)
}

// History renders the snapshots of one note, newest first.
func History(snaps []models.HistorySnapshot) string {
	if len(snaps) == 0 {
		return modal("History", mutedStyle.Render("No history found."))
	}
	lines := make([]string, 0, len(snaps)*3)
	for i, s := range snaps {
		lines = append(lines,
			fmt.Sprintf("%d. %s  %s", i+1, categoryStyle.Render(s.Category), mutedStyle.Render(FormatDate(s.CreatedAt))),
			"   "+RenderContent(Preview(s.Content, 60)),
		)
		if img := common.Deref(s.ImageURL); img != "" {
			lines = append(lines, mutedStyle.Render("   image: "+img))
		}
	}
	return modal("History", lines...)
}

// Logs renders the activity modal.
func Logs(entries []models.ActivityLogEntry) string {
	if len(entries) == 0 {
		return modal("Activity", mutedStyle.Render("No activity yet."))
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%-9s %-14s %s", e.Action, e.Details, mutedStyle.Render(FormatDate(e.CreatedAt))))
	}
	return modal("Activity", lines...)
}

// ImagePreview prints the public URL of a note image.
func ImagePreview(url string) string {
	return modal("Image", Hyperlink(url, url))
}

// CategoryList renders the category manager; defaults are marked.
func CategoryList(names []string, isDefault func(string) bool) string {
	lines := make([]string, 0, len(names))
	for _, n := range names {
		if isDefault(n) {
			lines = append(lines, n+mutedStyle.Render("  (default)"))
			continue
		}
		lines = append(lines, n)
	}
	return modal("Categories", strings.Join(lines, "\n"))
}
