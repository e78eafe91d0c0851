package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
)

// Palette shared by the terminal cards and the exported document.
const (
	ColorBackground = "#020617"
	ColorCard       = "#0f172a"
	ColorBorder     = "#1e293b"
	ColorText       = "#e2e8f0"
	ColorMuted      = "#64748b"
	ColorPhone      = "#34d399"
	ColorAccent     = "#10b981"
)

const (
	LockedPlaceholder = "Locked"
	cardWidth         = 56
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1).
			Width(cardWidth)

	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorText))
	phoneStyle    = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(ColorPhone))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent))
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(ColorAccent)).
			Padding(0, 1)
)

// RenderContent styles text and turns phone numbers into tel: links.
func RenderContent(text string) string {
	var b strings.Builder
	for _, s := range Segments(text) {
		if s.Phone {
			b.WriteString(Hyperlink(TelURI(s.Text), phoneStyle.Render(s.Text)))
			continue
		}
		b.WriteString(textStyle.Render(s.Text))
	}
	return b.String()
}

func header(n models.Note) string {
	parts := []string{categoryStyle.Render(strings.ToUpper(n.Category))}
	if n.IsPinned {
		parts = append(parts, "📌")
	}
	if n.Image() != "" {
		parts = append(parts, "🖼")
	}
	if n.HasPIN() {
		parts = append(parts, "🔒")
	}
	return strings.Join(parts, " ")
}

func footer(n models.Note) string {
	return mutedStyle.Render(fmt.Sprintf("created %s · updated %s", FormatDate(n.CreatedAt), FormatDatePtr(n.UpdatedAt)))
}

// Card renders one note. index is the 1-based list position.
func Card(index int, n models.Note, locked bool) string {
	body := mutedStyle.Render("🔒 " + LockedPlaceholder)
	if !locked {
		body = RenderContent(n.Content)
	}
	ref := mutedStyle.Render(fmt.Sprintf("#%d  %s", index, shortID(n.ID)))
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, ref+"  "+header(n), body, footer(n)))
}

// Cards renders the list two cards per row.
func Cards(notes []models.Note, locks *LockSet) string {
	if len(notes) == 0 {
		return mutedStyle.Render("No notes.")
	}
	var rows []string
	for i := 0; i < len(notes); i += 2 {
		left := Card(i+1, notes[i], locks.Locked(notes[i]))
		if i+1 == len(notes) {
			rows = append(rows, left)
			continue
		}
		right := Card(i+2, notes[i+1], locks.Locked(notes[i+1]))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}
