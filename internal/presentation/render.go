package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	entryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	forwardStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#6B7280"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	screenStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6366F1")).
			Padding(0, 1)
)

// RenderJournal draws the journal as a numbered list with the current entry
// highlighted and forward history dimmed.
func RenderJournal(entries []JournalEntryDTO) string {
	if len(entries) == 0 {
		return entryStyle.Render("(journal is empty)")
	}

	current := -1
	for i, e := range entries {
		if e.Current {
			current = i
		}
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, titleStyle.Render("Journal"))
	for i, e := range entries {
		line := fmt.Sprintf("%3d  %s", e.Sequence, e.URI)
		switch {
		case i == current:
			lines = append(lines, currentStyle.Render("> "+line))
		case i > current:
			lines = append(lines, forwardStyle.Render("  "+line))
		default:
			lines = append(lines, entryStyle.Render("  "+line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderScreens draws the presented screen stack left to right, bottom first.
func RenderScreens(screens []string) string {
	if len(screens) == 0 {
		return entryStyle.Render("(nothing presented)")
	}
	boxes := make([]string, len(screens))
	for i, s := range screens {
		boxes[i] = screenStyle.Render(s)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, boxes...)
}

// RenderError formats a navigation failure line.
func RenderError(prefix string, err error) string {
	return errorStyle.Render(prefix+": ") + strings.TrimSpace(err.Error())
}
