package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

// Status is the message shown on the right of the status bar.
type Status struct {
	Text  string
	Error bool
	Busy  bool
}

// RenderStatusBar renders the bottom bar: key hints on the left, the
// latest status message on the right.
func RenderStatusBar(width int, hints string, st Status) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var msgStyle lipgloss.Style
	switch {
	case st.Error:
		msgStyle = lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	case st.Busy:
		msgStyle = lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)
	default:
		msgStyle = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	}

	left := hintStyle.Render(" " + hints)
	right := ""
	if st.Text != "" {
		right = msgStyle.Render(st.Text + " ")
	}

	room := width - lipgloss.Width(left)
	if lipgloss.Width(right) > room && room > 1 {
		right = msgStyle.Render(truncate(st.Text, room-1) + " ")
	}
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	gap := barStyle.Width(padding).Render("")
	return barStyle.Width(width).Render(left + gap + right)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
