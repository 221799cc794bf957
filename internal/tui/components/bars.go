package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

// Bar is one row of a BarList.
type Bar struct {
	Label string
	Value float64
	Text  string // shown after the bar, e.g. a formatted amount
}

// BarList renders labeled horizontal bars scaled to the largest value.
// Rows with a zero value are kept so categories line up between trips.
func BarList(bars []Bar, color lipgloss.Color, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(b.Text))
		peak = max(peak, b.Value)
	}

	barW := width - labelW - textW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	lines := make([]string, len(bars))
	for i, b := range bars {
		n := 0
		if peak > 0 {
			n = int(b.Value / peak * float64(barW))
		}
		if n == 0 && b.Value > 0 {
			n = 1
		}
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, b.Label)) +
			emptyStyle.Render(" ") +
			barStyle.Render(strings.Repeat("▇", n)) +
			emptyStyle.Render(strings.Repeat(" ", barW-n+1)) +
			textStyle.Render(fmt.Sprintf("%*s", textW, b.Text))
	}
	return strings.Join(lines, "\n")
}
