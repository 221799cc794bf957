package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wayfare/internal/calendar"
	"github.com/theirongolddev/wayfare/internal/palette"
	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

// MonthCellWidth returns the cell width that fits seven cells in width,
// between 4 and 8 columns.
func MonthCellWidth(width int) int {
	w := width / 7
	if w < 4 {
		return 4
	}
	if w > 8 {
		return 8
	}
	return w
}

// MonthGrid renders a calendar grid. Trip days are filled with their
// color, days with items carry a dot, selected is drawn reversed and today
// is underlined. Zero times mark nothing.
func MonthGrid(g calendar.Grid, selected, today time.Time, width int) string {
	t := theme.Active
	cellW := MonthCellWidth(width)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	title := fmt.Sprintf("%s %d", g.Month, g.Year)
	b.WriteString(titleStyle.Width(cellW * 7).Align(lipgloss.Center).Render(title))
	b.WriteString("\n")

	for _, l := range calendar.WeekdayLabels(g.FirstWeekday) {
		b.WriteString(labelStyle.Width(cellW).Align(lipgloss.Center).Render(l))
	}

	for _, week := range g.Rows() {
		b.WriteString("\n")
		for _, c := range week {
			b.WriteString(monthCell(c, selected, today, cellW))
		}
	}
	return b.String()
}

func monthCell(c calendar.Cell, selected, today time.Time, cellW int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Width(cellW).Align(lipgloss.Center).Background(t.Surface)
	if c.Empty() {
		return style.Render("")
	}

	mark := " "
	if c.HasItems {
		mark = "•"
	}
	text := fmt.Sprintf("%2d%s", c.Day(), mark)

	switch {
	case !c.InMonth:
		style = style.Foreground(t.TextDim)
	case c.InTrip && c.Color != "":
		style = style.
			Background(lipgloss.Color(c.Color)).
			Foreground(lipgloss.Color(palette.Foreground(c.Color)))
	default:
		style = style.Foreground(t.TextPrimary)
	}

	if c.InMonth {
		if sameDay(c.Date, today) {
			style = style.Underline(true).Bold(true)
		}
		if sameDay(c.Date, selected) {
			style = style.Reverse(true)
		}
	}
	return style.Render(text)
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
