package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/palette"
	"github.com/theirongolddev/wayfare/internal/tui/components"
	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

func (a App) updateCalendarKey(key string) (App, tea.Cmd, bool) {
	trip, ok := a.selectedTrip()
	if !ok {
		return a, nil, false
	}

	switch key {
	case "h":
		return a.moveDay(-1)
	case "l":
		return a.moveDay(1)
	case "k", "up":
		return a.moveDay(-7)
	case "j", "down":
		return a.moveDay(7)
	case "[":
		a.calMonth = a.calMonth.AddDate(0, -1, 0)
		a.calDay = a.calMonth
		return a, a.loadMonth(), true
	case "]":
		a.calMonth = a.calMonth.AddDate(0, 1, 0)
		a.calDay = a.calMonth
		return a, a.loadMonth(), true
	case ".":
		cmds := a.selectTrip(trip)
		return a, tea.Batch(cmds...), true
	}
	return a, nil, false
}

// moveDay shifts the selected day, switching months when it leaves the
// one shown.
func (a App) moveDay(n int) (App, tea.Cmd, bool) {
	a.calDay = a.calDay.AddDate(0, 0, n)
	if first := firstOfMonth(a.calDay); !first.Equal(a.calMonth) {
		a.calMonth = first
		return a, a.loadMonth(), true
	}
	return a, nil, true
}

func firstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func (a App) renderCalendarTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	trip, ok := a.selectedTrip()
	if !ok {
		return components.ContentCard("Calendar", muted.Render("Select a trip on the Trips tab."), cw)
	}
	if !a.hasMonth {
		return components.ContentCard(trip.Title, muted.Render("Loading..."), cw)
	}

	gridW := cw
	if !a.isCompactLayout() {
		gridW = cw / 2
	}
	if gridW > 8*7+4 {
		gridW = 8*7 + 4
	}
	innerW := components.CardInnerWidth(gridW)
	gridCard := components.ContentCard(trip.Title,
		components.MonthGrid(a.month.Grid, a.calDay, model.Day(a.now()), innerW)+"\n\n"+a.renderDestinationLegend(innerW),
		gridW)

	itemsW := cw - gridW
	if a.isCompactLayout() {
		itemsW = cw
	}
	itemsCard := components.ContentCard(
		fmt.Sprintf("%s %d · %d items", a.calMonth.Month(), a.calMonth.Year(), len(a.month.Items)),
		a.renderMonthItems(components.CardInnerWidth(itemsW)),
		itemsW)

	if a.isCompactLayout() {
		return gridCard + "\n" + itemsCard
	}
	return components.CardRow([]string{gridCard, itemsCard})
}

func (a App) renderDestinationLegend(w int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(a.month.Destinations) == 0 {
		return muted.Render("No destinations")
	}

	lines := make([]string, 0, len(a.month.Destinations))
	for _, d := range a.month.Destinations {
		color := palette.OrDefault(d.Color, a.month.Trip.Color)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Background(t.Surface).Render("■ ")
		text := d.Name + "  " + cli.FormatDateRange(d.StartDate, d.EndDate)
		lines = append(lines, swatch+muted.Render(truncStr(text, w-2)))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderMonthItems(w int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dayStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	selDayStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selText := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright)

	if len(a.month.Items) == 0 {
		return muted.Render("Nothing scheduled this month.")
	}

	dests := make(map[string]string, len(a.month.Destinations))
	for _, d := range a.month.Destinations {
		dests[d.ID.String()] = d.Name
	}

	var b strings.Builder
	var lastDay time.Time
	for _, it := range a.month.Items {
		start := it.StartTime.In(a.loc)
		day := model.Day(start)
		selected := day.Equal(model.Day(a.calDay))

		if !day.Equal(lastDay) {
			if !lastDay.IsZero() {
				b.WriteString("\n")
			}
			style := dayStyle
			if selected {
				style = selDayStyle
			}
			b.WriteString(style.Render(start.Format("Mon 2 Jan")))
			b.WriteString("\n")
			lastDay = day
		}

		when := cli.FormatTime(start)
		if it.EndTime != nil {
			when += "–" + cli.FormatTime(it.EndTime.In(a.loc))
		}
		line := fmt.Sprintf("  %-11s %s", when, it.Title)
		var extra []string
		if it.Location != "" {
			extra = append(extra, it.Location)
		}
		if it.DestinationID != nil {
			if name, ok := dests[it.DestinationID.String()]; ok {
				extra = append(extra, name)
			}
		}
		extra = append(extra, string(it.Category))
		line += " · " + strings.Join(extra, " · ")

		style := text
		if selected {
			style = selText
		}
		b.WriteString(style.Width(w).Render(truncStr(line, w)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
