package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/service"
	"github.com/theirongolddev/wayfare/internal/tui/components"
	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

func (a App) updateTripsKey(key string) (App, tea.Cmd, bool) {
	prev := a.tripCursor
	switch key {
	case "j", "down":
		if a.tripCursor < len(a.trips)-1 {
			a.tripCursor++
		}
	case "k", "up":
		if a.tripCursor > 0 {
			a.tripCursor--
		}
	case "g", "home":
		a.tripCursor = 0
	case "G", "end":
		a.tripCursor = clamp(len(a.trips)-1, 0, len(a.trips)-1)
	case "n":
		next, cmd := a.openTripForm()
		return next, cmd, true
	case "enter":
		if len(a.trips) > 0 {
			a.activeTab = tabCalendar
		}
		return a, nil, true
	default:
		return a, nil, false
	}

	if a.tripCursor == prev {
		return a, nil, true
	}
	trip, _ := a.selectedTrip()
	return a, tea.Batch(a.selectTrip(trip)...), true
}

func (a App) renderTripsTab(cw int) string {
	if a.tripForm != nil {
		return components.FocusedCard("New trip", a.tripForm.View(), cw)
	}

	t := theme.Active
	if len(a.trips) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Trips", muted.Render("No trips yet. Press n to plan one."), cw)
	}

	if a.isCompactLayout() {
		return a.renderTripList(cw) + "\n" + a.renderTripDetail(cw)
	}
	listW := cw * 2 / 5
	return components.CardRow([]string{
		a.renderTripList(listW),
		a.renderTripDetail(cw - listW),
	})
}

func (a App) renderTripList(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)
	now := a.now()

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selMetaStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceBright)

	var b strings.Builder
	for i, trip := range a.trips {
		title, meta := rowStyle, metaStyle
		marker := "  "
		if i == a.tripCursor {
			title, meta = selStyle, selMetaStyle
			marker = "▸ "
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(trip.Color)).Background(title.GetBackground()).Render("● ")

		dates := cli.FormatDateRange(trip.StartDate, trip.EndDate)
		phase := string(service.PhaseOf(trip, now))
		nameW := innerW - lipgloss.Width(marker) - 2
		line1 := title.Render(marker) + swatch + title.Width(nameW).Render(truncStr(trip.Title, nameW))
		line2 := meta.Width(innerW).Render("    " + truncStr(dates+" · "+phase, innerW-4))
		b.WriteString(line1 + "\n" + line2)
		if i < len(a.trips)-1 {
			b.WriteString("\n")
		}
	}
	return components.ContentCard(fmt.Sprintf("Trips (%d)", len(a.trips)), b.String(), w)
}

func (a App) renderTripDetail(w int) string {
	t := theme.Active
	trip, ok := a.selectedTrip()
	if !ok {
		return ""
	}
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	if !a.hasDetail {
		return components.ContentCard(trip.Title, muted.Render("Loading..."), w)
	}

	ov := a.detail.overview
	sum := a.detail.summary
	innerW := components.CardInnerWidth(w)

	var b strings.Builder
	heading := trip.Destination
	if heading == "" {
		heading = "—"
	}
	b.WriteString(value.Bold(true).Render(heading))
	b.WriteString(muted.Render("  " + cli.FormatDateRange(trip.StartDate, trip.EndDate)))
	b.WriteString(muted.Render(fmt.Sprintf("  (%d days)", trip.Days())))
	b.WriteString("\n\n")

	switch ov.Phase {
	case service.PhaseUpcoming:
		b.WriteString(muted.Render("Starts " + cli.FormatCountdown(ov.DaysLeft)))
	case service.PhaseOngoing:
		b.WriteString(muted.Render("Under way"))
	default:
		b.WriteString(muted.Render("Completed"))
	}
	b.WriteString("\n")
	b.WriteString(components.ProgressBar(ov.Progress, innerW-6))
	b.WriteString("\n\n")

	counts := fmt.Sprintf("%d destinations · %d items · %d expenses · %d documents",
		ov.Counts.Destinations, ov.Counts.Items, ov.Counts.Expenses, ov.Counts.Documents)
	b.WriteString(muted.Render(truncStr(counts, innerW)))

	if strings.TrimSpace(trip.Notes) != "" {
		b.WriteString("\n\n")
		b.WriteString(value.Width(innerW).Render(trip.Notes))
	}

	var out strings.Builder
	out.WriteString(components.ContentCard(trip.Title, b.String(), w))
	out.WriteString("\n")
	out.WriteString(components.MetricCardRow(budgetMetrics(sum), w))
	return out.String()
}

// budgetMetrics are the cards shown for the trip currency.
func budgetMetrics(sum service.Summary) []components.Metric {
	t := theme.Active
	cur := sum.TripCurrency
	ct, _ := sum.For(cur)

	budget := components.Metric{Label: "Budget", Value: "none"}
	remaining := components.Metric{Label: "Remaining", Value: "—"}
	if sum.HasBudget() {
		used := sum.BudgetUsed()
		budget.Value = cli.FormatMoney(sum.Budget, cur)
		budget.Note = cli.FormatPercent(used) + " used"
		budget.Color = components.ColorForUsage(used)
		remaining.Value = cli.FormatMoney(sum.BudgetRemaining(), cur)
		if sum.BudgetRemaining().IsNegative() {
			remaining.Color = t.Red
			remaining.Note = "over budget"
		}
	}

	due := components.Metric{Label: "Due", Value: cli.FormatMoney(ct.Due, cur)}
	if ct.Overdue > 0 {
		due.Color = t.Orange
		due.Note = fmt.Sprintf("%d overdue", ct.Overdue)
	}

	return []components.Metric{
		budget,
		{Label: "Spent", Value: cli.FormatMoney(ct.Total, cur), Note: fmt.Sprintf("%d expenses", ct.Count)},
		remaining,
		due,
	}
}
