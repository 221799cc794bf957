package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wayfare/internal/cli"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/money"
	"github.com/theirongolddev/wayfare/internal/service"
	"github.com/theirongolddev/wayfare/internal/tui/components"
	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

func (a App) selectedExpense() (model.Expense, bool) {
	if !a.hasDetail || a.expCursor < 0 || a.expCursor >= len(a.detail.expenses) {
		return model.Expense{}, false
	}
	return a.detail.expenses[a.expCursor], true
}

func (a App) updateExpensesKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.expCursor < len(a.detail.expenses)-1 {
			a.expCursor++
		}
		return a, nil, true
	case "k", "up":
		if a.expCursor > 0 {
			a.expCursor--
		}
		return a, nil, true
	case "p":
		e, ok := a.selectedExpense()
		if !ok {
			return a, nil, true
		}
		if e.Status == model.StatusPaid {
			a.status = components.Status{Text: e.Title + " is already paid"}
			return a, nil, true
		}
		return a, payCmd(a.svc, e, e.DueAmount()), true
	case "P":
		e, ok := a.selectedExpense()
		if !ok || e.Status == model.StatusPaid {
			return a, nil, true
		}
		ti := textinput.New()
		ti.Placeholder = e.DueAmount().String()
		ti.Prompt = money.Format(e.DueAmount(), e.Currency) + " due, pay: "
		ti.CharLimit = 20
		ti.Width = 16
		ti.Focus()
		a.payInput = ti
		a.paying = true
		return a, ti.Cursor.BlinkCmd(), true
	}
	return a, nil, false
}

func (a App) updatePayInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.paying = false
		return a, nil
	case "enter":
		a.paying = false
		e, ok := a.selectedExpense()
		if !ok {
			return a, nil
		}
		amount, err := money.Parse(a.payInput.Value())
		if err != nil {
			return a, a.fail("payment", err)
		}
		return a, payCmd(a.svc, e, amount)
	}

	var cmd tea.Cmd
	a.payInput, cmd = a.payInput.Update(msg)
	return a, cmd
}

func (a App) renderExpensesTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	trip, ok := a.selectedTrip()
	if !ok {
		return components.ContentCard("Expenses", muted.Render("Select a trip on the Trips tab."), cw)
	}
	if !a.hasDetail {
		return components.ContentCard(trip.Title, muted.Render("Loading..."), cw)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(budgetMetrics(a.detail.summary), cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(a.renderExpenseList(cw))
		b.WriteString("\n")
		b.WriteString(a.renderCategoryCard(cw))
		return b.String()
	}
	listW := cw * 3 / 5
	b.WriteString(components.CardRow([]string{
		a.renderExpenseList(listW),
		a.renderCategoryCard(cw - listW),
	}))
	return b.String()
}

func (a App) renderExpenseList(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)
	now := a.now()

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	sel := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)

	title := fmt.Sprintf("Expenses (%d)", len(a.detail.expenses))
	if len(a.detail.expenses) == 0 {
		return components.ContentCard(title, muted.Render("No expenses recorded."), w)
	}

	amountW := 12
	statusW := 22
	titleW := innerW - amountW - statusW - 4
	if titleW < 8 {
		titleW = 8
	}

	var b strings.Builder
	b.WriteString(muted.Render(fmt.Sprintf("  %-*s %*s  %-*s", titleW, "Title", amountW, "Amount", statusW, "Status")))
	for i, e := range a.detail.expenses {
		style := row
		marker := "  "
		if i == a.expCursor {
			style = sel
			marker = "▸ "
		}

		status := cli.FormatStatus(e)
		statusStyle := lipgloss.NewStyle().Background(style.GetBackground())
		switch {
		case e.Overdue(now):
			statusStyle = statusStyle.Foreground(t.Red)
			status += " (overdue)"
		case e.Status == model.StatusPaid:
			statusStyle = statusStyle.Foreground(t.Green)
		default:
			statusStyle = statusStyle.Foreground(t.Orange)
		}

		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%s%-*s %*s  ",
			marker, titleW, truncStr(e.Title, titleW), amountW, cli.FormatMoney(e.Amount, e.Currency))))
		b.WriteString(statusStyle.Width(statusW).Render(truncStr(status, statusW)))
	}

	if a.paying {
		b.WriteString("\n\n")
		b.WriteString(a.payInput.View())
	}
	return components.ContentCard(title, b.String(), w)
}

func (a App) renderCategoryCard(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	head := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	sum := a.detail.summary
	if len(sum.Currencies) == 0 {
		return components.ContentCard("By category", muted.Render("Nothing to show."), w)
	}

	var b strings.Builder
	for i, ct := range sum.Currencies {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(head.Render(ct.Currency))
		b.WriteString(muted.Render(fmt.Sprintf("  %s total · %s paid", cli.FormatMoney(ct.Total, ct.Currency), cli.FormatMoney(ct.Paid, ct.Currency))))
		b.WriteString("\n")
		b.WriteString(components.BarList(categoryBars(ct), t.Accent, innerW))
	}
	return components.ContentCard("By category", b.String(), w)
}

func categoryBars(ct service.CurrencyTotals) []components.Bar {
	bars := make([]components.Bar, 0, len(model.ExpenseCategories))
	for _, c := range model.ExpenseCategories {
		amt := ct.ByCategory[c]
		bars = append(bars, components.Bar{
			Label: string(c),
			Value: amt.InexactFloat64(),
			Text:  cli.FormatMoney(amt, ct.Currency),
		})
	}
	return bars
}
