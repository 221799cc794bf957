package tui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/money"
	"github.com/theirongolddev/wayfare/internal/palette"
	"github.com/theirongolddev/wayfare/internal/tui/components"
)

// tripValues back the new-trip form.
type tripValues struct {
	Title       string
	Destination string
	Start       string
	End         string
	Budget      string
	Currency    string
	Color       string
	Notes       string
}

func newTripValues(currency string, now time.Time) *tripValues {
	start := model.Day(now).AddDate(0, 0, 7)
	return &tripValues{
		Start:    start.Format(model.DateLayout),
		End:      start.AddDate(0, 0, 6).Format(model.DateLayout),
		Currency: currency,
		Color:    palette.Default,
	}
}

func newTripForm(v *tripValues) *huh.Form {
	currencies := money.Common
	if !contains(currencies, v.Currency) && v.Currency != "" {
		currencies = append([]string{v.Currency}, currencies...)
	}

	colors := make([]huh.Option[string], len(palette.Presets))
	for i, c := range palette.Presets {
		colors[i] = huh.NewOption(c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Lisbon in spring").
				Value(&v.Title).
				Validate(requiredText("title")),
			huh.NewInput().
				Title("Destination").
				Placeholder("Portugal").
				Value(&v.Destination),
			huh.NewInput().
				Title("Start date").
				Placeholder(model.DateLayout).
				Value(&v.Start).
				Validate(validDate),
			huh.NewInput().
				Title("End date").
				Placeholder(model.DateLayout).
				Value(&v.End).
				Validate(func(s string) error {
					if err := validDate(s); err != nil {
						return err
					}
					start, err := parseDate(v.Start)
					if err != nil {
						return nil // reported on the start field
					}
					end, _ := parseDate(s)
					if end.Before(start) {
						return errors.New("ends before it starts")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Budget").
				Description("Leave empty for no budget.").
				Placeholder("1500").
				Value(&v.Budget).
				Validate(validBudget),
			huh.NewSelect[string]().
				Title("Currency").
				Options(huh.NewOptions(currencies...)...).
				Value(&v.Currency),
			huh.NewSelect[string]().
				Title("Color").
				Options(colors...).
				Value(&v.Color),
			huh.NewText().
				Title("Notes").
				Value(&v.Notes),
		),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(true)
}

// trip converts validated form values into a record.
func (v tripValues) trip() (model.Trip, error) {
	start, err := parseDate(v.Start)
	if err != nil {
		return model.Trip{}, err
	}
	end, err := parseDate(v.End)
	if err != nil {
		return model.Trip{}, err
	}
	budget := decimal.Zero
	if strings.TrimSpace(v.Budget) != "" {
		if budget, err = money.Parse(v.Budget); err != nil {
			return model.Trip{}, err
		}
	}
	return model.Trip{
		Title:       strings.TrimSpace(v.Title),
		Destination: strings.TrimSpace(v.Destination),
		StartDate:   start,
		EndDate:     end,
		Budget:      budget,
		Currency:    v.Currency,
		Color:       v.Color,
		Notes:       strings.TrimSpace(v.Notes),
	}, nil
}

func (a App) openTripForm() (App, tea.Cmd) {
	a.tripVals = newTripValues(a.cfg.General.Currency, a.now())
	a.tripForm = newTripForm(a.tripVals).WithWidth(a.formWidth())
	return a, a.tripForm.Init()
}

func (a App) updateTripForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.tripForm = nil
		a.status = components.Status{Text: "new trip cancelled"}
		return a, nil
	}

	form, cmd := a.tripForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.tripForm = f
	}

	switch a.tripForm.State {
	case huh.StateCompleted:
		a.tripForm = nil
		trip, err := a.tripVals.trip()
		if err != nil {
			return a, a.fail("new trip", err)
		}
		a.status = components.Status{Text: "saving " + trip.Title, Busy: true}
		return a, createTripCmd(a.svc, trip)
	case huh.StateAborted:
		a.tripForm = nil
		return a, nil
	}
	return a, cmd
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(model.DateLayout, strings.TrimSpace(s))
}

func validDate(s string) error {
	if _, err := parseDate(s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validBudget(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := money.Parse(s)
	if err != nil {
		return errors.New("not a number")
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}
