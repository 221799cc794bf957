package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/wayfare/internal/config"
	"github.com/theirongolddev/wayfare/internal/money"
	"github.com/theirongolddev/wayfare/internal/tui/components"
	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

// SetupValues are the answers of the first-run form.
type SetupValues struct {
	Currency  string
	DarkMode  bool
	WeekStart string
}

// NewSetupValues seeds the form with the current configuration.
func NewSetupValues(cfg config.Config) *SetupValues {
	week := "monday"
	if strings.EqualFold(cfg.Calendar.WeekStart, "sunday") {
		week = "sunday"
	}
	return &SetupValues{
		Currency:  cfg.General.Currency,
		DarkMode:  cfg.Appearance.DarkMode,
		WeekStart: week,
	}
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	if code, err := money.NormalizeCurrency(v.Currency); err == nil {
		cfg.General.Currency = code
	}
	cfg.Appearance.DarkMode = v.DarkMode
	cfg.Calendar.WeekStart = v.WeekStart
}

// NewSetupForm builds the first-run form writing into v. It is shown inside
// the dashboard and run standalone by `wayfare setup`.
func NewSetupForm(v *SetupValues) *huh.Form {
	currencies := money.Common
	if !contains(currencies, v.Currency) && v.Currency != "" {
		currencies = append([]string{v.Currency}, currencies...)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to wayfare").
				Description("A few preferences before your first trip.\nRun `wayfare setup` anytime to change them."),
			huh.NewSelect[string]().
				Title("Preferred currency").
				Description("Used for new trips and their budgets.").
				Options(huh.NewOptions(currencies...)...).
				Value(&v.Currency),
			huh.NewConfirm().
				Title("Appearance").
				Affirmative("Dark").
				Negative("Light").
				Value(&v.DarkMode),
			huh.NewSelect[string]().
				Title("Weeks start on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).
				Value(&v.WeekStart),
		),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(true)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, a.loadMonth()
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a *App) saveSetupConfig() {
	a.setupVals.Apply(&a.cfg)
	theme.Apply(a.cfg.Appearance.DarkMode)

	if err := config.Save(a.cfg); err != nil {
		a.fail("saving config", err)
		return
	}
	a.status = components.Status{Text: "saved " + config.ConfigPath()}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
