package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/wayfare/internal/config"
	"github.com/theirongolddev/wayfare/internal/money"
	"github.com/theirongolddev/wayfare/internal/tui/components"
	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

const (
	settingsFieldCurrency = iota
	settingsFieldDarkMode
	settingsFieldWeekStart
	settingsFieldShowAdjacent
	settingsFieldLogLevel
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool
	saveErr error
}

var logLevels = []string{"debug", "info", "warn", "error"}

func (a App) updateSettingsKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter", " ":
		return a.settingsActivate()
	}
	return a, nil, false
}

// settingsActivate flips boolean fields in place and opens the text input
// for the others.
func (a App) settingsActivate() (App, tea.Cmd, bool) {
	a.settings.saved = false
	cfg := a.cfg

	switch a.settings.cursor {
	case settingsFieldDarkMode:
		cfg.Appearance.DarkMode = !cfg.Appearance.DarkMode
		return a.settingsSave(cfg)
	case settingsFieldWeekStart:
		if cfg.FirstWeekday() == time.Sunday {
			cfg.Calendar.WeekStart = "monday"
		} else {
			cfg.Calendar.WeekStart = "sunday"
		}
		return a.settingsSave(cfg)
	case settingsFieldShowAdjacent:
		cfg.Calendar.ShowAdjacent = !cfg.Calendar.ShowAdjacent
		return a.settingsSave(cfg)
	}

	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 20
	switch a.settings.cursor {
	case settingsFieldCurrency:
		ti.Placeholder = strings.Join(money.Common[:4], ", ")
		ti.SetValue(cfg.General.Currency)
	case settingsFieldLogLevel:
		ti.Placeholder = strings.Join(logLevels, ", ")
		ti.SetValue(cfg.General.LogLevel)
	}
	ti.Focus()
	a.settings.input = ti
	a.settings.editing = true
	return a, ti.Cursor.BlinkCmd(), true
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		cfg := a.cfg
		val := strings.TrimSpace(a.settings.input.Value())

		switch a.settings.cursor {
		case settingsFieldCurrency:
			code, err := money.NormalizeCurrency(val)
			if err != nil {
				a.settings.saveErr = err
				return a, nil
			}
			cfg.General.Currency = code
		case settingsFieldLogLevel:
			val = strings.ToLower(val)
			if !contains(logLevels, val) {
				a.settings.saveErr = fmt.Errorf("log level must be one of %s", strings.Join(logLevels, ", "))
				return a, nil
			}
			cfg.General.LogLevel = val
		}
		next, cmd, _ := a.settingsSave(cfg)
		return next, cmd
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave persists cfg and applies what changed to the running app.
func (a App) settingsSave(cfg config.Config) (App, tea.Cmd, bool) {
	if err := config.Save(cfg); err != nil {
		a.settings.saveErr = err
		a.log.Error("saving config", zap.Error(err))
		return a, nil, true
	}
	a.settings.saveErr = nil
	a.settings.saved = true

	prev := a.cfg
	a.cfg = cfg
	if prev.Appearance.DarkMode != cfg.Appearance.DarkMode {
		theme.Apply(cfg.Appearance.DarkMode)
	}
	if prev.FirstWeekday() != cfg.FirstWeekday() || prev.Calendar.ShowAdjacent != cfg.Calendar.ShowAdjacent {
		return a, a.loadMonth(), true
	}
	return a, nil, true
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	week := "Monday"
	if cfg.FirstWeekday() == time.Sunday {
		week = "Sunday"
	}
	fields := []struct{ label, value string }{
		{"Currency", cfg.General.Currency},
		{"Dark mode", onOff(cfg.Appearance.DarkMode)},
		{"Week starts on", week},
		{"Adjacent days", onOff(cfg.Calendar.ShowAdjacent)},
		{"Log level", cfg.General.LogLevel},
	}

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			form.WriteString(a.settings.input.View())
			form.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			line := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")) +
				selectedStyle.Render(f.value)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				line += lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad))
			}
			form.WriteString(line)
		} else {
			form.WriteString(labelStyle.Render("  " + fmt.Sprintf("%-16s ", f.label+":")))
			form.WriteString(valueStyle.Render(f.value))
		}
		form.WriteString("\n")
	}

	switch {
	case a.settings.saveErr != nil:
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		form.WriteString("\n")
		form.WriteString(warn.Render("Not saved: " + a.settings.saveErr.Error()))
		form.WriteString("\n")
	case a.settings.saved:
		form.WriteString("\n")
		form.WriteString(greenStyle.Render("Saved"))
		form.WriteString("\n")
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit or toggle  [Esc] cancel"))

	var info strings.Builder
	info.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	info.WriteString(labelStyle.Render("Database:     ") + valueStyle.Render(cfg.DBPath()) + "\n")
	info.WriteString(labelStyle.Render("Log file:     ") + valueStyle.Render(cfg.LogPath()) + "\n")
	info.WriteString(labelStyle.Render("Trips:        ") + valueStyle.Render(strconv.Itoa(len(a.trips))))

	return components.ContentCard("Settings", form.String(), cw) + "\n" +
		components.ContentCard("Storage", info.String(), cw)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
