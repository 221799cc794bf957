// Package tui provides the interactive wayfare dashboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/wayfare/internal/calendar"
	"github.com/theirongolddev/wayfare/internal/config"
	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/service"
	"github.com/theirongolddev/wayfare/internal/tui/components"
	"github.com/theirongolddev/wayfare/internal/tui/theme"
)

// Tab indexes, in the order of components.Tabs.
const (
	tabTrips = iota
	tabCalendar
	tabExpenses
	tabDocuments
	tabSettings
)

// Layout constants
const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// Options configure the dashboard.
type Options struct {
	Services  *service.Services
	Config    config.Config
	Logger    *zap.Logger
	NeedSetup bool // show the first-run form before the dashboard
}

// App is the root Bubble Tea model. Store I/O only happens inside
// commands; fields are only changed in Update.
type App struct {
	svc *service.Services
	cfg config.Config
	log *zap.Logger
	now func() time.Time
	loc *time.Location

	activeTab int
	width     int
	height    int
	loaded    bool
	showHelp  bool
	spinner   spinner.Model
	status    components.Status

	trips        []model.Trip
	tripCursor   int
	selectedID   uuid.UUID // trip the detail and month belong to
	pendingID    uuid.UUID // trip to select once the list reloads
	reloadDetail bool

	detail    tripDetail
	hasDetail bool

	month    service.MonthView
	hasMonth bool
	calMonth time.Time
	calDay   time.Time

	expCursor int
	paying    bool
	payInput  textinput.Model

	docCursor int

	tripForm *huh.Form
	tripVals *tripValues

	needSetup bool
	setupForm *huh.Form
	setupVals *SetupValues

	settings settingsState
}

// NewApp creates the root model.
func NewApp(opts Options) App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	theme.Apply(opts.Config.Appearance.DarkMode)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		svc:       opts.Services,
		cfg:       opts.Config,
		log:       log,
		now:       time.Now,
		loc:       time.Local,
		spinner:   sp,
		needSetup: opts.NeedSetup,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadTripsCmd(a.svc),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.tripForm != nil {
			a.tripForm = a.tripForm.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.modal() {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		return a.updateKey(msg)

	case tripsLoadedMsg:
		return a.handleTripsLoaded(msg)

	case detailLoadedMsg:
		if msg.err != nil {
			return a, a.fail("loading trip", msg.err)
		}
		if msg.id != a.selectedID {
			return a, nil // selection moved on
		}
		a.detail = msg.detail
		a.hasDetail = true
		a.clampCursors()
		return a, nil

	case monthLoadedMsg:
		// Loads run concurrently; only the one matching what is on screen counts.
		if msg.id != a.selectedID || !msg.month.Equal(a.calMonth) || msg.opts != a.calendarOptions() {
			return a, nil
		}
		if msg.err != nil {
			return a, a.fail("loading calendar", msg.err)
		}
		a.month = msg.view
		a.hasMonth = true
		return a, nil

	case savedMsg:
		if msg.err != nil {
			return a, a.fail("saving", msg.err)
		}
		a.status = components.Status{Text: msg.text}
		a.log.Info("saved", zap.String("what", msg.text))
		a.pendingID = msg.tripID
		a.reloadDetail = true
		return a, loadTripsCmd(a.svc)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward everything else (cursor blinks, etc.) to an open form.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.tripForm != nil {
		return a.updateTripForm(msg)
	}
	return a, nil
}

func (a App) handleTripsLoaded(msg tripsLoadedMsg) (tea.Model, tea.Cmd) {
	a.loaded = true
	if msg.err != nil {
		return a, a.fail("loading trips", msg.err)
	}
	if a.status.Busy {
		a.status = components.Status{}
	}

	a.trips = msg.trips
	if a.pendingID != uuid.Nil {
		for i, t := range a.trips {
			if t.ID == a.pendingID {
				a.tripCursor = i
			}
		}
		a.pendingID = uuid.Nil
	}
	a.tripCursor = clamp(a.tripCursor, 0, len(a.trips)-1)

	var cmds []tea.Cmd
	if a.needSetup && a.setupForm == nil {
		a.setupVals = NewSetupValues(a.cfg)
		a.setupForm = NewSetupForm(a.setupVals)
		if a.width > 0 {
			a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
		}
		cmds = append(cmds, a.setupForm.Init())
	}

	trip, ok := a.selectedTrip()
	switch {
	case !ok:
		a.selectedID = uuid.Nil
		a.hasDetail = false
		a.hasMonth = false
	case trip.ID != a.selectedID:
		cmds = append(cmds, a.selectTrip(trip)...)
	case a.reloadDetail:
		cmds = append(cmds, loadDetailCmd(a.svc, trip.ID, a.now()), a.loadMonth())
	}
	a.reloadDetail = false
	return a, tea.Batch(cmds...)
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Forms and inputs own the keyboard while open.
	switch {
	case a.setupForm != nil:
		return a.updateSetupForm(msg)
	case a.tripForm != nil:
		return a.updateTripForm(msg)
	case a.paying:
		return a.updatePayInput(msg)
	case a.settings.editing:
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		a.reloadDetail = true
		a.status = components.Status{Text: "reloading", Busy: true}
		return a, loadTripsCmd(a.svc)
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	var (
		handled bool
		cmd     tea.Cmd
	)
	switch a.activeTab {
	case tabTrips:
		a, cmd, handled = a.updateTripsKey(key)
	case tabCalendar:
		a, cmd, handled = a.updateCalendarKey(key)
	case tabExpenses:
		a, cmd, handled = a.updateExpensesKey(key)
	case tabDocuments:
		a, cmd, handled = a.updateDocumentsKey(key)
	case tabSettings:
		a, cmd, handled = a.updateSettingsKey(key)
	}
	if handled {
		return a, cmd
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var key string
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		key = "up"
	case tea.MouseButtonWheelDown:
		key = "down"
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil
	default:
		return a, nil
	}

	var cmd tea.Cmd
	switch a.activeTab {
	case tabTrips:
		a, cmd, _ = a.updateTripsKey(key)
	case tabExpenses:
		a, cmd, _ = a.updateExpensesKey(key)
	case tabDocuments:
		a, cmd, _ = a.updateDocumentsKey(key)
	}
	return a, cmd
}

// fail shows err in the status bar and logs it.
func (a *App) fail(what string, err error) tea.Cmd {
	a.status = components.Status{Text: fmt.Sprintf("%s: %v", what, err), Error: true}
	a.log.Error(what, zap.Error(err))
	return nil
}

func (a App) modal() bool {
	return a.setupForm != nil || a.tripForm != nil || a.paying || a.settings.editing
}

func (a App) selectedTrip() (model.Trip, bool) {
	if a.tripCursor < 0 || a.tripCursor >= len(a.trips) {
		return model.Trip{}, false
	}
	return a.trips[a.tripCursor], true
}

// selectTrip resets the per-trip state and returns the commands that load it.
func (a *App) selectTrip(trip model.Trip) []tea.Cmd {
	a.selectedID = trip.ID
	a.hasDetail = false
	a.hasMonth = false
	a.expCursor = 0
	a.docCursor = 0

	now := a.now()
	a.calMonth = service.StartMonth(trip, now)
	if service.PhaseOf(trip, now) == service.PhaseOngoing {
		a.calDay = model.Day(now)
	} else {
		a.calDay = model.Day(trip.StartDate)
	}

	return []tea.Cmd{
		loadDetailCmd(a.svc, trip.ID, now),
		a.loadMonth(),
	}
}

func (a App) loadMonth() tea.Cmd {
	if a.selectedID == uuid.Nil {
		return nil
	}
	return loadMonthCmd(a.svc, a.selectedID, a.calMonth, a.loc, a.calendarOptions())
}

func (a App) calendarOptions() calendar.Options {
	return calendar.Options{
		FirstWeekday: a.cfg.FirstWeekday(),
		ShowAdjacent: a.cfg.Calendar.ShowAdjacent,
	}
}

func (a *App) clampCursors() {
	a.expCursor = clamp(a.expCursor, 0, len(a.detail.expenses)-1)
	a.docCursor = clamp(a.docCursor, 0, len(a.detail.documents)-1)
}

// clamp bounds v to [lo, hi]; lo wins when hi < lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) formWidth() int {
	w := a.contentWidth() - 4
	if w > 72 {
		w = 72
	}
	return w
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  wayfare needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ wayfare"))
	b.WriteString(subtitleStyle.Render(" · solo travel organizer"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Opening trips..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"t c e d s", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move selection"},
		}},
		{"Trips", [][2]string{
			{"n", "New trip"},
			{"Enter", "Open in calendar"},
		}},
		{"Calendar", [][2]string{
			{"h l j k", "Move by day / week"},
			{"[ ]", "Previous / Next month"},
			{".", "Back to the trip"},
		}},
		{"Expenses", [][2]string{
			{"p", "Mark paid"},
			{"P", "Record a partial payment"},
		}},
		{"General", [][2]string{
			{"r", "Reload"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.hints(), a.status)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabTrips:
		content = a.renderTripsTab(cw)
	case tabCalendar:
		content = a.renderCalendarTab(cw)
	case tabExpenses:
		content = a.renderExpensesTab(cw)
	case tabDocuments:
		content = a.renderDocumentsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	switch {
	case a.tripForm != nil:
		return "[Enter]next  [Esc]cancel"
	case a.paying, a.settings.editing:
		return "[Enter]save  [Esc]cancel"
	}
	switch a.activeTab {
	case tabTrips:
		return "[n]ew trip  [j/k]select  [?]help  [q]uit"
	case tabCalendar:
		return "[h/l]day  [[/]]month  [?]help  [q]uit"
	case tabExpenses:
		return "[p]aid  [P]artial  [?]help  [q]uit"
	case tabSettings:
		return "[Enter]edit  [?]help  [q]uit"
	}
	return "[?]help  [q]uit"
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths RenderTabBar draws.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background
// color so gaps between cards are filled.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
