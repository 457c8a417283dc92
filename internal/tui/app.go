// Package tui implements the interactive dashboard.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"flowcast/internal/config"
	"flowcast/internal/forecast"
	"flowcast/internal/model"
	"flowcast/internal/store"
	"flowcast/internal/tui/components"
	"flowcast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 10

	settingsTab = 4

	// pollEvery is how often the dashboard checks the store revision for
	// writes made by the CLI or another process.
	pollEvery = 2 * time.Second
)

// App is the root bubbletea model for the dashboard.
type App struct {
	db      *store.Store
	cfg     config.Config
	horizon int

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Data state
	loaded      bool
	loadErr     error
	entities    model.EntitySet
	revision    int64
	result      *forecast.Result
	lastRefresh time.Time
	polling     bool

	spinner spinner.Model

	// First-run setup
	needSetup bool
	setupForm *huh.Form
	setupVals setupValues

	// Per-tab state
	accountsCursor int
	cardsCursor    int
	settings       settingsState
}

// NewApp creates the dashboard model. The store stays owned by the caller
// and must outlive the program.
func NewApp(db *store.Store, cfg config.Config, horizonDays int) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		db:      db,
		cfg:     cfg,
		horizon: horizonDays,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadDataCmd(a.db),
		a.spinner.Tick,
		tickCmd(),
	)
}

// recompute rebuilds the projection from the current entity snapshot.
func (a *App) recompute() {
	res, err := forecast.Run(a.entities, time.Now().UTC(), a.horizon, forecast.Options{
		StaleAfter: a.cfg.StaleAfter(),
	})
	if err != nil {
		a.loadErr = err
		return
	}
	a.loadErr = nil
	a.result = res
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
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == settingsTab && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Settings tab navigation
		if a.activeTab == settingsTab {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		// List navigation on accounts and cards tabs
		if key == "j" || key == "down" || key == "k" || key == "up" {
			down := key == "j" || key == "down"
			switch a.activeTab {
			case 1:
				a.accountsCursor = stepCursor(a.accountsCursor, len(a.entities.Accounts), down)
			case 3:
				a.cardsCursor = stepCursor(a.cardsCursor, len(a.entities.CreditCards), down)
			}
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "r" {
			return a, loadDataCmd(a.db)
		}

		// Horizon presets
		if len(key) == 1 && key[0] >= '1' && key[0] <= '5' {
			a.horizon = forecast.HorizonPresets[key[0]-'1']
			a.recompute()
			return a, nil
		}
		switch key {
		case "+", "=":
			a.horizon = nextPreset(a.horizon, true)
			a.recompute()
			return a, nil
		case "-":
			a.horizon = nextPreset(a.horizon, false)
			a.recompute()
			return a, nil
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case dataMsg:
		a.loaded = true
		a.lastRefresh = time.Now()
		if msg.err != nil {
			a.loadErr = msg.err
			return a, nil
		}
		a.entities = msg.entities
		a.revision = msg.revision
		a.recompute()

		// Activate first-run setup when the ledger has no accounts yet
		if len(a.entities.Accounts) == 0 && !a.needSetup {
			a.needSetup = true
			a.setupForm = newSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case pollMsg:
		a.polling = false
		if msg.err != nil {
			return a, nil
		}
		if msg.changed {
			a.entities = msg.entities
			a.revision = msg.revision
			a.lastRefresh = time.Now()
			a.recompute()
			clampCursors(&a)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}

		// Roll the projection forward when the calendar day changes even if
		// nothing was written.
		if a.result != nil && !forecast.SameDay(a.result.GeneratedAt, time.Now().UTC()) {
			a.recompute()
		}

		if a.loaded && !a.polling && !a.needSetup {
			a.polling = true
			cmds = append(cmds, pollCmd(a.db, a.revision))
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func stepCursor(cursor, length int, down bool) int {
	if down {
		if cursor < length-1 {
			return cursor + 1
		}
		return cursor
	}
	if cursor > 0 {
		return cursor - 1
	}
	return cursor
}

func clampCursors(a *App) {
	if n := len(a.entities.Accounts); a.accountsCursor >= n {
		a.accountsCursor = max(0, n-1)
	}
	if n := len(a.entities.CreditCards); a.cardsCursor >= n {
		a.cardsCursor = max(0, n-1)
	}
}

// nextPreset steps the horizon through the preset ladder.
func nextPreset(current int, up bool) int {
	presets := forecast.HorizonPresets
	if up {
		for _, p := range presets {
			if p > current {
				return p
			}
		}
		return presets[len(presets)-1]
	}
	for i := len(presets) - 1; i >= 0; i-- {
		if presets[i] < current {
			return presets[i]
		}
	}
	return presets[0]
}

// ─── First-Run Setup ────────────────────────────────────────────

type setupValues struct {
	name      string
	acctType  string
	balance   string
	themeName string
}

func newSetupForm(vals *setupValues) *huh.Form {
	vals.acctType = string(model.AccountChecking)
	vals.themeName = theme.Active.Name

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account name").
				Placeholder("Main checking").
				Value(&vals.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Account type").
				Options(
					huh.NewOption("Checking", string(model.AccountChecking)),
					huh.NewOption("Savings", string(model.AccountSavings)),
				).
				Value(&vals.acctType),
			huh.NewInput().
				Title("Current balance").
				Description("Whole currency units, e.g. 2500").
				Value(&vals.balance).
				Validate(func(s string) error {
					if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
						return errors.New("enter a whole number")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.themeName),
		).Title("Welcome to flowcast").
			Description("Add your first account to start projecting."),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.needSetup = false
		a.setupForm = nil
		if err := a.saveSetup(); err != nil {
			a.loadErr = err
			return a, nil
		}
		return a, loadDataCmd(a.db)
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a *App) saveSetup() error {
	units, err := strconv.ParseInt(strings.TrimSpace(a.setupVals.balance), 10, 64)
	if err != nil {
		return fmt.Errorf("parse balance: %w", err)
	}

	now := time.Now().UTC()
	acct := model.Account{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(a.setupVals.name),
		Type:             model.AccountType(a.setupVals.acctType),
		Balance:          units * 100,
		BalanceUpdatedAt: &now,
	}
	if err := a.db.SaveAccount(acct); err != nil {
		return err
	}

	if a.setupVals.themeName != a.cfg.Appearance.Theme {
		a.cfg.Appearance.Theme = a.setupVals.themeName
		theme.SetActive(a.setupVals.themeName)
		// Persist best-effort; the theme still applies for this session.
		_ = config.Save(a.cfg)
	}
	return nil
}

// ─── Layout ─────────────────────────────────────────────────────

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

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
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
		"\n  Terminal too narrow (%d cols)\n\n  flowcast needs at least %d columns.\n  Current width: %d\n",
		a.width,
		minTerminalWidth,
		a.width,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ flowcast"))
	b.WriteString(subtitleStyle.Render(" · Cashflow Forecast"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading ledger..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"f a b c x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"1-5", "Horizon preset (7/14/30/60/90 days)"},
		{"+ -", "Widen / Narrow horizon"},
		{"r", "Reload from the ledger"},
		{"Enter", "Edit setting"},
		{"Esc", "Cancel edit"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + horizon pill)
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pill := pillStyle.Render(" ") +
		pillAccentStyle.Render(fmt.Sprintf("%dd", a.horizon)) +
		pillStyle.Render(" │ ") +
		pillAccentStyle.Render(a.cfg.Forecast.Currency) +
		pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		pillRowStyle.Render(pill)

	// 2. Render status bar
	refreshed := ""
	if !a.lastRefresh.IsZero() {
		refreshed = relativeShort(time.Since(a.lastRefresh))
	}
	statusBar := components.RenderStatusBar(w, a.horizon, refreshed)

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content
	var content string
	switch a.activeTab {
	case 0:
		content = a.renderForecastTab(cw)
	case 1:
		content = a.renderAccountsTab(cw)
	case 2:
		content = a.renderBudgetTab(cw)
	case 3:
		content = a.renderCardsTab(cw)
	case settingsTab:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Ensure entire terminal is filled with background
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

type dataMsg struct {
	entities model.EntitySet
	revision int64
	err      error
}

type pollMsg struct {
	entities model.EntitySet
	revision int64
	changed  bool
	err      error
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadDataCmd reads the full entity snapshot from the store.
func loadDataCmd(db *store.Store) tea.Cmd {
	return func() tea.Msg {
		rev, err := db.Revision()
		if err != nil {
			return dataMsg{err: err}
		}
		ents, err := db.LoadEntities()
		return dataMsg{entities: ents, revision: rev, err: err}
	}
}

// pollCmd checks the store revision and reloads only when it moved. Idle
// polls cost a single SELECT.
func pollCmd(db *store.Store, since int64) tea.Cmd {
	return func() tea.Msg {
		rev, err := db.Revision()
		if err != nil {
			return pollMsg{err: err}
		}
		if rev == since {
			return pollMsg{revision: rev}
		}
		ents, err := db.LoadEntities()
		if err != nil {
			return pollMsg{err: err}
		}
		return pollMsg{entities: ents, revision: rev, changed: true}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// chartDateLabels builds compact X-axis labels for a chronological series of
// chart points. First label: month abbreviation (e.g. "Jun"). Month
// boundaries: the new month's abbreviation. Everything else: the day number.
func chartDateLabels(points []forecast.ChartPoint) []string {
	n := len(points)
	labels := make([]string, n)
	prevMonth := time.Month(0)
	for i, p := range points {
		m := p.Date.Month()
		switch {
		case i == 0:
			labels[i] = p.Date.Format("Jan")
		case i == n-1:
			labels[i] = strconv.Itoa(p.Date.Day())
		case m != prevMonth:
			labels[i] = p.Date.Format("Jan")
		default:
			labels[i] = strconv.Itoa(p.Date.Day())
		}
		prevMonth = m
	}
	return labels
}

// relativeShort formats a short "12s"/"3m" age for the status bar.
func relativeShort(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
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
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
