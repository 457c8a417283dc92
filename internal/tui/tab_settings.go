package tui

import (
	"fmt"
	"strconv"
	"strings"

	"flowcast/internal/cli"
	"flowcast/internal/config"
	"flowcast/internal/tui/components"
	"flowcast/internal/tui/theme"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldHorizon
	settingsFieldStaleAfter
	settingsFieldCurrency
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		names := make([]string, len(theme.All))
		for i, t := range theme.All {
			names[i] = t.Name
		}
		ti.Placeholder = strings.Join(names, ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldHorizon:
		ti.Placeholder = "30"
		ti.SetValue(strconv.Itoa(a.cfg.General.HorizonDays))
	case settingsFieldStaleAfter:
		ti.Placeholder = "24 (hours)"
		ti.SetValue(strconv.Itoa(a.cfg.Forecast.StaleAfterHours))
	case settingsFieldCurrency:
		ti.Placeholder = "USD"
		ti.SetValue(a.cfg.Forecast.Currency)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if found {
			a.cfg.Appearance.Theme = val
			theme.SetActive(val)
		}
	case settingsFieldHorizon:
		if d, err := strconv.Atoi(val); err == nil && d > 0 {
			a.cfg.General.HorizonDays = d
			a.horizon = d
			a.recompute()
		}
	case settingsFieldStaleAfter:
		if h, err := strconv.Atoi(val); err == nil && h > 0 {
			a.cfg.Forecast.StaleAfterHours = h
			a.recompute()
		}
	case settingsFieldCurrency:
		code := strings.ToUpper(val)
		if money.GetCurrency(code) != nil {
			a.cfg.Forecast.Currency = code
			cli.SetCurrency(code)
		}
	}

	a.settings.saveErr = config.Save(a.cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{"Theme", a.cfg.Appearance.Theme},
		{"Horizon Days", strconv.Itoa(a.cfg.General.HorizonDays)},
		{"Stale After", fmt.Sprintf("%dh", a.cfg.Forecast.StaleAfterHours)},
		{"Currency", a.cfg.Forecast.Currency},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			// Selected row with marker and highlight
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			// Normal row
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// General info card
	ents := a.entities
	records := len(ents.Accounts) + len(ents.RecurringIncomes) + len(ents.SingleIncomes) +
		len(ents.FixedExpenses) + len(ents.SingleExpenses) + len(ents.CreditCards) +
		len(ents.FutureStatements)

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Database:     ") + valueStyle.Render(a.cfg.DBPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Records:      ") + valueStyle.Render(cli.FormatNumber(int64(records))) + "\n")
	infoBody.WriteString(labelStyle.Render("Revision:     ") + valueStyle.Render(cli.FormatNumber(a.revision)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
