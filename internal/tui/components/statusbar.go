package components

import (
	"fmt"

	"flowcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width, horizonDays int, refreshed string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [1-5]horizon  [r]efresh  [q]uit"
	right := fmt.Sprintf("%dd horizon", horizonDays)
	if refreshed != "" {
		right += fmt.Sprintf(" · updated %s ", refreshed)
	} else {
		right += " "
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
