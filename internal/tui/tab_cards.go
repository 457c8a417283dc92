package tui

import (
	"fmt"
	"strings"
	"time"

	"flowcast/internal/cli"
	"flowcast/internal/tui/components"
	"flowcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCardsTab(cw int) string {
	t := theme.Active
	cards := a.entities.CreditCards

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if len(cards) == 0 {
		body := mutedStyle.Render("No credit cards. Add one:") + "\n" +
			mutedStyle.Render("  flowcast card add <name> <statement-balance>")
		return components.ContentCard("Credit Cards", body, cw)
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	amtStyle := lipgloss.NewStyle().Foreground(t.Red)
	dueStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	innerW := components.CardInnerWidth(cw)
	nameW := innerW - 42
	if nameW < 12 {
		nameW = 12
	}

	var total int64
	var b strings.Builder
	for i, c := range cards {
		total += c.StatementBalance

		marker := "  "
		ns := nameStyle
		if i == a.cardsCursor {
			marker = markerStyle.Render("▸ ")
			ns = selectedStyle
		}

		owner := ""
		if c.Owner != "" {
			owner = dueStyle.Render("  " + c.Owner)
		}

		fmt.Fprintf(&b, "%s%s %s  %s%s\n",
			marker,
			ns.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Name, nameW))),
			amtStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(c.StatementBalance))),
			dueStyle.Render("due the "+cli.FormatOrdinal(c.DueDay)),
			owner)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s",
		mutedStyle.Render("Total statement debt:"),
		amtStyle.Render(cli.FormatMoney(total)))

	out := components.ContentCard("Credit Cards", b.String(), cw)

	// Known future statements override the rolling statement balance for
	// their month.
	if overrides := a.renderFutureStatements(); overrides != "" {
		out += "\n" + components.ContentCard("Future Statements", overrides, cw)
	}

	return out
}

func (a App) renderFutureStatements() string {
	t := theme.Active
	statements := a.entities.FutureStatements
	if len(statements) == 0 {
		return ""
	}

	cardNames := make(map[string]string, len(a.entities.CreditCards))
	for _, c := range a.entities.CreditCards {
		cardNames[c.ID] = c.Name
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	monthStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amtStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	for _, fs := range statements {
		name := cardNames[fs.CardID]
		if name == "" {
			name = fs.CardID
		}
		month := time.Month(fs.TargetMonth).String()
		fmt.Fprintf(&b, "%s  %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-20s", truncStr(name, 20))),
			monthStyle.Render(fmt.Sprintf("%s %d", month[:3], fs.TargetYear)),
			amtStyle.Render(cli.FormatMoney(fs.Amount)))
	}
	return b.String()
}
