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

func (a App) renderAccountsTab(cw int) string {
	t := theme.Active
	accounts := a.entities.Accounts

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if len(accounts) == 0 {
		body := mutedStyle.Render("No accounts yet. Add one:") + "\n" +
			mutedStyle.Render("  flowcast accounts add <name> <balance>")
		return components.ContentCard("Accounts", body, cw)
	}

	now := time.Now().UTC()
	staleAfter := a.cfg.StaleAfter()

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	typeStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	freshStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	staleStyle := lipgloss.NewStyle().Foreground(t.Orange)

	innerW := components.CardInnerWidth(cw)
	nameW := innerW - 48
	if nameW < 12 {
		nameW = 12
	}

	var spendable, investments int64
	var b strings.Builder
	for i, acct := range accounts {
		if acct.Type.Spendable() {
			spendable += acct.Balance
		} else {
			investments += acct.Balance
		}

		marker := "  "
		ns := nameStyle
		if i == a.accountsCursor {
			marker = markerStyle.Render("▸ ")
			ns = selectedStyle
		}

		confirmed := cli.FormatRelative(acct.BalanceUpdatedAt, now)
		cs := freshStyle
		if acct.BalanceUpdatedAt == nil || now.Sub(*acct.BalanceUpdatedAt) > staleAfter {
			cs = staleStyle
		}

		balStyle := lipgloss.NewStyle().Foreground(t.Green)
		if acct.Balance < 0 {
			balStyle = lipgloss.NewStyle().Foreground(t.Red)
		}

		fmt.Fprintf(&b, "%s%s %s %s  %s\n",
			marker,
			ns.Render(fmt.Sprintf("%-*s", nameW, truncStr(acct.Name, nameW))),
			typeStyle.Render(fmt.Sprintf("%-10s", acct.Type)),
			balStyle.Render(fmt.Sprintf("%14s", cli.FormatMoney(acct.Balance))),
			cs.Render(confirmed))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s",
		mutedStyle.Render("Spendable:"),
		cli.RenderBalance(spendable))
	if investments != 0 {
		fmt.Fprintf(&b, "   %s %s",
			mutedStyle.Render("Investments:"),
			cli.RenderBalance(investments))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  Stale balances are excluded from the projection base."))

	return components.ContentCard("Accounts", b.String(), cw)
}
