package tui

import (
	"fmt"
	"strings"

	"flowcast/internal/cli"
	"flowcast/internal/model"
	"flowcast/internal/tui/components"
	"flowcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetTab(cw int) string {
	var b strings.Builder

	halves := components.LayoutRow(cw, 2)
	incomeCard := components.ContentCard("Income",
		a.renderIncomes(components.CardInnerWidth(halves[0])), halves[0])
	expenseCard := components.ContentCard("Fixed Expenses",
		a.renderExpenses(components.CardInnerWidth(halves[1])), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Income",
			a.renderIncomes(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Fixed Expenses",
			a.renderExpenses(components.CardInnerWidth(cw)), cw))
	} else {
		b.WriteString(components.CardRow([]string{incomeCard, expenseCard}))
	}

	return b.String()
}

func (a App) renderIncomes(innerW int) string {
	t := theme.Active
	recurring := a.entities.RecurringIncomes
	oneOffs := a.entities.SingleIncomes

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if len(recurring) == 0 && len(oneOffs) == 0 {
		return mutedStyle.Render("No income sources. Add one:") + "\n" +
			mutedStyle.Render("  flowcast income add <name> <amount>")
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	pausedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Strikethrough(true)
	amtStyle := lipgloss.NewStyle().Foreground(t.Green)
	schedStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	nameW := innerW - 36
	if nameW < 10 {
		nameW = 10
	}

	var b strings.Builder
	for _, in := range recurring {
		ns := nameStyle
		if !in.Active {
			ns = pausedStyle
		}
		fmt.Fprintf(&b, "%s %s  %s %s\n",
			ns.Render(fmt.Sprintf("%-*s", nameW, truncStr(in.Name, nameW))),
			amtStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(in.Amount))),
			schedStyle.Render(scheduleLabel(in)),
			certaintyBadge(in.Certainty))
	}
	for _, in := range oneOffs {
		fmt.Fprintf(&b, "%s %s  %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(in.Name, nameW))),
			amtStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(in.Amount))),
			schedStyle.Render(cli.FormatDate(in.Date)),
			certaintyBadge(in.Certainty))
	}
	return b.String()
}

func (a App) renderExpenses(innerW int) string {
	t := theme.Active
	fixed := a.entities.FixedExpenses
	oneOffs := a.entities.SingleExpenses

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if len(fixed) == 0 && len(oneOffs) == 0 {
		return mutedStyle.Render("No expenses. Add one:") + "\n" +
			mutedStyle.Render("  flowcast expense add <name> <amount>")
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	pausedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Strikethrough(true)
	amtStyle := lipgloss.NewStyle().Foreground(t.Red)
	schedStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	nameW := innerW - 32
	if nameW < 10 {
		nameW = 10
	}

	var monthly int64
	var b strings.Builder
	for _, ex := range fixed {
		ns := nameStyle
		if !ex.Active {
			ns = pausedStyle
		} else {
			monthly += ex.Amount
		}
		fmt.Fprintf(&b, "%s %s  %s\n",
			ns.Render(fmt.Sprintf("%-*s", nameW, truncStr(ex.Name, nameW))),
			amtStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(ex.Amount))),
			schedStyle.Render("due the "+cli.FormatOrdinal(ex.DueDay)))
	}
	for _, ex := range oneOffs {
		fmt.Fprintf(&b, "%s %s  %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(ex.Name, nameW))),
			amtStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(ex.Amount))),
			schedStyle.Render(cli.FormatDate(ex.Date)))
	}

	if monthly > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s",
			mutedStyle.Render("Monthly fixed total:"),
			amtStyle.Render(cli.FormatMoney(monthly)))
	}
	return b.String()
}

// scheduleLabel renders a short human description of a recurring schedule.
func scheduleLabel(in model.RecurringIncome) string {
	switch in.Schedule.Kind {
	case model.ScheduleDayOfMonth:
		return "the " + cli.FormatOrdinal(in.Schedule.DayOfMonth)
	case model.ScheduleDayOfWeek:
		if in.Frequency == model.FreqBiweekly {
			return fmt.Sprintf("every other %s", in.Schedule.Weekday)
		}
		return fmt.Sprintf("%ss", in.Schedule.Weekday)
	case model.ScheduleTwiceMonthly:
		return fmt.Sprintf("%s & %s",
			cli.FormatOrdinal(in.Schedule.FirstDay), cli.FormatOrdinal(in.Schedule.SecondDay))
	}
	return string(in.Frequency)
}

// certaintyBadge colors the certainty tier: guaranteed green, probable
// yellow, uncertain dim.
func certaintyBadge(c model.Certainty) string {
	t := theme.Active
	switch c {
	case model.CertaintyGuaranteed:
		return lipgloss.NewStyle().Foreground(t.Green).Render("●")
	case model.CertaintyProbable:
		return lipgloss.NewStyle().Foreground(t.Yellow).Render("◐")
	default:
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("○")
	}
}
