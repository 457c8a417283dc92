package tui

import (
	"fmt"
	"strings"

	"flowcast/internal/cli"
	"flowcast/internal/forecast"
	"flowcast/internal/tui/components"
	"flowcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderForecastTab(cw int) string {
	t := theme.Active

	if a.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		return components.ContentCard("Forecast", errStyle.Render(a.loadErr.Error()), cw)
	}

	r := a.result
	if r == nil {
		return ""
	}

	if !r.Starting.HasReliableBase {
		mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange)

		var body strings.Builder
		body.WriteString(warnStyle.Render("No confirmed balance to project from."))
		body.WriteString("\n\n")
		body.WriteString(mutedStyle.Render("Confirm at least one checking or savings balance:"))
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render("  flowcast accounts balance <id> <amount>"))
		return components.ContentCard("Forecast", body.String(), cw)
	}

	var b strings.Builder

	// Row 1: Metric cards
	optDetail := cli.FormatMoneyDelta(r.OptimisticSummary.Surplus) + " over horizon"
	if r.Starting.EstimatedOptimistic {
		optDetail += " (est)"
	}
	pessDetail := cli.FormatMoneyDelta(r.PessimisticSummary.Surplus) + " over horizon"
	if r.Starting.EstimatedPessimistic {
		pessDetail += " (est)"
	}

	dangerDetail := "clear horizon"
	if r.PessimisticSummary.DangerDays > 0 {
		dangerDetail = "pessimistic overdraft"
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Optimistic end", cli.FormatMoney(r.OptimisticSummary.EndBalance), optDetail},
		{"Pessimistic end", cli.FormatMoney(r.PessimisticSummary.EndBalance), pessDetail},
		{"Income", cli.FormatMoney(r.OptimisticSummary.TotalIncome), "expected over horizon"},
		{"Expenses", cli.FormatMoney(r.OptimisticSummary.TotalExpenses), "due over horizon"},
		{"Danger days", fmt.Sprintf("%d", r.PessimisticSummary.DangerDays), dangerDetail},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Pessimistic balance chart
	if len(r.ChartPoints) > 0 {
		chartVals := make([]int64, len(r.ChartPoints))
		for i, p := range r.ChartPoints {
			chartVals[i] = p.Pessimistic
		}
		chartH := 10
		if a.isCompactLayout() {
			chartH = 8
		}
		chartInnerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Pessimistic Balance (%dd)", r.HorizonDays),
			components.BalanceChart(chartVals, chartDateLabels(r.ChartPoints), chartInnerW, chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Danger windows + Upcoming events
	halves := components.LayoutRow(cw, 2)
	dangerCard := components.ContentCard("Danger Windows", a.renderDangerRanges(), halves[0])
	eventsCard := components.ContentCard("Upcoming", a.renderUpcomingEvents(components.CardInnerWidth(halves[1])), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Danger Windows", a.renderDangerRanges(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Upcoming", a.renderUpcomingEvents(components.CardInnerWidth(cw)), cw))
	} else {
		b.WriteString(components.CardRow([]string{dangerCard, eventsCard}))
	}

	return b.String()
}

func (a App) renderDangerRanges() string {
	t := theme.Active
	r := a.result

	if len(r.DangerRanges) == 0 {
		return lipgloss.NewStyle().Foreground(t.Green).Render("No overdraft projected.")
	}

	bothStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	pessStyle := lipgloss.NewStyle().Foreground(t.Orange)
	optStyle := lipgloss.NewStyle().Foreground(t.Yellow)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	for _, dr := range r.DangerRanges {
		span := cli.FormatDate(dr.Start)
		if !dr.End.Equal(dr.Start) {
			span += " to " + cli.FormatDate(dr.End)
		}

		var tag string
		switch dr.Scenario {
		case forecast.ScenarioBoth:
			tag = bothStyle.Render("both scenarios")
		case forecast.ScenarioPessimistic:
			tag = pessStyle.Render("pessimistic")
		default:
			tag = optStyle.Render("optimistic")
		}

		fmt.Fprintf(&b, "%s  %s\n", dateStyle.Render(span), tag)
	}
	return b.String()
}

func (a App) renderUpcomingEvents(innerW int) string {
	t := theme.Active
	r := a.result

	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	inStyle := lipgloss.NewStyle().Foreground(t.Green)
	outStyle := lipgloss.NewStyle().Foreground(t.Red)

	const maxRows = 12
	nameW := innerW - 28
	if nameW < 8 {
		nameW = 8
	}

	var b strings.Builder
	rows := 0
	for _, day := range r.Days {
		for _, ev := range day.Events {
			if rows >= maxRows {
				b.WriteString(dateStyle.Render("…"))
				return b.String()
			}
			amtStyle := inStyle
			if ev.Amount < 0 {
				amtStyle = outStyle
			}
			fmt.Fprintf(&b, "%s  %s %s\n",
				dateStyle.Render(cli.FormatDate(day.Date)),
				nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(ev.SourceName, nameW))),
				amtStyle.Render(cli.FormatMoneyDelta(ev.Amount)))
			rows++
		}
	}
	if rows == 0 {
		return dateStyle.Render("No scheduled activity in this horizon.")
	}
	return b.String()
}
