package cmd

import (
	"fmt"
	"strings"

	"flowcast/internal/cli"
	"flowcast/internal/forecast"

	"github.com/spf13/cobra"
)

var flagForecastAll bool

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Day-by-day balance table",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().BoolVarP(&flagForecastAll, "all", "a", false, "Show every day, not just days with activity")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	result, entities, err := runProjection()
	if err != nil {
		return err
	}

	if entities.Empty() {
		fmt.Println("\n  No data yet. Run `flowcast setup` first.")
		return nil
	}
	if !result.Starting.HasReliableBase {
		fmt.Println("\n  No confirmed checking or savings balance to project from.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST  Next %dd", result.HorizonDays)))
	fmt.Println()

	rows := make([][]string, 0, len(result.Days))
	for i, d := range result.Days {
		if !flagForecastAll && i > 0 && len(d.Events) == 0 && !d.OptimisticDanger && !d.PessimisticDanger {
			continue
		}

		names := make([]string, 0, len(d.Events))
		for _, ev := range d.Events {
			names = append(names, ev.SourceName)
		}
		activity := strings.Join(names, ", ")
		if len(activity) > 36 {
			activity = activity[:33] + "..."
		}

		opt := cli.FormatMoney(d.Optimistic)
		pess := cli.FormatMoney(d.Pessimistic)
		if d.PessimisticDanger {
			pess += " !"
		}

		rows = append(rows, []string{
			cli.FormatDate(d.Date),
			activity,
			opt,
			pess,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Activity", "Optimistic", "Pessimistic"},
		Rows:    rows,
	}))

	if len(result.DangerRanges) > 0 {
		fmt.Println()
		for _, r := range result.DangerRanges {
			if r.Scenario == forecast.ScenarioBoth {
				continue
			}
			if r.Start.Equal(r.End) {
				fmt.Println(cli.RenderStale(fmt.Sprintf("  Below zero (%s): %s", r.Scenario, cli.FormatDate(r.Start))))
			} else {
				fmt.Println(cli.RenderStale(fmt.Sprintf("  Below zero (%s): %s to %s",
					r.Scenario, cli.FormatDate(r.Start), cli.FormatDate(r.End))))
			}
		}
	}

	return nil
}
