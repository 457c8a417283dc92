// Package cmd implements the flowcast CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"flowcast/internal/cli"
	"flowcast/internal/config"
	"flowcast/internal/forecast"
	"flowcast/internal/model"
	"flowcast/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagHorizon int
	flagDBPath  string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "flowcast",
	Short: "Household cashflow forecaster",
	Long:  "Project your account balances day by day from recurring income, bills, and card dues.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagHorizon, "horizon", "n", 0, "Projection horizon in days (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagDBPath, "db", "d", "", "Database path (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress hints and secondary output")
}

// openStore loads the config and opens the database. The caller closes it.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	cli.SetCurrency(cfg.Forecast.Currency)

	path := flagDBPath
	if path == "" {
		path = cfg.DBPath()
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, cfg, err
	}
	return s, cfg, nil
}

func horizonDays(cfg config.Config) int {
	if flagHorizon > 0 {
		return flagHorizon
	}
	if cfg.General.HorizonDays > 0 {
		return cfg.General.HorizonDays
	}
	return 30
}

// runProjection is the shared load-and-project path used by the read commands.
func runProjection() (*forecast.Result, model.EntitySet, error) {
	s, cfg, err := openStore()
	if err != nil {
		return nil, model.EntitySet{}, err
	}
	defer func() { _ = s.Close() }()

	entities, err := s.LoadEntities()
	if err != nil {
		return nil, entities, err
	}

	result, err := forecast.Run(entities, time.Now(), horizonDays(cfg), forecast.Options{
		StaleAfter: cfg.StaleAfter(),
	})
	if err != nil {
		return nil, entities, err
	}
	return result, entities, nil
}

func runSummary(_ *cobra.Command, _ []string) error {
	result, entities, err := runProjection()
	if err != nil {
		return err
	}

	if entities.Empty() {
		fmt.Println("\n  No data yet. Run `flowcast setup` to add your first account.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASHFLOW  Next %dd", result.HorizonDays)))
	fmt.Println()

	if !result.Starting.HasReliableBase {
		fmt.Println("  No checking or savings account has a confirmed balance.")
		fmt.Println("  Run `flowcast accounts balance <id> <amount>` to confirm one.")
		return nil
	}

	start := result.Starting
	optLabel := "Optimistic"
	pessLabel := "Pessimistic"
	if start.EstimatedOptimistic {
		optLabel += " (est)"
	}
	if start.EstimatedPessimistic {
		pessLabel += " (est)"
	}

	rows := [][]string{
		{"Starting balance", cli.FormatMoney(start.Optimistic)},
		{"Investments", cli.FormatMoney(start.Investments)},
		{"---"},
		{optLabel + " end", cli.FormatMoney(result.OptimisticSummary.EndBalance)},
		{pessLabel + " end", cli.FormatMoney(result.PessimisticSummary.EndBalance)},
		{"---"},
		{"Income", cli.FormatMoney(result.OptimisticSummary.TotalIncome)},
		{"Expenses", cli.FormatMoney(result.OptimisticSummary.TotalExpenses)},
		{"Net", cli.FormatMoneyDelta(result.OptimisticSummary.Surplus)},
	}
	if n := result.PessimisticSummary.DangerDays; n > 0 {
		rows = append(rows, []string{"---"},
			[]string{"Danger days", fmt.Sprintf("%d (pessimistic)", n)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	pess := make([]int64, len(result.Days))
	for i, d := range result.Days {
		pess[i] = d.Pessimistic
	}
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderSparkline(pess))
	if !flagQuiet {
		fmt.Println(cli.RenderMuted("  pessimistic balance, day by day"))
	}

	if len(start.StaleAccountIDs) > 0 && !flagQuiet {
		fmt.Println()
		fmt.Println(cli.RenderStale(fmt.Sprintf("  %d account balance(s) are stale; totals marked (est).", len(start.StaleAccountIDs))))
	}

	return nil
}
