package cmd

import (
	"fmt"

	"flowcast/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Horizon days: %d\n", cfg.General.HorizonDays)
	fmt.Printf("    Database:     %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [Forecast]")
	fmt.Printf("    Stale after:  %s\n", cfg.StaleAfter())
	fmt.Printf("    Currency:     %s\n", cfg.Forecast.Currency)
	fmt.Println()

	fmt.Println("  [Daemon]")
	if cfg.Daemon.ListenAddr != "" {
		fmt.Printf("    Listen addr:  %s\n", cfg.Daemon.ListenAddr)
	}
	fmt.Printf("    Poll every:   %ds\n", cfg.Daemon.PollInterval)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `flowcast setup` to reconfigure.")
	return nil
}
