package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"flowcast/internal/cli"
	"flowcast/internal/config"
	"flowcast/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to flowcast!")
	fmt.Println()

	// 1. Default horizon
	fmt.Println("  1. Default projection horizon")
	fmt.Println("     (1) 7 days")
	fmt.Println("     (2) 14 days")
	fmt.Println("     (3) 30 days [default]")
	fmt.Println("     (4) 60 days")
	fmt.Println("     (5) 90 days")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.General.HorizonDays = 7
	case "2":
		cfg.General.HorizonDays = 14
	case "4":
		cfg.General.HorizonDays = 60
	case "5":
		cfg.General.HorizonDays = 90
	default:
		cfg.General.HorizonDays = 30
	}
	fmt.Println()

	// 2. Theme
	fmt.Println("  2. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	// 3. First account, so the projection has a base to anchor on.
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	accounts, err := s.Accounts()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("  3. Your first account")
		fmt.Print("     Name [Checking]: ")
		name, _ := reader.ReadString('\n')
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Checking"
		}

		fmt.Print("     Current balance in cents (e.g. 125000 for $1,250.00): ")
		balStr, _ := reader.ReadString('\n')
		balance, err := parseCents(strings.TrimSpace(balStr))
		if err != nil {
			return err
		}

		now := time.Now()
		a := model.Account{
			ID:               uuid.NewString(),
			Name:             name,
			Type:             model.AccountChecking,
			Balance:          balance,
			BalanceUpdatedAt: &now,
		}
		if err := s.SaveAccount(a); err != nil {
			return err
		}
		fmt.Printf("     Added %q with balance %s\n", name, cli.FormatMoney(balance))
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `flowcast setup` anytime to reconfigure, or `flowcast tui` for the dashboard.")
	fmt.Println()

	return nil
}
