package cmd

import (
	"fmt"
	"strconv"
	"time"

	"flowcast/internal/cli"
	"flowcast/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagAccountType  string
	flagAccountOwner string
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts and balance freshness",
	RunE:  runAccounts,
}

var accountsAddCmd = &cobra.Command{
	Use:   "add <name> <balance>",
	Short: "Add an account with a confirmed balance (in cents)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountsAdd,
}

var accountsBalanceCmd = &cobra.Command{
	Use:   "balance <id> <balance>",
	Short: "Confirm an account balance (in cents)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountsBalance,
}

var accountsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsRemove,
}

func init() {
	accountsAddCmd.Flags().StringVarP(&flagAccountType, "type", "t", "checking", "Account type: checking, savings, investment")
	accountsAddCmd.Flags().StringVarP(&flagAccountOwner, "owner", "o", "", "Owner label for shared households")

	accountsCmd.AddCommand(accountsAddCmd)
	accountsCmd.AddCommand(accountsBalanceCmd)
	accountsCmd.AddCommand(accountsRemoveCmd)
	rootCmd.AddCommand(accountsCmd)
}

// parseCents parses a minor-unit amount, rejecting decimal input so nobody
// enters dollars where cents are expected.
func parseCents(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q must be a whole number of cents (e.g. 125000 for $1,250.00)", s)
	}
	return n, nil
}

func runAccounts(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	accounts, err := s.Accounts()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("\n  No accounts. Add one with `flowcast accounts add`.")
		return nil
	}

	now := time.Now()
	staleAfter := cfg.StaleAfter()

	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		confirmed := cli.FormatRelative(a.BalanceUpdatedAt, now)
		if a.BalanceUpdatedAt == nil || now.Sub(*a.BalanceUpdatedAt) > staleAfter {
			confirmed = cli.RenderStale(confirmed)
		}
		rows = append(rows, []string{
			a.Name,
			string(a.Type),
			cli.FormatMoney(a.Balance),
			confirmed,
			a.ID,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Account", "Type", "Balance", "Confirmed", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runAccountsAdd(_ *cobra.Command, args []string) error {
	balance, err := parseCents(args[1])
	if err != nil {
		return err
	}
	typ := model.AccountType(flagAccountType)
	if !typ.Valid() {
		return fmt.Errorf("unknown account type %q (checking, savings, investment)", flagAccountType)
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	now := time.Now()
	a := model.Account{
		ID:               uuid.NewString(),
		Name:             args[0],
		Type:             typ,
		Balance:          balance,
		BalanceUpdatedAt: &now,
		Owner:            flagAccountOwner,
	}
	if err := s.SaveAccount(a); err != nil {
		return err
	}

	fmt.Printf("  Added %s account %q with balance %s\n", typ, a.Name, cli.FormatMoney(balance))
	return nil
}

func runAccountsBalance(_ *cobra.Command, args []string) error {
	balance, err := parseCents(args[1])
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.UpdateBalance(args[0], balance, time.Now()); err != nil {
		return err
	}
	fmt.Printf("  Balance confirmed at %s\n", cli.FormatMoney(balance))
	return nil
}

func runAccountsRemove(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.DeleteAccount(args[0]); err != nil {
		return err
	}
	fmt.Println("  Account removed.")
	return nil
}
