package cmd

import (
	"fmt"
	"strconv"

	"flowcast/internal/cli"
	"flowcast/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagCardDueDay int
	flagCardOwner  string
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "List credit cards and upcoming statements",
	RunE:  runCardList,
}

var cardAddCmd = &cobra.Command{
	Use:   "add <name> <statement-balance>",
	Short: "Add a credit card (statement balance in cents)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCardAdd,
}

var cardStatementCmd = &cobra.Command{
	Use:   "statement <card-id> <amount> <month> <year>",
	Short: "Set a known future statement for one month",
	Long: `Record a future statement amount when you already know it, e.g. a large
purchase that will land on next month's bill. Only months with a recorded
amount are projected beyond the current cycle; entering the same month
again replaces the earlier amount.`,
	Args: cobra.ExactArgs(4),
	RunE: runCardStatement,
}

var cardBalanceCmd = &cobra.Command{
	Use:   "balance <id> <statement-balance>",
	Short: "Update a card's current statement balance",
	Args:  cobra.ExactArgs(2),
	RunE:  runCardBalance,
}

var cardRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a card (or a future statement by its ID)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCardRemove,
}

func init() {
	cardAddCmd.Flags().IntVar(&flagCardDueDay, "day", 1, "Payment due day of month (1-31)")
	cardAddCmd.Flags().StringVarP(&flagCardOwner, "owner", "o", "", "Owner label for shared households")

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardStatementCmd)
	cardCmd.AddCommand(cardBalanceCmd)
	cardCmd.AddCommand(cardRemoveCmd)
	rootCmd.AddCommand(cardCmd)
}

func runCardList(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	cards, err := s.CreditCards()
	if err != nil {
		return err
	}
	statements, err := s.FutureStatements()
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Println("\n  No cards. Add one with `flowcast card add`.")
		return nil
	}

	cardNames := make(map[string]string, len(cards))
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		cardNames[c.ID] = c.Name
		rows = append(rows, []string{
			c.Name,
			cli.FormatMoney(c.StatementBalance),
			"the " + cli.FormatOrdinal(c.DueDay),
			c.Owner,
			c.ID,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Cards",
		Headers: []string{"Card", "Statement", "Due", "Owner", "ID"},
		Rows:    rows,
	}))

	if len(statements) > 0 {
		fmt.Println()
		rows := make([][]string, 0, len(statements))
		for _, fs := range statements {
			name := cardNames[fs.CardID]
			if name == "" {
				name = fs.CardID
			}
			rows = append(rows, []string{
				name,
				cli.FormatMoney(fs.Amount),
				fmt.Sprintf("%d-%02d", fs.TargetYear, fs.TargetMonth),
				fs.ID,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Future statements",
			Headers: []string{"Card", "Amount", "Month", "ID"},
			Rows:    rows,
		}))
	}
	return nil
}

func runCardAdd(_ *cobra.Command, args []string) error {
	balance, err := parseCents(args[1])
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	c := model.CreditCard{
		ID:               uuid.NewString(),
		Name:             args[0],
		StatementBalance: balance,
		DueDay:           flagCardDueDay,
		Owner:            flagCardOwner,
	}
	if err := s.SaveCreditCard(c); err != nil {
		return err
	}

	fmt.Printf("  Added card %q, %s due the %s\n",
		c.Name, cli.FormatMoney(balance), cli.FormatOrdinal(c.DueDay))
	return nil
}

func runCardStatement(_ *cobra.Command, args []string) error {
	amount, err := parseCents(args[1])
	if err != nil {
		return err
	}
	month, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("month %q must be 1-12", args[2])
	}
	year, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("year %q must be a number", args[3])
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	fs := model.FutureStatement{
		ID:          uuid.NewString(),
		CardID:      args[0],
		Amount:      amount,
		TargetMonth: month,
		TargetYear:  year,
	}
	if err := s.SaveFutureStatement(fs); err != nil {
		return err
	}

	fmt.Printf("  Statement for %d-%02d set to %s\n", year, month, cli.FormatMoney(amount))
	return nil
}

func runCardBalance(_ *cobra.Command, args []string) error {
	balance, err := parseCents(args[1])
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	cards, err := s.CreditCards()
	if err != nil {
		return err
	}
	for _, c := range cards {
		if c.ID == args[0] {
			c.StatementBalance = balance
			if err := s.SaveCreditCard(c); err != nil {
				return err
			}
			fmt.Printf("  Statement balance set to %s\n", cli.FormatMoney(balance))
			return nil
		}
	}
	return fmt.Errorf("no card with ID %s", args[0])
}

func runCardRemove(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.DeleteCreditCard(args[0]); err == nil {
		fmt.Println("  Card removed.")
		return nil
	}
	if err := s.DeleteFutureStatement(args[0]); err != nil {
		return err
	}
	fmt.Println("  Future statement removed.")
	return nil
}
