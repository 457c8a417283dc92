package cmd

import (
	"fmt"
	"time"

	"flowcast/internal/cli"
	"flowcast/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var flagExpenseDay int

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "List expenses",
	RunE:  runExpenseList,
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a monthly expense (amount in cents)",
	Args:  cobra.ExactArgs(2),
	RunE:  runExpenseAdd,
}

var expenseOnceCmd = &cobra.Command{
	Use:   "once <name> <amount> <date>",
	Short: "Add a one-off expense (date as YYYY-MM-DD)",
	Args:  cobra.ExactArgs(3),
	RunE:  runExpenseOnce,
}

var expensePauseCmd = &cobra.Command{
	Use:   "pause <id>",
	Short: "Exclude an expense from projections without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  func(c *cobra.Command, args []string) error { return setExpenseActive(args[0], false) },
}

var expenseResumeCmd = &cobra.Command{
	Use:   "resume <id>",
	Short: "Re-include a paused expense",
	Args:  cobra.ExactArgs(1),
	RunE:  func(c *cobra.Command, args []string) error { return setExpenseActive(args[0], true) },
}

var expenseRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseRemove,
}

func init() {
	expenseAddCmd.Flags().IntVar(&flagExpenseDay, "day", 1, "Due day of month (1-31, clamped to short months)")

	expenseCmd.AddCommand(expenseAddCmd)
	expenseCmd.AddCommand(expenseOnceCmd)
	expenseCmd.AddCommand(expensePauseCmd)
	expenseCmd.AddCommand(expenseResumeCmd)
	expenseCmd.AddCommand(expenseRemoveCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseList(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	fixed, err := s.FixedExpenses()
	if err != nil {
		return err
	}
	oneOffs, err := s.SingleExpenses()
	if err != nil {
		return err
	}
	if len(fixed) == 0 && len(oneOffs) == 0 {
		fmt.Println("\n  No expenses. Add one with `flowcast expense add`.")
		return nil
	}

	fmt.Println()
	if len(fixed) > 0 {
		var total int64
		rows := make([][]string, 0, len(fixed))
		for _, e := range fixed {
			status := "active"
			if !e.Active {
				status = "paused"
			} else {
				total += e.Amount
			}
			rows = append(rows, []string{
				e.Name,
				cli.FormatMoney(e.Amount),
				"the " + cli.FormatOrdinal(e.DueDay),
				status,
				e.ID,
			})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Monthly total", cli.FormatMoney(total), "", "", ""})
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Monthly",
			Headers: []string{"Name", "Amount", "Due", "Status", "ID"},
			Rows:    rows,
		}))
	}

	if len(oneOffs) > 0 {
		fmt.Println()
		rows := make([][]string, 0, len(oneOffs))
		for _, e := range oneOffs {
			rows = append(rows, []string{
				e.Name,
				cli.FormatMoney(e.Amount),
				cli.FormatDateLong(e.Date),
				e.ID,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "One-off",
			Headers: []string{"Name", "Amount", "Date", "ID"},
			Rows:    rows,
		}))
	}
	return nil
}

func runExpenseAdd(_ *cobra.Command, args []string) error {
	amount, err := parseCents(args[1])
	if err != nil {
		return err
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	e := model.FixedExpense{
		ID:     uuid.NewString(),
		Name:   args[0],
		Amount: amount,
		DueDay: flagExpenseDay,
		Active: true,
	}
	if err := s.SaveFixedExpense(e); err != nil {
		return err
	}

	fmt.Printf("  Added expense %q, %s due the %s\n",
		e.Name, cli.FormatMoney(amount), cli.FormatOrdinal(e.DueDay))
	return nil
}

func runExpenseOnce(_ *cobra.Command, args []string) error {
	amount, err := parseCents(args[1])
	if err != nil {
		return err
	}
	date, err := time.ParseInLocation("2006-01-02", args[2], time.UTC)
	if err != nil {
		return fmt.Errorf("date %q must be YYYY-MM-DD", args[2])
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	e := model.SingleShotExpense{
		ID:     uuid.NewString(),
		Name:   args[0],
		Amount: amount,
		Date:   date,
	}
	if err := s.SaveSingleExpense(e); err != nil {
		return err
	}

	fmt.Printf("  Added one-off expense %q on %s\n", e.Name, cli.FormatDateLong(date))
	return nil
}

func setExpenseActive(id string, active bool) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.SetFixedExpenseActive(id, active); err != nil {
		return err
	}
	if active {
		fmt.Println("  Expense resumed.")
	} else {
		fmt.Println("  Expense paused.")
	}
	return nil
}

func runExpenseRemove(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.DeleteFixedExpense(args[0]); err == nil {
		fmt.Println("  Expense removed.")
		return nil
	}
	if err := s.DeleteSingleExpense(args[0]); err != nil {
		return err
	}
	fmt.Println("  Expense removed.")
	return nil
}
