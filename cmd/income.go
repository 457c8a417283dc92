package cmd

import (
	"fmt"
	"strings"
	"time"

	"flowcast/internal/cli"
	"flowcast/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagIncomeFreq      string
	flagIncomeCertainty string
	flagIncomeDay       int
	flagIncomeWeekday   string
	flagIncomeDays      []int
	flagIncomeDate      string
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "List income sources",
	RunE:  runIncomeList,
}

var incomeAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a recurring income (amount in cents)",
	Long: `Add a recurring income. The schedule shape follows the frequency:

  monthly        --day 15
  weekly         --weekday friday
  biweekly       --weekday friday
  twice-monthly  --days 1,15`,
	Args: cobra.ExactArgs(2),
	RunE: runIncomeAdd,
}

var incomeOnceCmd = &cobra.Command{
	Use:   "once <name> <amount> <date>",
	Short: "Add a one-off income (date as YYYY-MM-DD)",
	Args:  cobra.ExactArgs(3),
	RunE:  runIncomeOnce,
}

var incomePauseCmd = &cobra.Command{
	Use:   "pause <id>",
	Short: "Exclude an income from projections without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  func(c *cobra.Command, args []string) error { return setIncomeActive(args[0], false) },
}

var incomeResumeCmd = &cobra.Command{
	Use:   "resume <id>",
	Short: "Re-include a paused income",
	Args:  cobra.ExactArgs(1),
	RunE:  func(c *cobra.Command, args []string) error { return setIncomeActive(args[0], true) },
}

var incomeRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an income source",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncomeRemove,
}

func init() {
	incomeAddCmd.Flags().StringVarP(&flagIncomeFreq, "freq", "f", "monthly", "Frequency: weekly, biweekly, twice-monthly, monthly")
	incomeAddCmd.Flags().StringVarP(&flagIncomeCertainty, "certainty", "c", "guaranteed", "Certainty: guaranteed, probable, uncertain")
	incomeAddCmd.Flags().IntVar(&flagIncomeDay, "day", 1, "Day of month for monthly incomes")
	incomeAddCmd.Flags().StringVar(&flagIncomeWeekday, "weekday", "friday", "Weekday for weekly/biweekly incomes")
	incomeAddCmd.Flags().IntSliceVar(&flagIncomeDays, "days", []int{1, 15}, "Two days of month for twice-monthly incomes")

	incomeOnceCmd.Flags().StringVarP(&flagIncomeCertainty, "certainty", "c", "probable", "Certainty: guaranteed, probable, uncertain")

	incomeCmd.AddCommand(incomeAddCmd)
	incomeCmd.AddCommand(incomeOnceCmd)
	incomeCmd.AddCommand(incomePauseCmd)
	incomeCmd.AddCommand(incomeResumeCmd)
	incomeCmd.AddCommand(incomeRemoveCmd)
	rootCmd.AddCommand(incomeCmd)
}

func parseWeekday(s string) (time.Weekday, error) {
	days := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	if d, ok := days[strings.ToLower(s)]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func describeSchedule(in model.RecurringIncome) string {
	switch in.Schedule.Kind {
	case model.ScheduleDayOfMonth:
		return fmt.Sprintf("monthly on the %s", cli.FormatOrdinal(in.Schedule.DayOfMonth))
	case model.ScheduleDayOfWeek:
		return fmt.Sprintf("%s on %ss", in.Frequency, in.Schedule.Weekday)
	case model.ScheduleTwiceMonthly:
		return fmt.Sprintf("the %s and %s",
			cli.FormatOrdinal(in.Schedule.FirstDay), cli.FormatOrdinal(in.Schedule.SecondDay))
	}
	return string(in.Frequency)
}

func runIncomeList(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	recurring, err := s.RecurringIncomes()
	if err != nil {
		return err
	}
	oneOffs, err := s.SingleIncomes()
	if err != nil {
		return err
	}
	if len(recurring) == 0 && len(oneOffs) == 0 {
		fmt.Println("\n  No income sources. Add one with `flowcast income add`.")
		return nil
	}

	fmt.Println()
	if len(recurring) > 0 {
		rows := make([][]string, 0, len(recurring))
		for _, in := range recurring {
			status := string(in.Certainty)
			if !in.Active {
				status = "paused"
			}
			rows = append(rows, []string{
				in.Name,
				cli.FormatMoney(in.Amount),
				describeSchedule(in),
				status,
				in.ID,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recurring",
			Headers: []string{"Name", "Amount", "Schedule", "Status", "ID"},
			Rows:    rows,
		}))
	}

	if len(oneOffs) > 0 {
		fmt.Println()
		rows := make([][]string, 0, len(oneOffs))
		for _, in := range oneOffs {
			rows = append(rows, []string{
				in.Name,
				cli.FormatMoney(in.Amount),
				cli.FormatDateLong(in.Date),
				string(in.Certainty),
				in.ID,
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "One-off",
			Headers: []string{"Name", "Amount", "Date", "Certainty", "ID"},
			Rows:    rows,
		}))
	}
	return nil
}

func runIncomeAdd(_ *cobra.Command, args []string) error {
	amount, err := parseCents(args[1])
	if err != nil {
		return err
	}

	freq := model.Frequency(flagIncomeFreq)
	if !freq.Valid() {
		return fmt.Errorf("unknown frequency %q", flagIncomeFreq)
	}

	var schedule model.PaymentSchedule
	switch freq {
	case model.FreqMonthly:
		schedule = model.DayOfMonthSchedule(flagIncomeDay)
	case model.FreqWeekly, model.FreqBiweekly:
		wd, err := parseWeekday(flagIncomeWeekday)
		if err != nil {
			return err
		}
		schedule = model.DayOfWeekSchedule(wd)
	case model.FreqTwiceMonthly:
		if len(flagIncomeDays) != 2 {
			return fmt.Errorf("--days needs exactly two days, got %v", flagIncomeDays)
		}
		schedule = model.TwiceMonthlySchedule(flagIncomeDays[0], flagIncomeDays[1])
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	in := model.RecurringIncome{
		ID:        uuid.NewString(),
		Name:      args[0],
		Amount:    amount,
		Frequency: freq,
		Schedule:  schedule,
		Certainty: model.Certainty(flagIncomeCertainty),
		Active:    true,
	}
	if err := s.SaveRecurringIncome(in); err != nil {
		return err
	}

	fmt.Printf("  Added %s income %q, %s\n", in.Certainty, in.Name, describeSchedule(in))
	return nil
}

func runIncomeOnce(_ *cobra.Command, args []string) error {
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

	in := model.SingleShotIncome{
		ID:        uuid.NewString(),
		Name:      args[0],
		Amount:    amount,
		Date:      date,
		Certainty: model.Certainty(flagIncomeCertainty),
	}
	if err := s.SaveSingleIncome(in); err != nil {
		return err
	}

	fmt.Printf("  Added one-off income %q on %s\n", in.Name, cli.FormatDateLong(date))
	return nil
}

func setIncomeActive(id string, active bool) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.SetRecurringIncomeActive(id, active); err != nil {
		return err
	}
	if active {
		fmt.Println("  Income resumed.")
	} else {
		fmt.Println("  Income paused.")
	}
	return nil
}

func runIncomeRemove(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	// Try both kinds so the user does not need to know which list it is in.
	if err := s.DeleteRecurringIncome(args[0]); err == nil {
		fmt.Println("  Income removed.")
		return nil
	}
	if err := s.DeleteSingleIncome(args[0]); err != nil {
		return err
	}
	fmt.Println("  Income removed.")
	return nil
}
