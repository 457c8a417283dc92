package forecast

import (
	"reflect"
	"testing"
	"time"

	"flowcast/internal/model"
)

func TestRun_MonthOfPaychecksAndRent(t *testing.T) {
	// Saturday. The first Thursday payday lands on day 5.
	now := time.Date(2025, time.May, 31, 14, 30, 0, 0, time.UTC)
	updated := now.Add(-2 * time.Hour)

	entities := model.EntitySet{
		Accounts: []model.Account{
			{ID: "chk", Name: "Checking", Type: model.AccountChecking, Balance: 100_000, BalanceUpdatedAt: &updated},
		},
		RecurringIncomes: []model.RecurringIncome{
			{
				ID: "pay", Name: "Paycheck", Amount: 50_000,
				Frequency: model.FreqBiweekly,
				Schedule:  model.DayOfWeekSchedule(time.Thursday),
				Certainty: model.CertaintyGuaranteed,
				Active:    true,
			},
		},
		FixedExpenses: []model.FixedExpense{
			{ID: "rent", Name: "Rent", Amount: 30_000, DueDay: 10, Active: true},
		},
	}

	result, err := Run(entities, now, 30, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Days) != 31 {
		t.Fatalf("got %d days, want 31", len(result.Days))
	}
	if !result.Starting.HasReliableBase {
		t.Fatal("fresh checking balance should give a reliable base")
	}

	wantAt := func(day int, balance int64) {
		t.Helper()
		d := result.Days[day]
		if d.Optimistic != balance || d.Pessimistic != balance {
			t.Errorf("day %d (%s): opt=%d pess=%d, want both %d",
				day, d.Date.Format("Jan 02"), d.Optimistic, d.Pessimistic, balance)
		}
	}

	wantAt(0, 100_000)  // May 31, no events
	wantAt(4, 100_000)  // Jun 4, still pre-payday
	wantAt(5, 150_000)  // Jun 5, first Thursday paycheck
	wantAt(9, 150_000)
	wantAt(10, 120_000) // Jun 10, rent
	wantAt(18, 120_000)
	wantAt(19, 170_000) // Jun 19, second biweekly paycheck
	wantAt(30, 170_000)

	if s := result.OptimisticSummary; s.TotalIncome != 100_000 || s.TotalExpenses != 30_000 || s.Surplus != 70_000 {
		t.Errorf("summary = +%d/-%d surplus %d, want +100000/-30000 surplus 70000",
			s.TotalIncome, s.TotalExpenses, s.Surplus)
	}
	if s := result.OptimisticSummary; s.DangerDays != 0 {
		t.Errorf("got %d danger days, want 0", s.DangerDays)
	}
	if len(result.DangerRanges) != 0 {
		t.Errorf("got danger ranges %+v, want none", result.DangerRanges)
	}
	if len(result.ChartPoints) != 31 {
		t.Errorf("got %d chart points, want 31", len(result.ChartPoints))
	}
}

func TestRun_NoReliableBase(t *testing.T) {
	now := time.Date(2025, time.May, 31, 9, 0, 0, 0, time.UTC)
	entities := model.EntitySet{
		Accounts: []model.Account{
			{ID: "chk", Name: "Checking", Type: model.AccountChecking, Balance: 50_000}, // never updated
		},
		RecurringIncomes: []model.RecurringIncome{
			{
				ID: "pay", Name: "Paycheck", Amount: 50_000,
				Frequency: model.FreqMonthly,
				Schedule:  model.DayOfMonthSchedule(1),
				Certainty: model.CertaintyGuaranteed,
				Active:    true,
			},
		},
	}

	result, err := Run(entities, now, 30, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Starting.HasReliableBase {
		t.Fatal("never-updated account must not count as a reliable base")
	}
	if len(result.Days) != 0 || len(result.ChartPoints) != 0 {
		t.Errorf("no-data result should carry no projection, got %d days, %d points",
			len(result.Days), len(result.ChartPoints))
	}
}

func TestRun_InvalidHorizon(t *testing.T) {
	if _, err := Run(model.EntitySet{}, time.Now(), 0, Options{}); err != ErrInvalidHorizon {
		t.Errorf("horizon 0: err = %v, want ErrInvalidHorizon", err)
	}
	if _, err := Run(model.EntitySet{}, time.Now(), -7, Options{}); err != ErrInvalidHorizon {
		t.Errorf("horizon -7: err = %v, want ErrInvalidHorizon", err)
	}
}

func TestRun_Deterministic(t *testing.T) {
	now := time.Date(2025, time.May, 31, 8, 0, 0, 0, time.UTC)
	updated := now.Add(-time.Hour)
	entities := model.EntitySet{
		Accounts: []model.Account{
			{ID: "chk", Type: model.AccountChecking, Balance: 42_000, BalanceUpdatedAt: &updated},
		},
		RecurringIncomes: []model.RecurringIncome{
			{
				ID: "pay", Amount: 25_000,
				Frequency: model.FreqTwiceMonthly,
				Schedule:  model.TwiceMonthlySchedule(1, 15),
				Certainty: model.CertaintyProbable,
				Active:    true,
			},
		},
		FixedExpenses: []model.FixedExpense{
			{ID: "rent", Amount: 60_000, DueDay: 1, Active: true},
		},
	}

	a, err := Run(entities, now, 60, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(entities, now, 60, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}

func TestRun_InvalidScheduleSurfaces(t *testing.T) {
	now := time.Date(2025, time.May, 31, 8, 0, 0, 0, time.UTC)
	updated := now
	entities := model.EntitySet{
		Accounts: []model.Account{
			{ID: "chk", Type: model.AccountChecking, Balance: 1, BalanceUpdatedAt: &updated},
		},
		RecurringIncomes: []model.RecurringIncome{
			{
				ID: "bad", Amount: 100,
				Frequency: model.FreqWeekly,
				Schedule:  model.DayOfMonthSchedule(5), // shape mismatch
				Certainty: model.CertaintyGuaranteed,
				Active:    true,
			},
		},
	}

	if _, err := Run(entities, now, 30, Options{}); err == nil {
		t.Fatal("mismatched schedule shape should fail the run")
	}
}
