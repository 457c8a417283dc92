package forecast

import (
	"fmt"
	"testing"
	"time"

	"flowcast/internal/model"
)

// benchEntities builds a ledger with n recurring incomes and n fixed
// expenses, a busy but realistic household shape.
func benchEntities(n int) model.EntitySet {
	now := time.Date(2025, time.May, 31, 14, 30, 0, 0, time.UTC)

	var ents model.EntitySet
	ents.Accounts = []model.Account{
		{ID: "acct", Name: "Checking", Type: model.AccountChecking, Balance: 500_000, BalanceUpdatedAt: &now},
	}
	for i := 0; i < n; i++ {
		ents.RecurringIncomes = append(ents.RecurringIncomes, model.RecurringIncome{
			ID:        fmt.Sprintf("in-%d", i),
			Name:      fmt.Sprintf("Income %d", i),
			Amount:    100_000,
			Frequency: model.FreqBiweekly,
			Schedule:  model.DayOfWeekSchedule(time.Weekday(i % 7)),
			Certainty: model.CertaintyGuaranteed,
			Active:    true,
		})
		ents.FixedExpenses = append(ents.FixedExpenses, model.FixedExpense{
			ID:     fmt.Sprintf("ex-%d", i),
			Name:   fmt.Sprintf("Expense %d", i),
			Amount: 20_000,
			DueDay: i%28 + 1,
			Active: true,
		})
	}
	return ents
}

func BenchmarkRun30Days(b *testing.B) {
	ents := benchEntities(20)
	now := time.Date(2025, time.May, 31, 14, 30, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(ents, now, 30, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRun90Days(b *testing.B) {
	ents := benchEntities(20)
	now := time.Date(2025, time.May, 31, 14, 30, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(ents, now, 90, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMaterialize(b *testing.B) {
	ents := benchEntities(50)
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 90)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Materialize(ents, start, end); err != nil {
			b.Fatal(err)
		}
	}
}
