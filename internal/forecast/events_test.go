package forecast

import (
	"testing"
	"time"

	"flowcast/internal/model"
)

func TestMaterialize_ScenarioMask(t *testing.T) {
	entities := model.EntitySet{
		RecurringIncomes: []model.RecurringIncome{
			{ID: "g", Name: "Salary", Amount: 50000, Frequency: model.FreqMonthly,
				Schedule: model.DayOfMonthSchedule(1), Certainty: model.CertaintyGuaranteed, Active: true},
			{ID: "p", Name: "Freelance", Amount: 20000, Frequency: model.FreqMonthly,
				Schedule: model.DayOfMonthSchedule(2), Certainty: model.CertaintyProbable, Active: true},
		},
		SingleIncomes: []model.SingleShotIncome{
			{ID: "u", Name: "Refund", Amount: 3000, Date: date(2024, time.June, 3), Certainty: model.CertaintyUncertain},
		},
		FixedExpenses: []model.FixedExpense{
			{ID: "r", Name: "Rent", Amount: 80000, DueDay: 4, Active: true},
		},
	}

	events, err := Materialize(entities, date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}

	byName := make(map[string]CashEvent)
	for _, ev := range events {
		byName[ev.SourceName] = ev
	}

	if ev := byName["Salary"]; !ev.AppliesOptimistic || !ev.AppliesPessimistic || ev.Amount != 50000 {
		t.Errorf("guaranteed income mask/amount wrong: %+v", ev)
	}
	if ev := byName["Freelance"]; !ev.AppliesOptimistic || ev.AppliesPessimistic {
		t.Errorf("probable income must be optimistic-only: %+v", ev)
	}
	if ev := byName["Refund"]; !ev.AppliesOptimistic || ev.AppliesPessimistic {
		t.Errorf("uncertain income must be optimistic-only: %+v", ev)
	}
	if ev := byName["Rent"]; !ev.AppliesOptimistic || !ev.AppliesPessimistic || ev.Amount != -80000 {
		t.Errorf("expenses apply in both scenarios, negative: %+v", ev)
	}
}

func TestMaterialize_SkipsInactiveRecords(t *testing.T) {
	entities := model.EntitySet{
		RecurringIncomes: []model.RecurringIncome{
			{ID: "i", Name: "Paused gig", Amount: 10000, Frequency: model.FreqMonthly,
				Schedule: model.DayOfMonthSchedule(5), Certainty: model.CertaintyGuaranteed, Active: false},
		},
		FixedExpenses: []model.FixedExpense{
			{ID: "e", Name: "Cancelled sub", Amount: 999, DueDay: 5, Active: false},
		},
	}

	events, err := Materialize(entities, date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("inactive records emitted %d events, want 0", len(events))
	}
}

func TestMaterialize_SingleShotOutOfRange(t *testing.T) {
	entities := model.EntitySet{
		SingleIncomes: []model.SingleShotIncome{
			{ID: "a", Name: "Before", Amount: 100, Date: date(2024, time.May, 31), Certainty: model.CertaintyGuaranteed},
			{ID: "b", Name: "Inside", Amount: 200, Date: date(2024, time.June, 15), Certainty: model.CertaintyGuaranteed},
			{ID: "c", Name: "After", Amount: 300, Date: date(2024, time.July, 1), Certainty: model.CertaintyGuaranteed},
		},
	}

	events, err := Materialize(entities, date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(events) != 1 || events[0].SourceName != "Inside" {
		t.Fatalf("want only the in-range income, got %+v", events)
	}
}

func TestMaterialize_CardFutureStatementOverride(t *testing.T) {
	entities := model.EntitySet{
		CreditCards: []model.CreditCard{
			{ID: "card1", Name: "Visa", StatementBalance: 10000, DueDay: 15},
		},
		FutureStatements: []model.FutureStatement{
			{ID: "fs1", CardID: "card1", Amount: 5000, TargetMonth: 6, TargetYear: 2025},
		},
	}

	events, err := Materialize(entities, date(2025, time.May, 1), date(2025, time.August, 31))
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	// May 15: nearest cycle, falls back to the current statement balance.
	// Jun 15: override applies. Jul/Aug: no override, nothing projected.
	if len(events) != 2 {
		t.Fatalf("got %d card events, want 2: %+v", len(events), events)
	}
	if !events[0].Date.Equal(date(2025, time.May, 15)) || events[0].Amount != -10000 {
		t.Errorf("nearest cycle = %s %d, want 2025-05-15 -10000",
			events[0].Date.Format("2006-01-02"), events[0].Amount)
	}
	if !events[1].Date.Equal(date(2025, time.June, 15)) || events[1].Amount != -5000 {
		t.Errorf("overridden cycle = %s %d, want 2025-06-15 -5000",
			events[1].Date.Format("2006-01-02"), events[1].Amount)
	}
	for _, ev := range events {
		if !ev.AppliesOptimistic || !ev.AppliesPessimistic {
			t.Errorf("card dues must apply in both scenarios: %+v", ev)
		}
	}
}

func TestMaterialize_CardZeroBalanceEmitsNothing(t *testing.T) {
	entities := model.EntitySet{
		CreditCards: []model.CreditCard{
			{ID: "card1", Name: "Paid off", StatementBalance: 0, DueDay: 10},
		},
	}

	events, err := Materialize(entities, date(2025, time.May, 1), date(2025, time.June, 30))
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("zero-balance card emitted %d events, want 0", len(events))
	}
}

func TestMaterialize_SortedByDate(t *testing.T) {
	entities := model.EntitySet{
		SingleExpenses: []model.SingleShotExpense{
			{ID: "b", Name: "Later", Amount: 100, Date: date(2024, time.June, 20)},
			{ID: "a", Name: "Earlier", Amount: 100, Date: date(2024, time.June, 5)},
		},
		FixedExpenses: []model.FixedExpense{
			{ID: "c", Name: "Middle", Amount: 100, DueDay: 12, Active: true},
		},
	}

	events, err := Materialize(entities, date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Date.Before(events[i-1].Date) {
			t.Fatalf("events out of order: %s before %s",
				events[i].Date.Format("2006-01-02"), events[i-1].Date.Format("2006-01-02"))
		}
	}
}

func TestMaterialize_PropagatesScheduleErrors(t *testing.T) {
	entities := model.EntitySet{
		RecurringIncomes: []model.RecurringIncome{
			{ID: "bad", Name: "Bad", Amount: 100, Frequency: model.FreqWeekly,
				Schedule: model.DayOfMonthSchedule(5), Certainty: model.CertaintyGuaranteed, Active: true},
		},
	}

	_, err := Materialize(entities, date(2024, time.June, 1), date(2024, time.June, 30))
	if err == nil {
		t.Fatal("expected schedule validation error, got nil")
	}
}
