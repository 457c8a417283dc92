package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"flowcast/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "flowcast.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAccountRoundTrip(t *testing.T) {
	s := openTestStore(t)

	updated := time.Date(2025, 5, 30, 9, 15, 0, 0, time.UTC)
	accounts := []model.Account{
		{ID: "a1", Name: "Checking", Type: model.AccountChecking, Balance: 123_456, BalanceUpdatedAt: &updated, Owner: "sam"},
		{ID: "a2", Name: "Brokerage", Type: model.AccountInvestment, Balance: 9_000_000},
	}
	for _, a := range accounts {
		if err := s.SaveAccount(a); err != nil {
			t.Fatalf("SaveAccount(%s): %v", a.ID, err)
		}
	}

	got, err := s.Accounts()
	if err != nil {
		t.Fatalf("Accounts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d accounts, want 2", len(got))
	}
	// Ordered by name: Brokerage first.
	if got[0].ID != "a2" || got[0].BalanceUpdatedAt != nil {
		t.Errorf("got[0] = %+v, want never-updated brokerage", got[0])
	}
	if got[1].Owner != "sam" || got[1].Balance != 123_456 {
		t.Errorf("got[1] = %+v, lost fields on round trip", got[1])
	}
	if got[1].BalanceUpdatedAt == nil || !got[1].BalanceUpdatedAt.Equal(updated) {
		t.Errorf("BalanceUpdatedAt = %v, want %v", got[1].BalanceUpdatedAt, updated)
	}
}

func TestSaveAccountRejectsUnknownType(t *testing.T) {
	s := openTestStore(t)
	err := s.SaveAccount(model.Account{ID: "x", Name: "Weird", Type: "crypto"})
	if err == nil {
		t.Fatal("unknown account type should be rejected")
	}
}

func TestUpdateBalanceStampsTime(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveAccount(model.Account{ID: "a1", Name: "Checking", Type: model.AccountChecking, Balance: 100}); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2025, 5, 31, 8, 0, 0, 0, time.UTC)
	if err := s.UpdateBalance("a1", -2_500, at); err != nil {
		t.Fatalf("UpdateBalance: %v", err)
	}

	got, err := s.Accounts()
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Balance != -2_500 {
		t.Errorf("balance = %d, overdraft must survive", got[0].Balance)
	}
	if got[0].BalanceUpdatedAt == nil || !got[0].BalanceUpdatedAt.Equal(at) {
		t.Errorf("BalanceUpdatedAt = %v, want %v", got[0].BalanceUpdatedAt, at)
	}

	if err := s.UpdateBalance("missing", 0, at); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: err = %v, want ErrNotFound", err)
	}
}

func TestRevisionBumpsPerWrite(t *testing.T) {
	s := openTestStore(t)

	rev0, err := s.Revision()
	if err != nil {
		t.Fatalf("Revision: %v", err)
	}

	if err := s.SaveAccount(model.Account{ID: "a1", Name: "Checking", Type: model.AccountChecking}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveFixedExpense(model.FixedExpense{ID: "e1", Name: "Rent", Amount: 100, DueDay: 1, Active: true}); err != nil {
		t.Fatal(err)
	}

	rev, err := s.Revision()
	if err != nil {
		t.Fatal(err)
	}
	if rev != rev0+2 {
		t.Errorf("revision = %d after two writes from %d, want %d", rev, rev0, rev0+2)
	}

	// Failed writes must not bump.
	if err := s.SaveFixedExpense(model.FixedExpense{ID: "bad", DueDay: 40}); err == nil {
		t.Fatal("due day 40 should be rejected")
	}
	rev2, _ := s.Revision()
	if rev2 != rev {
		t.Errorf("revision moved to %d on a rejected write", rev2)
	}
}

func TestRecurringIncomeValidatesScheduleShape(t *testing.T) {
	s := openTestStore(t)

	err := s.SaveRecurringIncome(model.RecurringIncome{
		ID: "i1", Name: "Paycheck", Amount: 1000,
		Frequency: model.FreqWeekly,
		Schedule:  model.DayOfMonthSchedule(5),
		Certainty: model.CertaintyGuaranteed,
		Active:    true,
	})
	if err == nil {
		t.Fatal("weekly frequency with day-of-month schedule should be rejected")
	}

	in := model.RecurringIncome{
		ID: "i1", Name: "Paycheck", Amount: 1000,
		Frequency: model.FreqBiweekly,
		Schedule:  model.DayOfWeekSchedule(time.Friday),
		Certainty: model.CertaintyProbable,
		Active:    true,
	}
	if err := s.SaveRecurringIncome(in); err != nil {
		t.Fatalf("SaveRecurringIncome: %v", err)
	}

	got, err := s.RecurringIncomes()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Schedule.Weekday != time.Friday || got[0].Certainty != model.CertaintyProbable {
		t.Errorf("round trip lost schedule: %+v", got)
	}
}

func TestSingleShotDateRoundTrip(t *testing.T) {
	s := openTestStore(t)

	d := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	if err := s.SaveSingleIncome(model.SingleShotIncome{
		ID: "si1", Name: "Bonus", Amount: 75_000, Date: d, Certainty: model.CertaintyUncertain,
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSingleExpense(model.SingleShotExpense{
		ID: "se1", Name: "Car repair", Amount: 42_000, Date: d.AddDate(0, 0, 3),
	}); err != nil {
		t.Fatal(err)
	}

	incomes, err := s.SingleIncomes()
	if err != nil {
		t.Fatal(err)
	}
	if len(incomes) != 1 || !incomes[0].Date.Equal(d) {
		t.Errorf("income date = %v, want %v", incomes[0].Date, d)
	}
	expenses, err := s.SingleExpenses()
	if err != nil {
		t.Fatal(err)
	}
	if len(expenses) != 1 || !expenses[0].Date.Equal(d.AddDate(0, 0, 3)) {
		t.Errorf("expense round trip: %+v", expenses)
	}
}

func TestFutureStatementOverrideReplacesSameMonth(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveCreditCard(model.CreditCard{ID: "c1", Name: "Visa", StatementBalance: 30_000, DueDay: 15}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveFutureStatement(model.FutureStatement{
		ID: "f1", CardID: "c1", Amount: 10_000, TargetMonth: 7, TargetYear: 2025,
	}); err != nil {
		t.Fatal(err)
	}
	// Second entry for the same card-month supersedes the first.
	if err := s.SaveFutureStatement(model.FutureStatement{
		ID: "f2", CardID: "c1", Amount: 20_000, TargetMonth: 7, TargetYear: 2025,
	}); err != nil {
		t.Fatalf("replacing override: %v", err)
	}

	got, err := s.FutureStatements()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "f2" || got[0].Amount != 20_000 {
		t.Errorf("got %+v, want only the superseding override", got)
	}
}

func TestDeleteCardCascadesStatements(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveCreditCard(model.CreditCard{ID: "c1", Name: "Visa", DueDay: 15}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveFutureStatement(model.FutureStatement{
		ID: "f1", CardID: "c1", Amount: 5_000, TargetMonth: 8, TargetYear: 2025,
	}); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteCreditCard("c1"); err != nil {
		t.Fatalf("DeleteCreditCard: %v", err)
	}

	got, err := s.FutureStatements()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("orphaned statements survived card delete: %+v", got)
	}
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	s := openTestStore(t)
	for name, fn := range map[string]func(string) error{
		"account":          s.DeleteAccount,
		"recurring income": s.DeleteRecurringIncome,
		"single income":    s.DeleteSingleIncome,
		"fixed expense":    s.DeleteFixedExpense,
		"single expense":   s.DeleteSingleExpense,
		"card":             s.DeleteCreditCard,
		"statement":        s.DeleteFutureStatement,
	} {
		if err := fn("nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("delete missing %s: err = %v, want ErrNotFound", name, err)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := openTestStore(t)

	updated := time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)
	if err := src.SaveAccount(model.Account{
		ID: "a1", Name: "Checking", Type: model.AccountChecking, Balance: 55_000, BalanceUpdatedAt: &updated,
	}); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveRecurringIncome(model.RecurringIncome{
		ID: "i1", Name: "Salary", Amount: 250_000,
		Frequency: model.FreqTwiceMonthly,
		Schedule:  model.TwiceMonthlySchedule(1, 15),
		Certainty: model.CertaintyGuaranteed,
		Active:    true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveCreditCard(model.CreditCard{ID: "c1", Name: "Visa", StatementBalance: 12_000, DueDay: 20}); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveFutureStatement(model.FutureStatement{
		ID: "f1", CardID: "c1", Amount: 9_000, TargetMonth: 9, TargetYear: 2025,
	}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := openTestStore(t)
	// Pre-existing data must be replaced, not merged.
	if err := dst.SaveAccount(model.Account{ID: "old", Name: "Old", Type: model.AccountSavings}); err != nil {
		t.Fatal(err)
	}
	if err := dst.Import(&buf); err != nil {
		t.Fatalf("Import: %v", err)
	}

	want, err := src.LoadEntities()
	if err != nil {
		t.Fatal(err)
	}
	got, err := dst.LoadEntities()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Accounts) != 1 || got.Accounts[0].ID != "a1" {
		t.Fatalf("import merged instead of replacing: %+v", got.Accounts)
	}
	if got.Accounts[0].Balance != want.Accounts[0].Balance ||
		!got.Accounts[0].BalanceUpdatedAt.Equal(*want.Accounts[0].BalanceUpdatedAt) {
		t.Errorf("account round trip mismatch: got %+v want %+v", got.Accounts[0], want.Accounts[0])
	}
	if len(got.RecurringIncomes) != 1 || got.RecurringIncomes[0].Schedule.SecondDay != 15 {
		t.Errorf("income round trip mismatch: %+v", got.RecurringIncomes)
	}
	if len(got.FutureStatements) != 1 || got.FutureStatements[0].Amount != 9_000 {
		t.Errorf("statement round trip mismatch: %+v", got.FutureStatements)
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	s := openTestStore(t)
	if err := s.Import(bytes.NewReader([]byte(`{"version": 99, "entities": {}}`))); err == nil {
		t.Fatal("unknown backup version should be rejected")
	}
}
