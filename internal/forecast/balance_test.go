package forecast

import (
	"testing"
	"time"

	"flowcast/internal/model"
)

func ptr(t time.Time) *time.Time { return &t }

func TestResolveStartingBalances_NoReliableBase(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	accounts := []model.Account{
		{ID: "a", Type: model.AccountChecking, Balance: 5000, BalanceUpdatedAt: nil},
		{ID: "b", Type: model.AccountSavings, Balance: 9000, BalanceUpdatedAt: nil},
	}

	sb := ResolveStartingBalances(accounts, now, 0)
	if sb.HasReliableBase {
		t.Error("no account ever updated, but HasReliableBase = true")
	}
}

func TestResolveStartingBalances_SumsAndFreshness(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, time.June, 14, 23, 50, 0, 0, time.UTC)

	tests := []struct {
		name          string
		accounts      []model.Account
		wantBalance   int64
		wantEstimated bool
		wantStaleIDs  int
	}{
		{
			name: "all fresh",
			accounts: []model.Account{
				{ID: "a", Type: model.AccountChecking, Balance: 100000, BalanceUpdatedAt: ptr(today)},
				{ID: "b", Type: model.AccountSavings, Balance: 250000, BalanceUpdatedAt: ptr(today)},
			},
			wantBalance:   350000,
			wantEstimated: false,
		},
		{
			name: "one stale makes the base an estimate",
			accounts: []model.Account{
				{ID: "a", Type: model.AccountChecking, Balance: 100000, BalanceUpdatedAt: ptr(today)},
				{ID: "b", Type: model.AccountSavings, Balance: 250000, BalanceUpdatedAt: ptr(yesterday)},
			},
			wantBalance:   350000,
			wantEstimated: true,
			wantStaleIDs:  1,
		},
		{
			name: "never-updated account counts but is stale",
			accounts: []model.Account{
				{ID: "a", Type: model.AccountChecking, Balance: 100000, BalanceUpdatedAt: ptr(today)},
				{ID: "b", Type: model.AccountChecking, Balance: -20000, BalanceUpdatedAt: nil},
			},
			wantBalance:   80000,
			wantEstimated: true,
			wantStaleIDs:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := ResolveStartingBalances(tt.accounts, now, 0)
			if !sb.HasReliableBase {
				t.Fatal("HasReliableBase = false, want true")
			}
			if sb.Optimistic != tt.wantBalance || sb.Pessimistic != tt.wantBalance {
				t.Errorf("balances = %d/%d, want %d", sb.Optimistic, sb.Pessimistic, tt.wantBalance)
			}
			if sb.EstimatedOptimistic != tt.wantEstimated || sb.EstimatedPessimistic != tt.wantEstimated {
				t.Errorf("estimated = %v/%v, want %v", sb.EstimatedOptimistic, sb.EstimatedPessimistic, tt.wantEstimated)
			}
			if len(sb.StaleAccountIDs) != tt.wantStaleIDs {
				t.Errorf("stale accounts = %v, want %d", sb.StaleAccountIDs, tt.wantStaleIDs)
			}
		})
	}
}

func TestResolveStartingBalances_InvestmentsExcluded(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	accounts := []model.Account{
		{ID: "a", Type: model.AccountChecking, Balance: 100000, BalanceUpdatedAt: ptr(updated)},
		{ID: "inv", Type: model.AccountInvestment, Balance: 750000, BalanceUpdatedAt: ptr(updated)},
	}

	sb := ResolveStartingBalances(accounts, now, 0)
	if sb.Optimistic != 100000 {
		t.Errorf("optimistic = %d, investments must not leak into scenarios", sb.Optimistic)
	}
	if sb.Investments != 750000 {
		t.Errorf("investments = %d, want 750000", sb.Investments)
	}
}

func TestResolveStartingBalances_CustomStalePolicy(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	twoDaysAgo := time.Date(2024, time.June, 13, 12, 0, 0, 0, time.UTC)
	accounts := []model.Account{
		{ID: "a", Type: model.AccountChecking, Balance: 100000, BalanceUpdatedAt: ptr(twoDaysAgo)},
	}

	// Default policy: updated before today's midnight is stale.
	if sb := ResolveStartingBalances(accounts, now, 0); !sb.EstimatedOptimistic {
		t.Error("two-day-old balance not stale under default policy")
	}

	// A 3-day policy tolerates it.
	if sb := ResolveStartingBalances(accounts, now, 72*time.Hour); sb.EstimatedOptimistic {
		t.Error("two-day-old balance stale under 72h policy")
	}
}

func TestResolveStartingBalances_OverdraftNotClamped(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	accounts := []model.Account{
		{ID: "a", Type: model.AccountChecking, Balance: -42000, BalanceUpdatedAt: ptr(updated)},
	}

	sb := ResolveStartingBalances(accounts, now, 0)
	if sb.Optimistic != -42000 {
		t.Errorf("overdraft balance = %d, want -42000 unclamped", sb.Optimistic)
	}
}
