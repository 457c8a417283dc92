package forecast

import (
	"time"

	"flowcast/internal/model"
)

// DefaultStaleAfter is the default balance staleness policy: a balance
// recorded before the start of the current calendar day is an estimate.
const DefaultStaleAfter = 24 * time.Hour

// StartingBalances is the resolved day-0 anchor for a projection.
//
// HasReliableBase is false when no checking/savings account has ever had a
// balance recorded; callers render an empty state in that case rather than
// projecting from a silent zero. The Estimated flags mean the day-0 value
// carries forward at least one stale balance instead of a same-day figure.
type StartingBalances struct {
	Optimistic           int64
	Pessimistic          int64
	Investments          int64
	HasReliableBase      bool
	EstimatedOptimistic  bool
	EstimatedPessimistic bool
	StaleAccountIDs      []string
}

// ResolveStartingBalances sums account balances as of their last known
// value — no interpolation, no implied interest. Investment accounts are
// excluded from the scenario balances and surfaced separately. staleAfter
// <= 0 falls back to DefaultStaleAfter.
func ResolveStartingBalances(accounts []model.Account, now time.Time, staleAfter time.Duration) StartingBalances {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	// With the default 24h policy the cutoff is today's midnight: anything
	// recorded yesterday or earlier is stale. Longer policies slide the
	// cutoff back in whole days.
	cutoff := DayOf(now).Add(DefaultStaleAfter - staleAfter)

	var sb StartingBalances
	var spendable int64
	anyStale := false

	for _, acct := range accounts {
		if !acct.Type.Spendable() {
			if acct.Type == model.AccountInvestment {
				sb.Investments += acct.Balance
			}
			continue
		}
		spendable += acct.Balance

		if acct.BalanceUpdatedAt == nil {
			anyStale = true
			sb.StaleAccountIDs = append(sb.StaleAccountIDs, acct.ID)
			continue
		}
		sb.HasReliableBase = true
		if acct.BalanceUpdatedAt.Before(cutoff) {
			anyStale = true
			sb.StaleAccountIDs = append(sb.StaleAccountIDs, acct.ID)
		}
	}

	sb.Optimistic = spendable
	sb.Pessimistic = spendable
	sb.EstimatedOptimistic = anyStale
	sb.EstimatedPessimistic = anyStale
	return sb
}
