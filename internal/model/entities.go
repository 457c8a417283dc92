package model

// EntitySet is the full snapshot of financial records the projection
// consumes. The projection never mutates it; a fresh snapshot is loaded
// from the store whenever anything changes.
type EntitySet struct {
	Accounts         []Account
	RecurringIncomes []RecurringIncome
	SingleIncomes    []SingleShotIncome
	FixedExpenses    []FixedExpense
	SingleExpenses   []SingleShotExpense
	CreditCards      []CreditCard
	FutureStatements []FutureStatement
}

// Empty reports whether the set contains no records at all.
func (e EntitySet) Empty() bool {
	return len(e.Accounts) == 0 &&
		len(e.RecurringIncomes) == 0 &&
		len(e.SingleIncomes) == 0 &&
		len(e.FixedExpenses) == 0 &&
		len(e.SingleExpenses) == 0 &&
		len(e.CreditCards) == 0 &&
		len(e.FutureStatements) == 0
}
