package model

// CreditCard is a credit card whose statement balance falls due on DueDay
// each month. StatementBalance is the current cycle's bill; future cycles
// are only projected when a FutureStatement override exists for them.
type CreditCard struct {
	ID               string
	Name             string
	StatementBalance int64
	DueDay           int
	Owner            string
}

// FutureStatement overrides a card's bill for one specific month, entered
// when the user already knows a future statement amount. At most one per
// (card, month, year); the store enforces the uniqueness.
type FutureStatement struct {
	ID          string
	CardID      string
	Amount      int64
	TargetMonth int // 1-12
	TargetYear  int
}
