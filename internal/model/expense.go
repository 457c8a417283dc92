package model

import "time"

// FixedExpense recurs monthly on DueDay (1-31, clamped to month length).
type FixedExpense struct {
	ID     string
	Name   string
	Amount int64
	DueDay int
	Active bool
}

// SingleShotExpense is a one-off expense on a specific calendar day.
type SingleShotExpense struct {
	ID     string
	Name   string
	Amount int64
	Date   time.Time
}
