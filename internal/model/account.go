// Package model defines domain types for flowcast accounts, cashflows, and cards.
package model

import "time"

// AccountType classifies an account for projection purposes.
// Investment balances are tracked but excluded from the spendable scenarios.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountInvestment AccountType = "investment"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountInvestment:
		return true
	}
	return false
}

// Spendable reports whether the account contributes to the projected
// optimistic/pessimistic balances.
func (t AccountType) Spendable() bool {
	return t == AccountChecking || t == AccountSavings
}

// Account is a bank account. Balance is in minor currency units (cents);
// negative balances represent overdraft and are never clamped.
type Account struct {
	ID               string
	Name             string
	Type             AccountType
	Balance          int64
	BalanceUpdatedAt *time.Time // nil = never recorded
	Owner            string
}
