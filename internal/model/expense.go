package model

import "github.com/shopspring/decimal"

// Expense is one recorded spend. Amount is signed and never validated.
type Expense struct {
	Description string
	Amount      decimal.Decimal
}

// Snapshot is the persisted state of a ledger: the initial budget plus every
// expense in insertion order.
type Snapshot struct {
	InitialBudget decimal.Decimal
	Expenses      []Expense
}

// IsEmpty reports whether s is the default state (zero budget, no expenses).
func (s Snapshot) IsEmpty() bool {
	return s.InitialBudget.IsZero() && len(s.Expenses) == 0
}
