package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/budget-cli/budget/internal/model"
)

// Ledger holds an initial budget and an append-only sequence of expenses.
// It is not safe for concurrent use.
type Ledger struct {
	initialBudget decimal.Decimal
	expenses      []model.Expense
}

// New creates an empty Ledger with the given initial budget.
func New(initialBudget decimal.Decimal) *Ledger {
	return &Ledger{initialBudget: initialBudget}
}

// FromSnapshot rebuilds a Ledger from persisted state.
func FromSnapshot(s model.Snapshot) *Ledger {
	l := New(s.InitialBudget)
	l.expenses = append(l.expenses, s.Expenses...)
	return l
}

// Snapshot returns the ledger's state for persisting.
func (l *Ledger) Snapshot() model.Snapshot {
	return model.Snapshot{
		InitialBudget: l.initialBudget,
		Expenses:      l.Expenses(),
	}
}

// InitialBudget returns the budget the ledger was created with.
func (l *Ledger) InitialBudget() decimal.Decimal {
	return l.initialBudget
}

// SetInitialBudget replaces the initial budget. Expenses are kept.
func (l *Ledger) SetInitialBudget(b decimal.Decimal) {
	l.initialBudget = b
}

// AddExpense appends an expense. Any amount is accepted, including zero and
// negative values.
func (l *Ledger) AddExpense(description string, amount decimal.Decimal) {
	l.expenses = append(l.expenses, model.Expense{Description: description, Amount: amount})
}

// Expenses returns a copy of the expenses in insertion order.
func (l *Ledger) Expenses() []model.Expense {
	out := make([]model.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Len returns the number of recorded expenses.
func (l *Ledger) Len() int {
	return len(l.expenses)
}

// TotalSpent returns the sum of all expense amounts.
func (l *Ledger) TotalSpent() decimal.Decimal {
	return Total(l.expenses)
}

// Balance returns initialBudget minus the total spent. The result may be
// negative.
func (l *Ledger) Balance(initialBudget decimal.Decimal) decimal.Decimal {
	return initialBudget.Sub(l.TotalSpent())
}

// Remaining is Balance against the ledger's own initial budget.
func (l *Ledger) Remaining() decimal.Decimal {
	return l.Balance(l.initialBudget)
}

// Total sums the amounts of expenses.
func Total(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
