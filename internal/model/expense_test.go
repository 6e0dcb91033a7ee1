package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"zero value", Snapshot{}, true},
		{"empty slice", Snapshot{Expenses: []Expense{}}, true},
		{"budget set", Snapshot{InitialBudget: decimal.NewFromInt(50)}, false},
		{"expense only", Snapshot{Expenses: []Expense{{Description: "tea", Amount: decimal.Zero}}}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.snap.IsEmpty(), tt.name)
	}
}
