package ledger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-cli/budget/internal/model"
)

func TestCSVRoundTrip(t *testing.T) {
	expenses := []model.Expense{
		{Description: "coffee", Amount: dec("4.5")},
		{Description: "lunch", Amount: dec("12")},
		{Description: "refund", Amount: dec("-3.10")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, expenses))
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))

	got, err := ReadExpenses(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range expenses {
		assert.Equal(t, expenses[i].Description, got[i].Description)
		assert.True(t, expenses[i].Amount.Equal(got[i].Amount), "amount mismatch row %d", i)
	}
}

func TestCSVSpecialCharactersInDescription(t *testing.T) {
	e := model.Expense{Description: `Dinner, "Luigi's" & tip`, Amount: dec("88.20")}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, []model.Expense{e}))

	got, err := ReadExpenses(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.Description, got[0].Description)
}

func TestReadExpenses_Empty(t *testing.T) {
	got, err := ReadExpenses(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadExpenses_HeaderOnly(t *testing.T) {
	got, err := ReadExpenses(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadExpenses_BadHeader(t *testing.T) {
	_, err := ReadExpenses(strings.NewReader("name,cost\ncoffee,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected header")
}

func TestReadExpenses_BadAmount(t *testing.T) {
	_, err := ReadExpenses(strings.NewReader(Header + "\ncoffee,1\nlunch,twelve\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestUnmarshalExpense_BadFieldCount(t *testing.T) {
	_, err := UnmarshalExpense([]string{"only"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 fields")
}

func TestMarshalExpense_AmountFormatting(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4.5", "4.5"},
		{"12", "12"},
		{"-0.25", "-0.25"},
		{"1000000", "1000000"},
	}
	for _, tt := range tests {
		row := MarshalExpense(model.Expense{Description: "x", Amount: dec(tt.input)})
		assert.Equal(t, tt.want, row[colAmount], "input %q", tt.input)
	}
}
