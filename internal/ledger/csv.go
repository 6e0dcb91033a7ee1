package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budget-cli/budget/internal/model"
)

// Header is the CSV header for exported expenses.
const Header = "description,amount"

const (
	numFields = 2
	colDesc   = 0
	colAmount = 1
)

// ReadExpenses reads expenses from a CSV reader. The first row must be the header.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if strings.Join(records[0], ",") != Header {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(records[0], ","))
	}

	var expenses []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteExpenses writes expenses to a CSV writer, header first.
func WriteExpenses(w io.Writer, expenses []model.Expense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range expenses {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colDesc] = e.Description
	row[colAmount] = e.Amount.String()
	return row
}

// UnmarshalExpense converts a CSV row to an Expense.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Expense{
		Description: record[colDesc],
		Amount:      amount,
	}, nil
}
