package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-cli/budget/internal/model"
)

type closeRecorder struct {
	bytes.Buffer
	closeErr error
	closed   int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return c.closeErr
}

type failingWriter struct {
	closeRecorder
}

func (f *failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("device busy")
}

var exportSample = []model.Expense{{Description: "coffee", Amount: decimal.RequireFromString("4.5")}}

func TestWriteExpensesAndClose(t *testing.T) {
	wc := &closeRecorder{}
	require.NoError(t, writeExpensesAndClose(wc, exportSample))
	assert.Equal(t, "description,amount\ncoffee,4.5\n", wc.String())
	assert.Equal(t, 1, wc.closed)
}

func TestWriteExpensesAndClose_CloseFailure(t *testing.T) {
	wc := &closeRecorder{closeErr: errors.New("no space left on device")}

	err := writeExpensesAndClose(wc, exportSample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closing export")
	assert.Contains(t, err.Error(), "no space left on device")
}

func TestWriteExpensesAndClose_WriteFailureStillCloses(t *testing.T) {
	wc := &failingWriter{}

	err := writeExpensesAndClose(wc, exportSample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exporting expenses")
	assert.Equal(t, 1, wc.closed)
}
