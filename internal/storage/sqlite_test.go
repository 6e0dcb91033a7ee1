package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-cli/budget/internal/model"
)

func TestSQLite_RoundTrip(t *testing.T) {
	s := NewSQLite(filepath.Join(t.TempDir(), "budget.db"), zerolog.Nop())
	want := sampleSnapshot()

	require.NoError(t, s.Save(want))

	snap, outcome, err := s.load()
	require.NoError(t, err)
	assert.Equal(t, OutcomeLoaded, outcome)
	assertSnapshotEqual(t, want, snap)
}

func TestSQLite_SaveReplaces(t *testing.T) {
	s := NewSQLite(filepath.Join(t.TempDir(), "budget.db"), zerolog.Nop())
	require.NoError(t, s.Save(sampleSnapshot()))

	next := model.Snapshot{
		InitialBudget: dec("7"),
		Expenses:      []model.Expense{{Description: "only", Amount: dec("1.01")}},
	}
	require.NoError(t, s.Save(next))

	assertSnapshotEqual(t, next, s.Load())
}

func TestSQLite_RoundTripEmpty(t *testing.T) {
	s := NewSQLite(filepath.Join(t.TempDir(), "budget.db"), zerolog.Nop())
	require.NoError(t, s.Save(model.Snapshot{}))

	snap := s.Load()
	assert.True(t, snap.IsEmpty())
}

func TestSQLite_LoadNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	s := NewSQLite(path, zerolog.Nop())

	snap, outcome, err := s.load()
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)
	assert.True(t, snap.IsEmpty())

	// Loading must not create the database.
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSQLite_LoadNotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not sqlite, just text padding it out a little"), 0o644))

	snap, outcome, err := NewSQLite(path, zerolog.Nop()).load()
	assert.Error(t, err)
	assert.Equal(t, OutcomeMalformed, outcome)
	assert.True(t, snap.IsEmpty())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendJSON, filepath.Join(dir, "a.json"), zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, s)

	s, err = Open("", filepath.Join(dir, "b.json"), zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &JSONFile{}, s)

	s, err = Open(BackendSQLite, filepath.Join(dir, "c.db"), zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)

	_, err = Open("yaml", filepath.Join(dir, "d"), zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
