package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/budget-cli/budget/internal/model"

	_ "modernc.org/sqlite"
)

// SQLite stores a snapshot in a SQLite database. Amounts are kept as
// decimal text so they round-trip exactly.
type SQLite struct {
	path   string
	logger zerolog.Logger
}

// NewSQLite creates a SQLite store at path.
func NewSQLite(path string, logger zerolog.Logger) *SQLite {
	return &SQLite{path: path, logger: logger}
}

// Path returns the database file backing the store.
func (s *SQLite) Path() string {
	return s.path
}

// Load reads the snapshot, returning the empty snapshot if the database is
// missing or does not hold a ledger.
func (s *SQLite) Load() model.Snapshot {
	snap, outcome, err := s.load()
	logLoad(s.logger, s.path, outcome, snap, err)
	return snap
}

func (s *SQLite) load() (model.Snapshot, Outcome, error) {
	// sql.Open would create a missing file, so check first.
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return emptySnapshot(), OutcomeNotFound, nil
	} else if err != nil {
		return emptySnapshot(), OutcomeUnreadable, err
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return emptySnapshot(), OutcomeUnreadable, fmt.Errorf("opening sqlite database: %w", err)
	}
	defer db.Close()

	snap, err := readSnapshot(db)
	if err != nil {
		return emptySnapshot(), OutcomeMalformed, err
	}
	return snap, OutcomeLoaded, nil
}

func readSnapshot(db *sql.DB) (model.Snapshot, error) {
	var budgetText string
	if err := db.QueryRow(`SELECT initial_budget FROM budget WHERE id = 1`).Scan(&budgetText); err != nil {
		return model.Snapshot{}, fmt.Errorf("reading budget: %w", err)
	}
	budget, err := decimal.NewFromString(budgetText)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("parsing initial_budget %q: %w", budgetText, err)
	}

	rows, err := db.Query(`SELECT description, amount FROM expenses ORDER BY position`)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		var desc, amountText string
		if err := rows.Scan(&desc, &amountText); err != nil {
			return model.Snapshot{}, fmt.Errorf("scanning expense: %w", err)
		}
		amount, err := decimal.NewFromString(amountText)
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("parsing amount %q: %w", amountText, err)
		}
		expenses = append(expenses, model.Expense{Description: desc, Amount: amount})
	}
	if err := rows.Err(); err != nil {
		return model.Snapshot{}, fmt.Errorf("iterating expenses: %w", err)
	}

	return model.Snapshot{InitialBudget: budget, Expenses: expenses}, nil
}

// Save replaces the stored ledger with snap.
func (s *SQLite) Save(snap model.Snapshot) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating ledger dir: %w", err)
		}
	}

	if err := runMigrations(s.path); err != nil {
		return fmt.Errorf("migrating ledger database: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening sqlite database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(`DELETE FROM budget`); err != nil {
		return fmt.Errorf("clearing budget: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO budget (id, initial_budget) VALUES (1, ?)`, snap.InitialBudget.String()); err != nil {
		return fmt.Errorf("writing budget: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clearing expenses: %w", err)
	}
	for i, e := range snap.Expenses {
		if _, err := tx.Exec(
			`INSERT INTO expenses (position, description, amount) VALUES (?, ?, ?)`,
			i, e.Description, e.Amount.String(),
		); err != nil {
			return fmt.Errorf("writing expense %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing ledger: %w", err)
	}

	s.logger.Debug().Str("path", s.path).Int("expenses", len(snap.Expenses)).Msg("ledger saved")
	return nil
}
