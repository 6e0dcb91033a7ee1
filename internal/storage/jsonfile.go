package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/budget-cli/budget/internal/model"
)

// fileRecord is the on-disk JSON layout. Pointers distinguish absent keys
// from zero values.
type fileRecord struct {
	InitialBudget *json.Number   `json:"initial_budget"`
	Expenses      *[]fileExpense `json:"expenses"`
}

type fileExpense struct {
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
}

// JSONFile stores a snapshot as a pretty-printed JSON document.
type JSONFile struct {
	path   string
	logger zerolog.Logger
}

// NewJSONFile creates a JSONFile store at path.
func NewJSONFile(path string, logger zerolog.Logger) *JSONFile {
	return &JSONFile{path: path, logger: logger}
}

// Path returns the file path backing the store.
func (s *JSONFile) Path() string {
	return s.path
}

// Load reads the snapshot, returning the empty snapshot if the file is
// missing or cannot be parsed.
func (s *JSONFile) Load() model.Snapshot {
	snap, outcome, err := s.load()
	logLoad(s.logger, s.path, outcome, snap, err)
	return snap
}

func (s *JSONFile) load() (model.Snapshot, Outcome, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptySnapshot(), OutcomeNotFound, nil
	}
	if err != nil {
		return emptySnapshot(), OutcomeUnreadable, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return emptySnapshot(), OutcomeUnreadable, fmt.Errorf("reading %s: %w", s.path, err)
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return emptySnapshot(), OutcomeMalformed, err
	}
	return snap, OutcomeLoaded, nil
}

// Save overwrites the file with snap. The write is not atomic.
func (s *JSONFile) Save(snap model.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating ledger dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}

	s.logger.Debug().Str("path", s.path).Int("expenses", len(snap.Expenses)).Msg("ledger saved")
	return nil
}

func decodeSnapshot(data []byte) (model.Snapshot, error) {
	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Snapshot{}, fmt.Errorf("parsing ledger: %w", err)
	}
	if rec.InitialBudget == nil {
		return model.Snapshot{}, errors.New("parsing ledger: missing initial_budget")
	}
	if rec.Expenses == nil {
		return model.Snapshot{}, errors.New("parsing ledger: missing expenses")
	}

	budget, err := decimal.NewFromString(rec.InitialBudget.String())
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("parsing initial_budget %q: %w", rec.InitialBudget.String(), err)
	}

	expenses := make([]model.Expense, 0, len(*rec.Expenses))
	for i, fe := range *rec.Expenses {
		amount, err := decimal.NewFromString(fe.Amount.String())
		if err != nil {
			return model.Snapshot{}, fmt.Errorf("parsing expense %d amount %q: %w", i, fe.Amount.String(), err)
		}
		expenses = append(expenses, model.Expense{Description: fe.Description, Amount: amount})
	}

	return model.Snapshot{InitialBudget: budget, Expenses: expenses}, nil
}

func encodeSnapshot(snap model.Snapshot) ([]byte, error) {
	budget := json.Number(snap.InitialBudget.String())
	expenses := make([]fileExpense, len(snap.Expenses))
	for i, e := range snap.Expenses {
		expenses[i] = fileExpense{Description: e.Description, Amount: json.Number(e.Amount.String())}
	}

	data, err := json.MarshalIndent(fileRecord{InitialBudget: &budget, Expenses: &expenses}, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling ledger: %w", err)
	}
	return append(data, '\n'), nil
}

// Load reads the JSON ledger at path. A missing or malformed file yields a
// zero budget and no expenses.
func Load(path string) (decimal.Decimal, []model.Expense) {
	snap := NewJSONFile(path, defaultLogger).Load()
	return snap.InitialBudget, snap.Expenses
}

// Save writes initialBudget and expenses to the JSON ledger at path,
// replacing its content.
func Save(path string, initialBudget decimal.Decimal, expenses []model.Expense) error {
	return NewJSONFile(path, defaultLogger).Save(model.Snapshot{InitialBudget: initialBudget, Expenses: expenses})
}
