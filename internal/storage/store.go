// Package storage persists ledger snapshots.
//
// Loading never fails at the caller boundary: a missing, unreadable or
// malformed source yields the empty snapshot. The cause is recorded as an
// Outcome and logged, but is not returned to callers.
package storage

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/budget-cli/budget/internal/model"
)

// Store loads and saves a ledger snapshot.
type Store interface {
	Load() model.Snapshot
	Save(snap model.Snapshot) error
}

// Outcome classifies how a load attempt ended.
type Outcome int

const (
	OutcomeLoaded Outcome = iota
	OutcomeNotFound
	OutcomeUnreadable
	OutcomeMalformed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeUnreadable:
		return "unreadable"
	case OutcomeMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// defaultLogger is used by the package-level Load and Save. Silent until the
// application installs one with SetLogger.
var defaultLogger = zerolog.Nop()

// SetLogger sets the logger used by Load and Save.
func SetLogger(l zerolog.Logger) {
	defaultLogger = l
}

// Backend names a Store implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Backends lists the supported backends.
var Backends = []Backend{BackendJSON, BackendSQLite}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Open returns the Store for backend at path.
func Open(backend Backend, path string, logger zerolog.Logger) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONFile(path, logger), nil
	case BackendSQLite:
		return NewSQLite(path, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func emptySnapshot() model.Snapshot {
	return model.Snapshot{InitialBudget: decimal.Zero, Expenses: []model.Expense{}}
}

func logLoad(logger zerolog.Logger, path string, outcome Outcome, snap model.Snapshot, err error) {
	switch outcome {
	case OutcomeLoaded:
		logger.Debug().
			Str("path", path).
			Stringer("initial_budget", snap.InitialBudget).
			Int("expenses", len(snap.Expenses)).
			Msg("ledger loaded")
	case OutcomeNotFound:
		logger.Debug().Str("path", path).Msg("no ledger found, starting empty")
	default:
		logger.Warn().
			Err(err).
			Str("path", path).
			Str("outcome", outcome.String()).
			Msg("ignoring unusable ledger, starting empty")
	}
}
