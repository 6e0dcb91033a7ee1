package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/budget-cli/budget/internal/config"
	"github.com/budget-cli/budget/internal/gitops"
	"github.com/budget-cli/budget/internal/ledger"
	"github.com/budget-cli/budget/internal/model"
	"github.com/budget-cli/budget/internal/storage"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	file       string
	backend    string
	verbose    bool
}

// app is the per-invocation wiring: resolved config, logger and store.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	store  storage.Store
}

func newLogger(cmd *cobra.Command, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().Timestamp().
		Logger()
}

// resolveConfig layers budget.yaml, the environment and command-line flags.
func (o *globalOptions) resolveConfig() (*config.Config, error) {
	config.LoadEnvFile()

	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg)
	if o.file != "" {
		cfg.Storage.Path = o.file
	}
	if o.backend != "" {
		cfg.Storage.Backend = storage.Backend(o.backend)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *globalOptions) open(cmd *cobra.Command) (*app, error) {
	logger := newLogger(cmd, o.verbose)
	storage.SetLogger(logger)

	cfg, err := o.resolveConfig()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	logger.Debug().
		Str("config", o.configPath).
		Str("backend", string(cfg.Storage.Backend)).
		Str("path", cfg.Storage.Path).
		Msg("store opened")

	return &app{cfg: cfg, logger: logger, store: store}, nil
}

// loadLedger reads the stored ledger. It never fails; see storage.Store.
func (a *app) loadLedger() *ledger.Ledger {
	return ledger.FromSnapshot(a.store.Load())
}

// Save writes snap and, when configured, commits the ledger file.
func (a *app) Save(snap model.Snapshot) error {
	if err := a.store.Save(snap); err != nil {
		return err
	}
	return a.commit(fmt.Sprintf("budget: %d expenses, balance %s",
		len(snap.Expenses), snap.InitialBudget.Sub(ledger.Total(snap.Expenses))))
}

func (a *app) commit(message string) error {
	if !a.cfg.Git.AutoCommit {
		return nil
	}
	dir := filepath.Dir(a.cfg.Storage.Path)
	if !gitops.Available() || !gitops.IsRepo(dir) {
		a.logger.Warn().Str("dir", dir).Msg("auto_commit is on but the ledger is not in a git repository")
		return nil
	}

	hash, err := gitops.CommitFile(a.cfg.Storage.Path, message, a.cfg.Git.AuthorName, a.cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("committing ledger: %w", err)
	}
	if hash != "" {
		a.logger.Debug().Str("commit", hash).Msg("ledger committed")
	}
	return nil
}
