package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budget-cli/budget/internal/config"
	"github.com/budget-cli/budget/internal/gitops"
	"github.com/budget-cli/budget/internal/ledger"
	"github.com/budget-cli/budget/internal/shell"
)

func newInitCommand(opts *globalOptions) *cobra.Command {
	var budget string
	var initGit bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and an empty ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := shell.ParseAmount(budget)
			if err != nil {
				return fmt.Errorf("parsing --budget: %w", err)
			}
			return runInit(cmd, opts, amount, initGit)
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "0", "initial budget")
	cmd.Flags().BoolVar(&initGit, "git", false, "initialize a git repository and commit the ledger on every save")

	return cmd
}

func runInit(cmd *cobra.Command, opts *globalOptions, budget decimal.Decimal, initGit bool) error {
	if _, err := os.Stat(opts.configPath); err == nil {
		return fmt.Errorf("%s already exists", opts.configPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	a, err := opts.open(cmd)
	if err != nil {
		return err
	}

	if initGit {
		if !gitops.Available() {
			return errors.New("--git requires git on PATH")
		}
		dir := filepath.Dir(a.cfg.Storage.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating ledger dir: %w", err)
		}
		if !gitops.IsRepo(dir) {
			if err := gitops.Init(dir); err != nil {
				return err
			}
		}
		a.cfg.Git.AutoCommit = true
	}

	if dir := filepath.Dir(opts.configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	if err := config.Save(opts.configPath, a.cfg); err != nil {
		return err
	}

	if err := a.Save(ledger.New(budget).Snapshot()); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized budget of %s at %s\n", budget, a.cfg.Storage.Path)
	return nil
}
