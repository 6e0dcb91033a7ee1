package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budget-cli/budget/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "budget",
		Short:   "Personal budget tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "budget.yaml", "config file")
	flags.StringVar(&opts.file, "file", "", "ledger file (overrides config)")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: json or sqlite (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newAddCommand(opts),
		newShowCommand(opts),
		newShellCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
	)

	return rootCmd
}
