package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budget-cli/budget/internal/ledger"
	"github.com/budget-cli/budget/internal/shell"
)

func newAddCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record an expense and save the ledger",
		Long: "Record an expense and save the ledger.\n\n" +
			"Negative amounts must follow --, e.g. budget add refund -- -5",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := shell.ParseAmount(args[1])
			if err != nil {
				return err
			}

			a, err := opts.open(cmd)
			if err != nil {
				return err
			}

			l := a.loadLedger()
			l.AddExpense(args[0], amount)
			if err := a.Save(l.Snapshot()); err != nil {
				return fmt.Errorf("saving ledger: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added expense: %s, Amount: %s\n", args[0], amount)
			fmt.Fprintf(cmd.OutOrStdout(), "Remaining Budget: %s\n", l.Remaining())
			return nil
		},
	}
}

func newShowCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the budget, expenses, total spent and remaining balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			shell.WriteDetails(cmd.OutOrStdout(), a.loadLedger())
			return nil
		},
	}
}

func newShellCommand(opts *globalOptions) *cobra.Command {
	var fresh bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive budget menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}

			// Only an empty ledger, or --fresh, asks for a budget up front.
			l := ledger.New(decimal.Zero)
			if !fresh {
				l = a.loadLedger()
			}
			prompt := fresh || l.Snapshot().IsEmpty()

			sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), l, a, shell.Options{PromptBudget: prompt})
			return sh.Run()
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the stored ledger and start a new one (saved only on request)")

	return cmd
}
