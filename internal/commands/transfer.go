package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/budget-cli/budget/internal/ledger"
	"github.com/budget-cli/budget/internal/model"
)

func newExportCommand(opts *globalOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write expenses as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			expenses := a.loadLedger().Expenses()

			if out == "" {
				if err := ledger.WriteExpenses(cmd.OutOrStdout(), expenses); err != nil {
					return fmt.Errorf("exporting expenses: %w", err)
				}
				return nil
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			return writeExpensesAndClose(f, expenses)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}

// writeExpensesAndClose writes expenses to wc and closes it. A failed close is
// reported, since buffered data may not have reached the disk.
func writeExpensesAndClose(wc io.WriteCloser, expenses []model.Expense) error {
	if err := ledger.WriteExpenses(wc, expenses); err != nil {
		wc.Close()
		return fmt.Errorf("exporting expenses: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing export: %w", err)
	}
	return nil
}

func newImportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Append expenses from a CSV file and save the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			expenses, err := ledger.ReadExpenses(f)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}

			a, err := opts.open(cmd)
			if err != nil {
				return err
			}

			l := a.loadLedger()
			for _, e := range expenses {
				l.AddExpense(e.Description, e.Amount)
			}
			if err := a.Save(l.Snapshot()); err != nil {
				return fmt.Errorf("saving ledger: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses, Remaining Budget: %s\n", len(expenses), l.Remaining())
			return nil
		},
	}
}
