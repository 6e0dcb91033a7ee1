// Package shell runs the interactive budget menu.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/budget-cli/budget/internal/ledger"
	"github.com/budget-cli/budget/internal/model"
)

// Saver persists a ledger snapshot.
type Saver interface {
	Save(snap model.Snapshot) error
}

// Shell reads menu choices from in and writes prompts and reports to out.
type Shell struct {
	in           *bufio.Reader
	readErr      error
	out          io.Writer
	ledger       *ledger.Ledger
	saver        Saver
	promptBudget bool
}

// Options configures a Shell.
type Options struct {
	// PromptBudget asks for the initial budget before the menu.
	PromptBudget bool
}

// New creates a Shell over l. Saves go through saver.
func New(in io.Reader, out io.Writer, l *ledger.Ledger, saver Saver, opts Options) *Shell {
	return &Shell{
		in:           bufio.NewReader(in),
		out:          out,
		ledger:       l,
		saver:        saver,
		promptBudget: opts.PromptBudget,
	}
}

// Run loops until the user exits or input ends. Only a failed save or a read
// error is returned.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, "Welcome to the Budget App")

	if s.promptBudget {
		if !s.readBudget() {
			return s.finish()
		}
	}

	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "What would you like to do?")
		fmt.Fprintln(s.out, "1. Add an expense")
		fmt.Fprintln(s.out, "2. Show budget details")
		fmt.Fprintln(s.out, "3. Save")
		fmt.Fprintln(s.out, "4. Exit")

		choice, ok := s.prompt("Enter your choice (1/2/3/4): ")
		if !ok {
			return s.finish()
		}

		switch ParseCommand(choice) {
		case CommandAdd:
			if !s.addExpense() {
				return s.finish()
			}
		case CommandShow:
			WriteDetails(s.out, s.ledger)
		case CommandSave:
			if err := s.saver.Save(s.ledger.Snapshot()); err != nil {
				return fmt.Errorf("saving ledger: %w", err)
			}
			fmt.Fprintln(s.out, "Budget saved.")
		case CommandExit:
			return s.finish()
		default:
			fmt.Fprintln(s.out, "Invalid choice, please choose again.")
		}
	}
}

func (s *Shell) finish() error {
	fmt.Fprintln(s.out, "Exiting Budget App. Goodbye!")
	if s.readErr != nil {
		return fmt.Errorf("reading input: %w", s.readErr)
	}
	return nil
}

// prompt writes msg and reads one line of any length. ok is false at end of
// input or on a read error.
func (s *Shell) prompt(msg string) (line string, ok bool) {
	fmt.Fprint(s.out, msg)
	line, err := s.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if !errors.Is(err, io.EOF) {
			s.readErr = err
		}
		fmt.Fprintln(s.out)
		return "", false
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true
}

func (s *Shell) readBudget() bool {
	for {
		line, ok := s.prompt("Please enter your initial budget: ")
		if !ok {
			return false
		}
		budget, err := ParseAmount(line)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid amount, please try again.")
			continue
		}
		s.ledger.SetInitialBudget(budget)
		return true
	}
}

func (s *Shell) addExpense() bool {
	description, ok := s.prompt("Enter expense description: ")
	if !ok {
		return false
	}
	line, ok := s.prompt("Enter expense amount: ")
	if !ok {
		return false
	}
	amount, err := ParseAmount(line)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid amount, expense not added.")
		return true
	}
	s.ledger.AddExpense(description, amount)
	fmt.Fprintf(s.out, "Added expense: %s, Amount: %s\n", description, amount)
	return true
}

// WriteDetails writes the budget, every expense, the total spent and the
// remaining balance.
func WriteDetails(w io.Writer, l *ledger.Ledger) {
	fmt.Fprintf(w, "Total Budget: %s\n", l.InitialBudget())
	fmt.Fprintln(w, "Expenses:")
	for _, e := range l.Expenses() {
		fmt.Fprintf(w, "- %s: %s\n", e.Description, e.Amount)
	}
	fmt.Fprintf(w, "Total Spent: %s\n", l.TotalSpent())
	fmt.Fprintf(w, "Remaining Budget: %s\n", l.Remaining())
}
