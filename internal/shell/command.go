package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Command is a menu choice.
type Command int

const (
	CommandInvalid Command = iota
	CommandAdd
	CommandShow
	CommandSave
	CommandExit
)

var commandKeys = map[string]Command{
	"1": CommandAdd,
	"2": CommandShow,
	"3": CommandSave,
	"4": CommandExit,
}

// ParseCommand maps a menu selection to a Command.
func ParseCommand(s string) Command {
	if c, ok := commandKeys[strings.TrimSpace(s)]; ok {
		return c
	}
	return CommandInvalid
}

func (c Command) String() string {
	switch c {
	case CommandAdd:
		return "add"
	case CommandShow:
		return "show"
	case CommandSave:
		return "save"
	case CommandExit:
		return "exit"
	default:
		return "invalid"
	}
}

// ErrInvalidAmount is returned by ParseAmount for input that is not a number.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses user input as a decimal amount. Any sign is accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
