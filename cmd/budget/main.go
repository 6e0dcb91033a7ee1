package main

import (
	"os"

	"github.com/budget-cli/budget/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
