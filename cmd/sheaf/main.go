// Package main is the entry point for the sheaf CLI.
package main

import (
	"os"

	"github.com/thoreinstein/sheaf/cmd/sheaf/commands"
	"github.com/thoreinstein/sheaf/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(errors.ExitCode(err))
	}
}
