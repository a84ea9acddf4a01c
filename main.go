// Package main is the entry point for the gh2ado CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/danielolaszy/gh2ado/cmd"
	"github.com/danielolaszy/gh2ado/internal/logging"
)

// main executes the root command and exits non-zero on failure, which marks
// the workflow step as failed.
func main() {
	logging.Debug("starting gh2ado", "version", cmd.Version)

	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
