// Package main is the entry point for the goborg CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thoreinstein/goborg/cmd/goborg/commands"
	cliErrors "github.com/thoreinstein/goborg/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	code := cliErrors.ExitFailure
	var exitErr *cliErrors.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		// A bare exit code carries no message; the command already
		// reported the details.
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", exitErr.Suggestion)
		}
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(code)
}
