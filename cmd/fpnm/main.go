// Package main is the entry point for the fpnm CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fp-node-manager/fpnm/cmd/fpnm/commands"
	"github.com/fp-node-manager/fpnm/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	exitErr := errors.Classify(err)
	if !commands.IsSilent(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr)
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
		}
	}
	os.Exit(exitErr.Code)
}
