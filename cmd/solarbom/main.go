package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"solarbom/internal/errors"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError writes err to stderr along with any suggested fixes.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var be *errors.BomError
	if stderrors.As(err, &be) && len(be.SuggestedFixes) > 0 {
		fmt.Fprintln(os.Stderr, "\nSuggested fixes:")
		for _, fix := range be.SuggestedFixes {
			if fix.Command != "" {
				fmt.Fprintf(os.Stderr, "  $ %s  # %s\n", fix.Command, fix.Description)
			} else {
				fmt.Fprintf(os.Stderr, "  - %s\n", fix.Description)
			}
		}
	}
}
