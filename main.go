package main

import (
	"fmt"
	"os"

	"github.com/verman-cli/verman/cmd"
	"github.com/verman-cli/verman/internal/domain"
)

func main() {
	if err := cmd.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize commands: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if domain.IsValidationError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
