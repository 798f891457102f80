package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "verman",
	Short: "A CLI tool for managing a project's recorded semantic version",
	Long: `verman parses, bumps and validates the project's semantic version,
keeps the manifest field and the module constant in sync, and reconciles
the recorded version against the repository's tags.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
