package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/verman-cli/verman/internal/usecase"
)

// NewGetCmd creates the get command
func NewGetCmd(uc *usecase.GetVersionUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the recorded project version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
