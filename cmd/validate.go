package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/verman-cli/verman/internal/domain"
	"github.com/verman-cli/verman/internal/usecase"
)

// NewValidateCmd creates the validate command
func NewValidateCmd(uc *usecase.ValidateTagUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the recorded version against the most recent tag",
		Long: `Derive a version from the most recent repository tag and check it
against the version recorded in the project files.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}
			if rec.Matches {
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded version %s matches tag state\n", rec.Current)
				return nil
			}
			if rec.Derived == nil {
				return fmt.Errorf(
					"%w: no tags found to reconcile against recorded version %s",
					domain.ErrTagMismatch, rec.Current)
			}
			return fmt.Errorf(
				"%w: tag-derived version %s (from %s), recorded version %s",
				domain.ErrTagMismatch, rec.Derived, rec.Described, rec.Current)
		},
	}
}
