package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/verman-cli/verman/internal/usecase"
)

// NewUndoCmd creates the undo command
func NewUndoCmd(uc *usecase.UndoUseCase) *cobra.Command {
	var undoSession string
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Restore the recorded files from the last snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := uc.Execute(cmd.Context(), undoSession)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored version %s (session %s)\n",
				snap.OldVersion, snap.SessionID)
			return nil
		},
	}
	cmd.Flags().StringVar(&undoSession, "session", "", "Snapshot session to restore (defaults to the most recent)")
	return cmd
}
