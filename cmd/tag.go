package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/verman-cli/verman/internal/usecase"
)

// NewTagCmd creates the tag command
func NewTagCmd(uc *usecase.TagReleaseUseCase) *cobra.Command {
	var (
		tagForce   bool
		tagPush    bool
		tagRelease bool
		tagMessage string
	)
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag the repository with the recorded version",
		Long: `Create a repository tag named after the recorded version. When the most
recent tag already reconciles with the recorded version, no tag is created.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := uc.Execute(cmd.Context(), usecase.TagReleaseInput{
				Force:   tagForce,
				Push:    tagPush,
				Release: tagRelease,
				Message: tagMessage,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !result.Created {
				fmt.Fprintf(out, "Version %s already matches the tag state, nothing to do\n", result.Tag)
				return nil
			}
			fmt.Fprintf(out, "Created tag %s\n", result.Tag)
			if result.ReleaseURL != "" {
				fmt.Fprintf(out, "Release: %s\n", result.ReleaseURL)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&tagForce, "force", "f", false,
		"Tag even when the recorded version carries prerelease or metadata")
	cmd.Flags().BoolVar(&tagPush, "push", false, "Push the tag to the configured remote")
	cmd.Flags().BoolVar(&tagRelease, "release", false, "Create a GitHub release for the tag")
	cmd.Flags().StringVar(&tagMessage, "message", "", "Annotation message for the tag")
	return cmd
}
