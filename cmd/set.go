package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/verman-cli/verman/internal/usecase"
)

// NewSetCmd creates the set command
func NewSetCmd(uc *usecase.SetVersionUseCase) *cobra.Command {
	var (
		setVersion    string
		setBump       string
		setPrerelease string
		setMetadata   string
		setOverwrite  bool
		setForce      bool
		setClear      bool
		setShort      bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Resolve and optionally persist a new project version",
		Long: `Resolve a target version from an explicit string, the most recent
repository tag (--version tag), or the currently recorded version; bump it,
apply prerelease/metadata overrides, and persist it with --overwrite.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.SetVersionInput{
				Version:   setVersion,
				Bump:      setBump,
				Overwrite: setOverwrite,
				Force:     setForce,
				Clear:     setClear,
			}
			// Distinguish an empty override from no override at all.
			if cmd.Flags().Changed("prerelease") {
				in.Prerelease = &setPrerelease
			}
			if cmd.Flags().Changed("metadata") {
				in.Metadata = &setMetadata
			}
			version, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			if setShort {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "New version: %s\n", version)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&setVersion, "version", "",
		"Explicit target version, or the keyword 'tag' to derive it from the most recent tag")
	cmd.Flags().StringVar(&setBump, "bump", "", "Bump the resolved version (major, minor or patch)")
	cmd.Flags().StringVarP(&setPrerelease, "prerelease", "p", "", "Set the prerelease identifier")
	cmd.Flags().StringVarP(&setMetadata, "metadata", "m", "", "Set the build metadata")
	cmd.Flags().BoolVarP(&setOverwrite, "overwrite", "o", false,
		"Write the result into the manifest and the module constant")
	cmd.Flags().BoolVarP(&setForce, "force", "f", false,
		"Allow downgrades and replacing existing prerelease/metadata")
	cmd.Flags().BoolVarP(&setClear, "clear", "c", false,
		"Clear prerelease and metadata while bumping")
	cmd.Flags().BoolVarP(&setShort, "short", "s", false, "Print only the version string")
	return cmd
}
