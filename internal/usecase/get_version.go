package usecase

import (
	"context"
	"fmt"

	"github.com/verman-cli/verman/internal/domain"
	"github.com/verman-cli/verman/internal/repository"
)

// GetVersionUseCase reads the recorded project version from both locations
// and verifies they agree.

type GetVersionUseCase struct {
	Projects repository.ProjectRepository
}

// Execute runs the use case.
func (uc *GetVersionUseCase) Execute(ctx context.Context) (domain.Version, error) {
	manifestVersion, err := uc.Projects.ManifestVersion(ctx)
	if err != nil {
		return domain.Version{}, fmt.Errorf("failed to read manifest version: %w", err)
	}
	moduleVersion, err := uc.Projects.ModuleVersion(ctx)
	if err != nil {
		return domain.Version{}, fmt.Errorf("failed to read module version: %w", err)
	}
	if manifestVersion != moduleVersion {
		return domain.Version{}, fmt.Errorf(
			"%w: please correct this manually (manifest: %s, module: %s)",
			domain.ErrVersionMismatch, manifestVersion, moduleVersion)
	}
	return domain.Parse(moduleVersion)
}
