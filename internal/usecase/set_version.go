package usecase

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/verman-cli/verman/internal/domain"
	"github.com/verman-cli/verman/internal/repository"
	"go.uber.org/zap"
)

// TagKeyword is the --version argument that derives the target from the most
// recent repository tag instead of an explicit string.
const TagKeyword = "tag"

// SetVersionInput carries the resolved CLI flags for the set command.
type SetVersionInput struct {
	Version    string // explicit version string, TagKeyword, or empty
	Bump       string // "", "major", "minor" or "patch"
	Prerelease *string
	Metadata   *string
	Overwrite  bool
	Force      bool
	Clear      bool
}

// SetVersionUseCase resolves, validates and optionally persists a new
// recorded version. All validation happens before any write.

type SetVersionUseCase struct {
	Projects  repository.ProjectRepository
	Git       repository.GitRepository
	Snapshots repository.SnapshotRepository
	Fs        repository.FileSystemRepository
	Log       *zap.Logger
}

// Execute runs the use case and returns the resolved version.
func (uc *SetVersionUseCase) Execute(ctx context.Context, in SetVersionInput) (domain.Version, error) {
	current, err := (&GetVersionUseCase{Projects: uc.Projects}).Execute(ctx)
	if err != nil {
		return domain.Version{}, err
	}
	target, err := uc.resolveTarget(ctx, in, current)
	if err != nil {
		return domain.Version{}, err
	}
	if in.Bump != "" {
		kind, err := domain.ParseBumpKind(in.Bump)
		if err != nil {
			return domain.Version{}, err
		}
		if target, err = target.Bump(kind, in.Clear); err != nil {
			return domain.Version{}, err
		}
	}
	if in.Prerelease != nil || in.Metadata != nil {
		if target.HasExtras() && !in.Force {
			return domain.Version{}, fmt.Errorf(
				"%w: use --force to replace prerelease/metadata on %s",
				domain.ErrOverwriteRejected, target)
		}
		pre, meta := stringValue(in.Prerelease), stringValue(in.Metadata)
		if err := domain.ValidateExtras(pre, meta); err != nil {
			return domain.Version{}, err
		}
		target = target.WithExtras(pre, meta)
	}
	if in.Overwrite {
		if err := uc.persist(ctx, current, target); err != nil {
			return domain.Version{}, err
		}
	}
	return target, nil
}

// resolveTarget picks the working version: explicit string, tag-derived, or
// the current recorded version. Explicitly resolved targets may not move
// backwards without force.
func (uc *SetVersionUseCase) resolveTarget(
	ctx context.Context,
	in SetVersionInput,
	current domain.Version,
) (domain.Version, error) {
	if in.Version == "" {
		return current, nil
	}
	var target domain.Version
	var err error
	if in.Version == TagKeyword {
		described, describeErr := uc.Git.Describe(ctx)
		if describeErr != nil {
			return domain.Version{}, fmt.Errorf("failed to describe repository: %w", describeErr)
		}
		if described == "" {
			return domain.Version{}, fmt.Errorf("repository has no tags to derive a version from")
		}
		target, err = domain.DeriveTagVersion(described)
	} else {
		target, err = domain.Parse(in.Version)
	}
	if err != nil {
		return domain.Version{}, err
	}
	if target.Less(current) && !in.Force {
		return domain.Version{}, fmt.Errorf(
			"%w: %s < %s, use --force to force this change",
			domain.ErrDowngradeRejected, target, current)
	}
	return target, nil
}

// persist snapshots the recorded files and writes the new version into both
// locations.
func (uc *SetVersionUseCase) persist(ctx context.Context, current, target domain.Version) error {
	files := make(map[string]string)
	for _, path := range uc.Projects.RecordedFiles() {
		data, err := afero.ReadFile(uc.Fs, path)
		if err != nil {
			return fmt.Errorf("failed to snapshot %s: %w", path, err)
		}
		files[path] = string(data)
	}
	snap := repository.NewSnapshot(current.String(), target.String(), files)
	if err := uc.Snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if err := uc.Projects.WriteVersion(ctx, target.String()); err != nil {
		return err
	}
	uc.Log.Info("recorded version updated",
		zap.String("old", current.String()),
		zap.String("new", target.String()),
		zap.String("session", snap.SessionID))
	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
