package usecase

import (
	"context"
	"fmt"

	"github.com/verman-cli/verman/internal/domain"
	"github.com/verman-cli/verman/internal/repository"
)

// TagReconciliation is the outcome of comparing the tag-derived version with
// the recorded one.
type TagReconciliation struct {
	Current   domain.Version
	Derived   *domain.Version // nil when the repository has no tags
	Described string
	Matches   bool
}

// ValidateTagUseCase reconciles the most recent repository tag against the
// recorded version.

type ValidateTagUseCase struct {
	Projects repository.ProjectRepository
	Git      repository.GitRepository
}

// Execute runs the use case.
func (uc *ValidateTagUseCase) Execute(ctx context.Context) (*TagReconciliation, error) {
	current, err := (&GetVersionUseCase{Projects: uc.Projects}).Execute(ctx)
	if err != nil {
		return nil, err
	}
	described, err := uc.Git.Describe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to describe repository: %w", err)
	}
	if described == "" {
		// Nothing to reconcile against; there is no matching tag.
		return &TagReconciliation{Current: current, Matches: false}, nil
	}
	derived, err := domain.DeriveTagVersion(described)
	if err != nil {
		return nil, err
	}
	return &TagReconciliation{
		Current:   current,
		Derived:   &derived,
		Described: described,
		Matches:   domain.Reconcile(derived, current),
	}, nil
}
