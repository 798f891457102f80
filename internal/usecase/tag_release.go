package usecase

import (
	"context"
	"fmt"

	"github.com/verman-cli/verman/internal/domain"
	"github.com/verman-cli/verman/internal/repository"
	"go.uber.org/zap"
)

// TagReleaseInput carries the resolved CLI flags for the tag command.
type TagReleaseInput struct {
	Force   bool
	Push    bool
	Release bool
	Message string
}

// TagReleaseResult reports what the tag command did.
type TagReleaseResult struct {
	Tag        string
	Created    bool
	ReleaseURL string
}

// TagReleaseUseCase tags the current recorded version once reconciliation
// says the repository has moved past the previous release.

type TagReleaseUseCase struct {
	Projects repository.ProjectRepository
	Git      repository.GitRepository
	Releases repository.ReleaseRepository
	Log      *zap.Logger
}

// Execute runs the use case.
func (uc *TagReleaseUseCase) Execute(ctx context.Context, in TagReleaseInput) (*TagReleaseResult, error) {
	rec, err := (&ValidateTagUseCase{Projects: uc.Projects, Git: uc.Git}).Execute(ctx)
	if err != nil {
		return nil, err
	}
	if rec.Matches {
		// Tag state already reflects the recorded version; nothing to do.
		return &TagReleaseResult{Tag: rec.Current.String(), Created: false}, nil
	}
	current := rec.Current
	if current.HasExtras() && !in.Force {
		return nil, fmt.Errorf(
			"%w: %s, use --force to tag it anyway",
			domain.ErrPrereleaseTagRejected, current)
	}
	tag := current.String()
	exists, err := uc.Git.TagExists(ctx, tag)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("tag %s already exists", tag)
	}
	msg := in.Message
	if msg == "" {
		msg = "Release " + tag
	}
	if err := uc.Git.CreateTag(ctx, tag, msg); err != nil {
		return nil, err
	}
	uc.Log.Info("tag created", zap.String("tag", tag))
	result := &TagReleaseResult{Tag: tag, Created: true}
	if in.Push {
		if err := uc.Git.PushTag(ctx, tag); err != nil {
			return result, err
		}
		uc.Log.Info("tag pushed", zap.String("tag", tag))
	}
	if in.Release {
		url, err := uc.Releases.CreateRelease(ctx, tag, tag, msg)
		if err != nil {
			return result, err
		}
		result.ReleaseURL = url
		uc.Log.Info("release created", zap.String("tag", tag), zap.String("url", url))
	}
	return result, nil
}
