package repository

import (
	"context"
	"sync"
)

// lazyGitRepository defers opening the repository until a git operation is
// actually invoked, so commands that never touch git keep working outside a
// git work tree.
type lazyGitRepository struct {
	remote string
	once   sync.Once
	repo   GitRepository
	err    error
}

// NewLazyGitRepository returns a GitRepository that opens the repository in
// the current directory on first use.
func NewLazyGitRepository(remote string) GitRepository {
	return &lazyGitRepository{remote: remote}
}

func (r *lazyGitRepository) open() (GitRepository, error) {
	r.once.Do(func() {
		r.repo, r.err = NewGitRepository(r.remote)
	})
	return r.repo, r.err
}

func (r *lazyGitRepository) LatestTag(ctx context.Context) (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}
	return repo.LatestTag(ctx)
}

func (r *lazyGitRepository) CommitsSinceTag(ctx context.Context, tag string) (int, error) {
	repo, err := r.open()
	if err != nil {
		return 0, err
	}
	return repo.CommitsSinceTag(ctx, tag)
}

func (r *lazyGitRepository) HeadCommit(ctx context.Context) (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}
	return repo.HeadCommit(ctx)
}

func (r *lazyGitRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	repo, err := r.open()
	if err != nil {
		return false, err
	}
	return repo.TagExists(ctx, tag)
}

func (r *lazyGitRepository) CreateTag(ctx context.Context, tag, msg string) error {
	repo, err := r.open()
	if err != nil {
		return err
	}
	return repo.CreateTag(ctx, tag, msg)
}

func (r *lazyGitRepository) PushTag(ctx context.Context, tag string) error {
	repo, err := r.open()
	if err != nil {
		return err
	}
	return repo.PushTag(ctx, tag)
}

func (r *lazyGitRepository) Describe(ctx context.Context) (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}
	return repo.Describe(ctx)
}
