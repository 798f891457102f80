package repository

import (
	"context"
	"errors"
	"fmt"
)

var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

type githubNoopRepository struct {
	owner string
	repo  string
}

func NewGithubNoopRepository(owner, repo string) ReleaseRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func (r *githubNoopRepository) CreateRelease(_ context.Context, tag, _, _ string) (string, error) {
	return "", fmt.Errorf("%w: unable to create release %s for %s/%s",
		ErrGithubTokenRequired, tag, r.owner, r.repo)
}
