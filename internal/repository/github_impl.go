package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v74/github"
	"github.com/verman-cli/verman/internal/config"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the ReleaseRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new ReleaseRepository with validation.
func NewGithubRepository(token, owner, repo string) (ReleaseRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubRepository{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// CreateRelease creates a GitHub release for an existing tag and returns its
// HTML URL.
func (r *githubRepository) CreateRelease(ctx context.Context, tag, name, body string) (string, error) {
	release, _, err := r.client.Repositories.CreateRelease(ctx, r.owner, r.repo, &github.RepositoryRelease{
		TagName: github.Ptr(tag),
		Name:    github.Ptr(name),
		Body:    github.Ptr(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create release for tag %s: %w", tag, err)
	}
	return release.GetHTMLURL(), nil
}
