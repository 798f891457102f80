package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/sethvargo/go-retry"
)

const (
	fetchRetryCount = 3
	fetchRetryDelay = 500 * time.Millisecond
	shortHashLen    = 7
)

// gitRepository is the implementation of the GitRepository interface.

type gitRepository struct {
	repo   *git.Repository
	remote string
}

// NewGitRepository opens the repository in the current directory.
func NewGitRepository(remote string) (GitRepository, error) {
	repo, err := git.PlainOpen(".")
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	if remote == "" {
		remote = "origin"
	}
	return &gitRepository{repo: repo, remote: remote}, nil
}

// fetchTags refreshes local tags from the remote, retrying transient
// transport failures with exponential backoff. A missing remote is not an
// error; local tags are sufficient.
func (r *gitRepository) fetchTags(ctx context.Context) {
	remote, err := r.repo.Remote(r.remote)
	if err != nil {
		return
	}
	backoff := retry.WithMaxRetries(fetchRetryCount, retry.NewExponential(fetchRetryDelay))
	//nolint:errcheck // local tags are sufficient when the remote is unreachable
	_ = retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := remote.FetchContext(ctx, &git.FetchOptions{
			RefSpecs: []config.RefSpec{
				config.RefSpec("+refs/tags/*:refs/tags/*"),
			},
			Auth: r.getAuth(),
		})
		if err == nil || err == git.NoErrAlreadyUpToDate {
			return nil
		}
		return retry.RetryableError(err)
	})
}

// LatestTag returns the most recent tag by commit time, or "" when the
// repository has no tags.
func (r *gitRepository) LatestTag(ctx context.Context) (string, error) {
	r.fetchTags(ctx)
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return "", fmt.Errorf("failed to get tags: %w", err)
	}
	var latestTag string
	var latestCommitTime time.Time
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		commit, err := r.resolveTagRefCommit(ref)
		if err != nil {
			return nil // Skip tags we cannot resolve
		}
		if commit.Committer.When.After(latestCommitTime) {
			latestCommitTime = commit.Committer.When
			latestTag = ref.Name().Short()
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("failed to iterate tags: %w", err)
	}
	return latestTag, nil
}

// resolveTagRefCommit resolves a tag reference (lightweight or annotated) to
// its commit.
func (r *gitRepository) resolveTagRefCommit(ref *plumbing.Reference) (*object.Commit, error) {
	if commit, err := r.repo.CommitObject(ref.Hash()); err == nil {
		return commit, nil
	}
	tagObj, err := r.repo.TagObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag %s: %w", ref.Name().Short(), err)
	}
	commit, err := r.repo.CommitObject(tagObj.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag target %s: %w", ref.Name().Short(), err)
	}
	return commit, nil
}

// CommitsSinceTag returns the number of commits between HEAD and the tag.
func (r *gitRepository) CommitsSinceTag(_ context.Context, tag string) (int, error) {
	tagRef, err := r.repo.Tag(tag)
	if err != nil {
		return 0, fmt.Errorf("failed to get tag %s: %w", tag, err)
	}
	tagCommit, err := r.resolveTagRefCommit(tagRef)
	if err != nil {
		return 0, err
	}
	head, err := r.repo.Head()
	if err != nil {
		return 0, fmt.Errorf("failed to get HEAD: %w", err)
	}
	commits, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, fmt.Errorf("failed to get commits: %w", err)
	}
	var count int
	err = commits.ForEach(func(c *object.Commit) error {
		if c.Hash == tagCommit.Hash {
			return storer.ErrStop
		}
		count++
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return 0, fmt.Errorf("failed to iterate commits: %w", err)
	}
	return count, nil
}

// HeadCommit returns the SHA of the current HEAD commit.
func (r *gitRepository) HeadCommit(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// TagExists checks if a tag exists.
func (r *gitRepository) TagExists(_ context.Context, tag string) (bool, error) {
	_, err := r.repo.Tag(tag)
	if err == git.ErrTagNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check tag %s: %w", tag, err)
	}
	return true, nil
}

// CreateTag creates an annotated tag at HEAD.
func (r *gitRepository) CreateTag(_ context.Context, tag, msg string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	_, err = r.repo.CreateTag(tag, head.Hash(), &git.CreateTagOptions{
		Message: msg,
		Tagger: &object.Signature{
			Name:  tagSignatureName(),
			Email: tagSignatureEmail(),
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

// PushTag pushes a tag to the remote.
func (r *gitRepository) PushTag(ctx context.Context, tag string) error {
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag))},
		Auth:       r.getAuth(),
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to push tag %s: %w", tag, err)
	}
	return nil
}

// Describe reports the repository position relative to the latest tag in
// git-describe form: the bare tag at a release commit, otherwise
// "<tag>-<count>-g<short-hash>". Returns "" when no tags exist.
func (r *gitRepository) Describe(ctx context.Context) (string, error) {
	tag, err := r.LatestTag(ctx)
	if err != nil {
		return "", err
	}
	if tag == "" {
		return "", nil
	}
	count, err := r.CommitsSinceTag(ctx, tag)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return tag, nil
	}
	head, err := r.HeadCommit(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-g%s", tag, count, head[:shortHashLen]), nil
}

// getAuth returns token authentication for pushes and fetches, if configured.
func (r *gitRepository) getAuth() *http.BasicAuth {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("VERMAN_GITHUB_TOKEN")
	}
	if token == "" {
		return nil
	}
	// Use x-access-token as username for GitHub token authentication
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: token,
	}
}

func tagSignatureName() string {
	if name := os.Getenv("GIT_AUTHOR_NAME"); name != "" {
		return name
	}
	return "verman"
}

func tagSignatureEmail() string {
	if email := os.Getenv("GIT_AUTHOR_EMAIL"); email != "" {
		return email
	}
	return "verman@localhost"
}
