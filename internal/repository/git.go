package repository

import "context"

// GitRepository defines the interface for Git operations.

type GitRepository interface {
	LatestTag(ctx context.Context) (string, error)
	CommitsSinceTag(ctx context.Context, tag string) (int, error)
	HeadCommit(ctx context.Context) (string, error)
	TagExists(ctx context.Context, tag string) (bool, error)
	CreateTag(ctx context.Context, tag, msg string) error
	PushTag(ctx context.Context, tag string) error
	Describe(ctx context.Context) (string, error)
}
