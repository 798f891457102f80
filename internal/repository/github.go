package repository

import "context"

// ReleaseRepository defines the interface for publishing releases on the
// hosting platform.

type ReleaseRepository interface {
	CreateRelease(ctx context.Context, tag, name, body string) (string, error)
}
