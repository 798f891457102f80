package repository

import "context"

// ProjectRepository defines the interface for the two recorded version
// locations: the manifest field and the module constant.

type ProjectRepository interface {
	ManifestVersion(ctx context.Context) (string, error)
	ModuleVersion(ctx context.Context) (string, error)
	WriteVersion(ctx context.Context, version string) error
	RecordedFiles() []string
}
