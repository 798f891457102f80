package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/verman-cli/verman/internal/repository"
)

// Mock for ProjectRepository
type mockProjectRepository struct{ mock.Mock }

func (m *mockProjectRepository) ManifestVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockProjectRepository) ModuleVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockProjectRepository) WriteVersion(ctx context.Context, version string) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}
func (m *mockProjectRepository) RecordedFiles() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// Mock for GitRepository
type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) LatestTag(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitRepository) CommitsSinceTag(ctx context.Context, tag string) (int, error) {
	args := m.Called(ctx, tag)
	return args.Int(0), args.Error(1)
}
func (m *mockGitRepository) HeadCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}
func (m *mockGitRepository) CreateTag(ctx context.Context, tag, msg string) error {
	args := m.Called(ctx, tag, msg)
	return args.Error(0)
}
func (m *mockGitRepository) PushTag(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}
func (m *mockGitRepository) Describe(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Mock for SnapshotRepository
type mockSnapshotRepository struct{ mock.Mock }

func (m *mockSnapshotRepository) Save(ctx context.Context, snap *repository.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}
func (m *mockSnapshotRepository) Load(ctx context.Context, sessionID string) (*repository.Snapshot, error) {
	args := m.Called(ctx, sessionID)
	if snap, ok := args.Get(0).(*repository.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSnapshotRepository) LoadLatest(ctx context.Context) (*repository.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*repository.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSnapshotRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// Mock for ReleaseRepository
type mockReleaseRepository struct{ mock.Mock }

func (m *mockReleaseRepository) CreateRelease(ctx context.Context, tag, name, body string) (string, error) {
	args := m.Called(ctx, tag, name, body)
	return args.String(0), args.Error(1)
}
