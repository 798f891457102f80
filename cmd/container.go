package cmd

import (
	"github.com/spf13/afero"
	"github.com/verman-cli/verman/internal/config"
	"github.com/verman-cli/verman/internal/logger"
	"github.com/verman-cli/verman/internal/repository"
	"github.com/verman-cli/verman/internal/usecase"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config
	log *zap.Logger

	fsRepo       repository.FileSystemRepository
	gitRepo      repository.GitRepository
	projectRepo  repository.ProjectRepository
	snapshotRepo repository.SnapshotRepository
	releaseRepo  repository.ReleaseRepository
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, err
	}
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	// Opened lazily so get/set/undo keep working outside a git work tree.
	gitRepo := repository.NewLazyGitRepository(cfg.Remote)
	projectRepo := repository.NewProjectRepository(fsRepo, cfg.ManifestPath, cfg.VersionFile)
	snapshotRepo := repository.NewJSONSnapshotRepository(fsRepo, cfg.StateDir)

	// Release publishing is optional - fall back to a noop when no token is
	// configured so only tag --release fails.
	var releaseRepo repository.ReleaseRepository
	if cfg.GithubToken != "" && cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		releaseRepo, err = repository.NewGithubRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	} else {
		releaseRepo = repository.NewGithubNoopRepository(cfg.GithubOwner, cfg.GithubRepo)
	}

	return &container{
		cfg:          cfg,
		log:          log,
		fsRepo:       fsRepo,
		gitRepo:      gitRepo,
		projectRepo:  projectRepo,
		snapshotRepo: snapshotRepo,
		releaseRepo:  releaseRepo,
	}, nil
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(NewGetCmd(&usecase.GetVersionUseCase{Projects: c.projectRepo}))
	rootCmd.AddCommand(NewSetCmd(&usecase.SetVersionUseCase{
		Projects:  c.projectRepo,
		Git:       c.gitRepo,
		Snapshots: c.snapshotRepo,
		Fs:        c.fsRepo,
		Log:       c.log,
	}))
	rootCmd.AddCommand(NewValidateCmd(&usecase.ValidateTagUseCase{
		Projects: c.projectRepo,
		Git:      c.gitRepo,
	}))
	rootCmd.AddCommand(NewTagCmd(&usecase.TagReleaseUseCase{
		Projects: c.projectRepo,
		Git:      c.gitRepo,
		Releases: c.releaseRepo,
		Log:      c.log,
	}))
	rootCmd.AddCommand(NewUndoCmd(&usecase.UndoUseCase{
		Snapshots: c.snapshotRepo,
		Fs:        c.fsRepo,
		Log:       c.log,
	}))
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
