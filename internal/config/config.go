package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/viper"
)

type Config struct {
	ManifestPath string `mapstructure:"manifest_path"`
	VersionFile  string `mapstructure:"version_file"`
	Remote       string `mapstructure:"remote"`
	StateDir     string `mapstructure:"state_dir"`
	GithubToken  string `mapstructure:"github_token"`
	GithubOwner  string `mapstructure:"github_owner"`
	GithubRepo   string `mapstructure:"github_repo"`
	Debug        bool   `mapstructure:"debug"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ManifestPath: "pyproject.toml",
		VersionFile:  "__init__.py",
		Remote:       "origin",
		StateDir:     ".verman-state",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ManifestPath == "" {
		return fmt.Errorf("manifest_path cannot be empty")
	}
	if c.VersionFile == "" {
		return fmt.Errorf("version_file cannot be empty")
	}
	for _, p := range []string{c.ManifestPath, c.VersionFile, c.StateDir} {
		if strings.Contains(p, "..") {
			return fmt.Errorf("path contains invalid traversal: %s", p)
		}
	}
	// GitHub token is optional - only validate if provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
	}
	if c.GithubOwner != "" || c.GithubRepo != "" {
		if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
			return fmt.Errorf("invalid github configuration: %w", err)
		}
	}
	return nil
}

// ValidateForGitHubOperations validates that GitHub settings are present for
// operations that require them
func (c *Config) ValidateForGitHubOperations() error {
	if c.GithubToken == "" {
		return fmt.Errorf("github_token is required for GitHub operations")
	}
	if c.GithubOwner == "" || c.GithubRepo == "" {
		return fmt.Errorf("github_owner and github_repo are required for GitHub operations")
	}
	return c.Validate()
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".verman")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	// Configure environment variables
	v.SetEnvPrefix("VERMAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Explicitly bind environment variables
	// BindEnv allows multiple env vars - it will check them in order
	bindings := map[string][]string{
		"manifest_path": {"VERMAN_MANIFEST_PATH"},
		"version_file":  {"VERMAN_VERSION_FILE"},
		"remote":        {"VERMAN_REMOTE"},
		"state_dir":     {"VERMAN_STATE_DIR"},
		"github_token":  {"GITHUB_TOKEN", "VERMAN_GITHUB_TOKEN"},
		"github_owner":  {"GITHUB_OWNER", "VERMAN_GITHUB_OWNER"},
		"github_repo":   {"GITHUB_REPO", "VERMAN_GITHUB_REPO"},
		"debug":         {"VERMAN_DEBUG"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("manifest_path", defaults.ManifestPath)
	v.SetDefault("version_file", defaults.VersionFile)
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("state_dir", defaults.StateDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, err
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// populateRepositoryDefaults fills GithubOwner/GithubRepo from the CI
// repository slug or, failing that, the origin remote of the local clone.
// Missing values are left empty; GitHub operations are optional.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" {
		if owner, repo, err := splitRepositorySlug(slug); err == nil {
			if cfg.GithubOwner == "" {
				cfg.GithubOwner = owner
			}
			if cfg.GithubRepo == "" {
				cfg.GithubRepo = repo
			}
			return nil
		}
	}
	repo, err := git.PlainOpen(".")
	if err != nil {
		return nil
	}
	remoteName := cfg.Remote
	if remoteName == "" {
		remoteName = "origin"
	}
	remote, err := repo.Remote(remoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	owner, name, err := parseGitRemoteURL(remote.Config().URLs[0])
	if err != nil {
		return nil
	}
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = owner
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = name
	}
	return nil
}

func splitRepositorySlug(slug string) (string, string, error) {
	idx := strings.Index(slug, "/")
	if idx <= 0 || idx >= len(slug)-1 {
		return "", "", fmt.Errorf("invalid repository slug: %s", slug)
	}
	return slug[:idx], slug[idx+1:], nil
}

// parseGitRemoteURL extracts owner and repository name from https, ssh, or
// plain path remote URLs.
func parseGitRemoteURL(url string) (string, string, error) {
	trimmed := strings.TrimSuffix(url, ".git")
	if idx := strings.Index(trimmed, "://"); idx != -1 {
		trimmed = trimmed[idx+3:]
	} else if idx := strings.LastIndex(trimmed, ":"); idx != -1 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.ReplaceAll(trimmed, "\\", "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("cannot determine owner and repository from remote: %s", url)
	}
	owner := parts[len(parts)-2]
	repo := parts[len(parts)-1]
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("cannot determine owner and repository from remote: %s", url)
	}
	return owner, repo, nil
}
