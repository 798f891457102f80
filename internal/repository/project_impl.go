package repository

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const recordedFilePermissions = 0644

// moduleVersionPattern is the fixed textual form of the module constant.
var moduleVersionPattern = regexp.MustCompile(`(?m)^__version__\s*=\s*"(.*)"`)

// projectRepository reads and writes the recorded version in the manifest
// and the module constant file.
type projectRepository struct {
	fs           afero.Fs
	manifestPath string
	versionFile  string
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(fs afero.Fs, manifestPath, versionFile string) ProjectRepository {
	return &projectRepository{
		fs:           fs,
		manifestPath: manifestPath,
		versionFile:  versionFile,
	}
}

// ManifestVersion reads tool.poetry.version from the manifest.
func (r *projectRepository) ManifestVersion(_ context.Context) (string, error) {
	doc, err := r.readManifest()
	if err != nil {
		return "", err
	}
	version, ok := manifestVersionField(doc)
	if !ok {
		return "", fmt.Errorf("no tool.poetry.version field in %s", r.manifestPath)
	}
	return version, nil
}

// ModuleVersion reads the __version__ constant from the module file.
func (r *projectRepository) ModuleVersion(_ context.Context) (string, error) {
	data, err := afero.ReadFile(r.fs, r.versionFile)
	if err != nil {
		return "", fmt.Errorf("failed to read version file %s: %w", r.versionFile, err)
	}
	matches := moduleVersionPattern.FindSubmatch(data)
	if matches == nil {
		return "", fmt.Errorf("no __version__ constant in %s", r.versionFile)
	}
	return string(matches[1]), nil
}

// WriteVersion writes the version into both recorded locations. The module
// file is rewritten by the fixed textual pattern, the manifest structurally.
// Both writes go through a temp file and rename.
func (r *projectRepository) WriteVersion(_ context.Context, version string) error {
	moduleData, err := r.renderModuleFile(version)
	if err != nil {
		return err
	}
	manifestData, err := r.renderManifest(version)
	if err != nil {
		return err
	}
	if err := r.writeAtomic(r.versionFile, moduleData); err != nil {
		return err
	}
	return r.writeAtomic(r.manifestPath, manifestData)
}

// RecordedFiles returns the paths of the two recorded locations.
func (r *projectRepository) RecordedFiles() []string {
	return []string{r.manifestPath, r.versionFile}
}

func (r *projectRepository) renderModuleFile(version string) ([]byte, error) {
	data, err := afero.ReadFile(r.fs, r.versionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read version file %s: %w", r.versionFile, err)
	}
	if !moduleVersionPattern.Match(data) {
		return nil, fmt.Errorf("no __version__ constant in %s", r.versionFile)
	}
	replacement := fmt.Sprintf("__version__ = %q", version)
	return moduleVersionPattern.ReplaceAll(data, []byte(replacement)), nil
}

func (r *projectRepository) renderManifest(version string) ([]byte, error) {
	doc, err := r.readManifest()
	if err != nil {
		return nil, err
	}
	if err := setManifestVersionField(doc, version); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", r.manifestPath, err)
	}
	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return out, nil
}

func (r *projectRepository) readManifest() (map[string]any, error) {
	data, err := afero.ReadFile(r.fs, r.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", r.manifestPath, err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", r.manifestPath, err)
	}
	return doc, nil
}

func (r *projectRepository) writeAtomic(path string, data []byte) error {
	tempFile := path + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, recordedFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := r.fs.Rename(tempFile, path); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			// Temp file cleanup is best effort
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func manifestVersionField(doc map[string]any) (string, bool) {
	tool, ok := doc["tool"].(map[string]any)
	if !ok {
		return "", false
	}
	poetry, ok := tool["poetry"].(map[string]any)
	if !ok {
		return "", false
	}
	version, ok := poetry["version"].(string)
	return version, ok
}

func setManifestVersionField(doc map[string]any, version string) error {
	tool, ok := doc["tool"].(map[string]any)
	if !ok {
		return fmt.Errorf("no [tool] table")
	}
	poetry, ok := tool["poetry"].(map[string]any)
	if !ok {
		return fmt.Errorf("no [tool.poetry] table")
	}
	poetry["version"] = version
	return nil
}
