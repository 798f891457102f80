package cmd

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/verman-cli/verman/internal/domain"
	"github.com/verman-cli/verman/internal/repository"
	"github.com/verman-cli/verman/internal/usecase"
)

func recordedProject(t *testing.T, version string) repository.ProjectRepository {
	fs := afero.NewMemMapFs()
	manifest := fmt.Sprintf("[tool.poetry]\nname = \"demo\"\nversion = %q\n", version)
	module := fmt.Sprintf("__version__ = %q\n", version)
	require.NoError(t, afero.WriteFile(fs, "pyproject.toml", []byte(manifest), 0644))
	require.NoError(t, afero.WriteFile(fs, "__init__.py", []byte(module), 0644))
	return repository.NewProjectRepository(fs, "pyproject.toml", "__init__.py")
}

func TestValidateCmd(t *testing.T) {
	t.Run("Should report a match at the release commit", func(t *testing.T) {
		git := new(mockGitRepository)
		git.On("Describe", mock.Anything).Return("1.2.3", nil)
		cmd := NewValidateCmd(&usecase.ValidateTagUseCase{
			Projects: recordedProject(t, "1.2.3"),
			Git:      git,
		})
		var out bytes.Buffer
		cmd.SetOut(&out)
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "matches")
	})
	t.Run("Should reject a reconciliation failure as a tag mismatch", func(t *testing.T) {
		git := new(mockGitRepository)
		git.On("Describe", mock.Anything).Return("1.2.3-1-gabc1234", nil)
		cmd := NewValidateCmd(&usecase.ValidateTagUseCase{
			Projects: recordedProject(t, "1.2.3"),
			Git:      git,
		})
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		err := cmd.Execute()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTagMismatch)
		assert.NotErrorIs(t, err, domain.ErrVersionMismatch)
		assert.True(t, domain.IsValidationError(err))
	})
	t.Run("Should reject when the repository has no tags", func(t *testing.T) {
		git := new(mockGitRepository)
		git.On("Describe", mock.Anything).Return("", nil)
		cmd := NewValidateCmd(&usecase.ValidateTagUseCase{
			Projects: recordedProject(t, "1.2.3"),
			Git:      git,
		})
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		err := cmd.Execute()
		assert.ErrorIs(t, err, domain.ErrTagMismatch)
	})
}
