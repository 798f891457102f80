package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verman-cli/verman/internal/domain"
)

func TestGetVersionUseCase_Execute(t *testing.T) {
	t.Run("Should return the recorded version when both locations agree", func(t *testing.T) {
		projects := new(mockProjectRepository)
		uc := &GetVersionUseCase{Projects: projects}
		ctx := context.Background()
		projects.On("ManifestVersion", ctx).Return("1.2.3", nil)
		projects.On("ModuleVersion", ctx).Return("1.2.3", nil)
		version, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", version.String())
		projects.AssertExpectations(t)
	})
	t.Run("Should fail when the two locations disagree", func(t *testing.T) {
		projects := new(mockProjectRepository)
		uc := &GetVersionUseCase{Projects: projects}
		ctx := context.Background()
		projects.On("ManifestVersion", ctx).Return("1.2.3", nil)
		projects.On("ModuleVersion", ctx).Return("1.2.4", nil)
		_, err := uc.Execute(ctx)
		assert.ErrorIs(t, err, domain.ErrVersionMismatch)
		projects.AssertExpectations(t)
	})
	t.Run("Should fail when the recorded version is malformed", func(t *testing.T) {
		projects := new(mockProjectRepository)
		uc := &GetVersionUseCase{Projects: projects}
		ctx := context.Background()
		projects.On("ManifestVersion", ctx).Return("v1.2.3", nil)
		projects.On("ModuleVersion", ctx).Return("v1.2.3", nil)
		_, err := uc.Execute(ctx)
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	})
	t.Run("Should propagate manifest read errors", func(t *testing.T) {
		projects := new(mockProjectRepository)
		uc := &GetVersionUseCase{Projects: projects}
		ctx := context.Background()
		projects.On("ManifestVersion", ctx).Return("", assert.AnError)
		_, err := uc.Execute(ctx)
		assert.Error(t, err)
	})
}
