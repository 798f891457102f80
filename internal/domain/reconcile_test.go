package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTagVersion(t *testing.T) {
	t.Run("Should pass a clean release tag through", func(t *testing.T) {
		v, err := DeriveTagVersion("1.0.0")
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", v.String())
	})
	t.Run("Should rewrite the prerelease as post", func(t *testing.T) {
		v, err := DeriveTagVersion("1.0.0-rc.1")
		require.NoError(t, err)
		assert.Equal(t, "post.rc.1", v.Prerelease)
		assert.Equal(t, "1.0.0-post.rc.1", v.String())
	})
	t.Run("Should rewrite describe-style suffixes", func(t *testing.T) {
		v, err := DeriveTagVersion("1.0.0-4-gdeadbee")
		require.NoError(t, err)
		assert.Equal(t, "post.4-gdeadbee", v.Prerelease)
	})
	t.Run("Should reject a v-prefixed tag", func(t *testing.T) {
		_, err := DeriveTagVersion("v1.0.0")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestReconcile(t *testing.T) {
	t.Run("Should fail when the tag carries a prerelease and versions differ", func(t *testing.T) {
		tagDerived := Version{Major: 1, Prerelease: "rc.1"}
		current := Version{Major: 1}
		assert.False(t, Reconcile(tagDerived, current))
	})
	t.Run("Should pass when versions are equal", func(t *testing.T) {
		v := Version{Major: 1}
		assert.True(t, Reconcile(v, v))
	})
	t.Run("Should pass when the tag has no prerelease", func(t *testing.T) {
		tagDerived := Version{Major: 1}
		current := Version{Major: 2}
		assert.True(t, Reconcile(tagDerived, current))
	})
	t.Run("Should pass when derived and current match exactly", func(t *testing.T) {
		v := Version{Major: 1, Prerelease: "post.rc.1"}
		assert.True(t, Reconcile(v, v))
	})
}
