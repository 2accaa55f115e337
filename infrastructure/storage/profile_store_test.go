package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStore_EnsureProfile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "sessionStorage")
	store := NewProfileStore(root)

	dir, err := store.EnsureProfile("user_token_01")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "user_token_01"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// existing directories are kept as is
	marker := filepath.Join(dir, "Cookies")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0644))
	_, err = store.EnsureProfile("user_token_01")
	require.NoError(t, err)
	assert.FileExists(t, marker)
}

func TestProfileStore_ResetProfile(t *testing.T) {
	store := NewProfileStore(t.TempDir())

	dir, err := store.EnsureProfile("token")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cookies"), []byte("x"), 0644))

	require.NoError(t, store.ResetProfile("token"))
	assert.NoDirExists(t, dir)

	// resetting a missing profile is fine
	require.NoError(t, store.ResetProfile("token"))
}

func TestProfileStore_InvalidToken(t *testing.T) {
	store := NewProfileStore(t.TempDir())

	for _, token := range []string{"", ".", "..", "../escape", `a\b`} {
		_, err := store.EnsureProfile(token)
		assert.Error(t, err, token)
		assert.Error(t, store.ResetProfile(token), token)
	}
}
