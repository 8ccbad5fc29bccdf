// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsSecretFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anthropic-api-key"), []byte("sk-test-123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-key"), []byte("   \n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	secrets, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", secrets["anthropic-api-key"])
	assert.NotContains(t, secrets, ".hidden")
	assert.NotContains(t, secrets, "empty-key")
	assert.NotContains(t, secrets, "subdir")
}

func TestLoadMissingDirectory(t *testing.T) {
	secrets, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestGetPrecedence(t *testing.T) {
	loaded := map[string]string{"anthropic-api-key": "from-file"}

	assert.Equal(t, "explicit", Get(loaded, "anthropic-api-key", "explicit"))
	assert.Equal(t, "from-file", Get(loaded, "anthropic-api-key", ""))

	t.Setenv("ANTHROPIC_API_KEY", "from-env")
	assert.Equal(t, "from-env", Get(map[string]string{}, "anthropic-api-key", ""))

	assert.Equal(t, "", Get(map[string]string{}, "missing-key", ""))
}
