package integration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDirFromEnv(t *testing.T) {
	env := NewTestEnv(t, "sqlite")

	res := env.RunWith([]string{"DRYRACK_CONFIG_DIR=" + env.Config},
		"--data-dir", env.DataDir, "add", "Socks")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.FileExists(t, filepath.Join(env.DataDir, "dryrack.db"))
}

func TestBackendFromEnv(t *testing.T) {
	env := NewTestEnv(t, "sqlite")

	res := env.RunWith([]string{"DRYRACK_BACKEND=file"},
		"--config-dir", env.Config, "--data-dir", env.DataDir, "add", "Socks")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.FileExists(t, filepath.Join(env.DataDir, "laundry-drying-items.json"))
	assert.NoFileExists(t, filepath.Join(env.DataDir, "dryrack.db"))
}

func TestDataDirFromConfig(t *testing.T) {
	env := NewTestEnv(t, "file")
	dataDir := filepath.Join(env.TempDir, "configured")
	env.WriteConfig("backend: file\ndata_dir: " + dataDir + "\n")

	res := env.RunWith(nil, "--config-dir", env.Config, "add", "Socks")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.FileExists(t, filepath.Join(dataDir, "laundry-drying-items.json"))
}

func TestStorageKeyFromConfig(t *testing.T) {
	env := NewTestEnv(t, "file")
	env.WriteConfig("backend: file\nstorage_key: bathroom-rack\n")

	env.MustRun("add", "Towels")
	assert.FileExists(t, filepath.Join(env.DataDir, "bathroom-rack.json"))
}

func TestUnknownBackendInConfig(t *testing.T) {
	env := NewTestEnv(t, "floppy")

	res := env.Run("list")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "unknown backend")
}
