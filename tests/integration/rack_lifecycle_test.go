package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRackLifecycle(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			env := NewTestEnv(t, backend)

			env.MustRun("init")
			assert.Empty(t, env.ListItems())

			env.MustRun("add", "Socks", "Jeans", "Towels")
			env.MustRun("add", "SOCKS")
			env.MustRun("inc", "jeans", "2")
			env.MustRun("dec", "towels")

			items := env.ListItems()
			require.Len(t, items, 2)
			assert.Equal(t, "Socks", items[0].Name)
			assert.Equal(t, 1, items[0].Quantity)
			assert.Equal(t, "Jeans", items[1].Name)
			assert.Equal(t, 3, items[1].Quantity)

			res := env.MustRun("take", items[0].ID)
			assert.Equal(t, "Taken: Socks\n", res.Stdout)

			res = env.MustRun("take-all")
			assert.Equal(t, "All taken (1 items)\n", res.Stdout)
			assert.Empty(t, env.ListItems())
		})
	}
}

func TestExitCodes(t *testing.T) {
	env := NewTestEnv(t, "file")

	res := env.Run("inc", "Hats")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, `item "Hats" not found`)

	res = env.Run("bogus")
	assert.Equal(t, 1, res.ExitCode)

	require.NoError(t, os.WriteFile(filepath.Join(env.TempDir, "blocked"), []byte("x"), 0o644))
	res = env.RunWith(nil,
		"--config-dir", env.Config,
		"--data-dir", filepath.Join(env.TempDir, "blocked"),
		"add", "Socks")
	assert.Equal(t, 2, res.ExitCode)
}

func TestMalformedStateStartsEmpty(t *testing.T) {
	env := NewTestEnv(t, "file")
	require.NoError(t, os.MkdirAll(env.DataDir, 0o755))
	path := filepath.Join(env.DataDir, "laundry-drying-items.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	assert.Empty(t, env.ListItems())

	env.MustRun("add", "Socks")
	items := env.ListItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Socks", items[0].Name)
}

func TestVersion(t *testing.T) {
	env := NewTestEnv(t, "file")
	res := env.MustRun("version")
	assert.Contains(t, res.Stdout, "dryrack v")
	assert.Contains(t, res.Stdout, "module: github.com/mesh-intelligence/dryrack")
}
