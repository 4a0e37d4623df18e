package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// cliEnv runs dryrack commands in-process against isolated directories.
type cliEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

type cliResult struct {
	stdout string
	stderr string
	code   int
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	for _, key := range []string{
		"DRYRACK_BACKEND", "DRYRACK_DATA_DIR", "DRYRACK_CONFIG_DIR",
		"DRYRACK_STORAGE_KEY", "DRYRACK_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	return &cliEnv{
		t:         t,
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
	}
}

// exec runs args with --config-dir and --data-dir prepended.
func (e *cliEnv) exec(args ...string) cliResult {
	e.t.Helper()
	all := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	return e.execRaw(all...)
}

// execRaw runs args unchanged.
func (e *cliEnv) execRaw(args ...string) cliResult {
	e.t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := run(root, args, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func (e *cliEnv) mustExec(args ...string) string {
	e.t.Helper()
	res := e.exec(args...)
	require.Equal(e.t, exitSuccess, res.code, "dryrack %v\nstdout: %s\nstderr: %s", args, res.stdout, res.stderr)
	return res.stdout
}

func (e *cliEnv) listJSON() []types.Item {
	e.t.Helper()
	var items []types.Item
	require.NoError(e.t, json.Unmarshal([]byte(e.mustExec("--json", "list")), &items))
	return items
}

func (e *cliEnv) writeConfig(content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(e.t, os.WriteFile(filepath.Join(e.configDir, configFileExt), []byte(content), 0o644))
}

var ignoreID = cmpopts.IgnoreFields(types.Item{}, "ID")

func TestAddPrintsItems(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustExec("add", "Socks", "Wool Sweater")
	assert.Equal(t, "Socks: 1\nWool Sweater: 1\n", out)

	// A duplicate name in any case leaves the rack unchanged.
	out = env.mustExec("add", "socks")
	assert.Equal(t, "Socks: 1\n", out)

	want := []types.Item{
		{Name: "Socks", Quantity: 1},
		{Name: "Wool Sweater", Quantity: 1},
	}
	if diff := cmp.Diff(want, env.listJSON(), ignoreID); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestAddBlankNameIsIgnored(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustExec("add", "   ")
	assert.Empty(t, out)
	assert.Empty(t, env.listJSON())
}

func TestIncDec(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec("add", "Jeans", "Towels")

	assert.Equal(t, "Jeans: 2\n", env.mustExec("inc", "jeans"))
	assert.Equal(t, "Jeans: 5\n", env.mustExec("inc", "JEANS", "3"))
	assert.Equal(t, "Jeans: 4\n", env.mustExec("dec", "Jeans"))

	// Dropping below one takes the item off the rack.
	assert.Equal(t, "Taken: Towels\n", env.mustExec("dec", "Towels", "5"))

	want := []types.Item{{Name: "Jeans", Quantity: 4}}
	if diff := cmp.Diff(want, env.listJSON(), ignoreID); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestIncByID(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec("add", "Socks")
	items := env.listJSON()
	require.Len(t, items, 1)

	assert.Equal(t, "Socks: 2\n", env.mustExec("inc", items[0].ID))
}

func TestIncHugeCountKeepsItem(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec("add", "Socks")

	maxInt := strconv.Itoa(math.MaxInt)
	assert.Equal(t, "Socks: "+maxInt+"\n", env.mustExec("inc", "socks", maxInt))
	assert.Equal(t, "Socks: "+maxInt+"\n", env.mustExec("inc", "socks"))

	items := env.listJSON()
	require.Len(t, items, 1)
	assert.Equal(t, math.MaxInt, items[0].Quantity)
}

func TestQuantityErrors(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec("add", "Socks")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown item", []string{"inc", "Hats"}, `item "Hats" not found`},
		{"zero count", []string{"inc", "Socks", "0"}, "count must be a positive integer"},
		{"negative count", []string{"dec", "Socks", "-2"}, "count must be a positive integer"},
		{"non-numeric count", []string{"dec", "Socks", "many"}, "count must be a positive integer"},
		{"missing ref", []string{"take"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.exec(tt.args...)
			assert.Equal(t, exitUserError, res.code)
			assert.Contains(t, res.stderr, tt.wantErr)
		})
	}

	// Failed commands leave the rack untouched.
	want := []types.Item{{Name: "Socks", Quantity: 1}}
	if diff := cmp.Diff(want, env.listJSON(), ignoreID); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestTakeAndTakeAll(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec("add", "Socks", "Jeans", "Towels")
	env.mustExec("inc", "Jeans", "4")

	assert.Equal(t, "Taken: Jeans\n", env.mustExec("take", "jeans"))
	assert.Equal(t, "All taken (2 items)\n", env.mustExec("take-all"))
	assert.Equal(t, noItemsText+"\n", env.mustExec("list"))

	// The stored value is an empty array, not a missing key.
	data, err := os.ReadFile(filepath.Join(env.dataDir, types.DefaultStorageKey+".json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestListTable(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec("add", "Socks", "Bedsheets")
	env.mustExec("inc", "Socks", "2")

	out := env.mustExec("list")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"NAME", "QTY", "ID"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Socks", "3"}, strings.Fields(lines[2])[:2])
	assert.Equal(t, []string{"Bedsheets", "1"}, strings.Fields(lines[3])[:2])
	assert.Equal(t, "Total: 2 item(s)", lines[4])
}

func TestListJSONEmpty(t *testing.T) {
	env := newCLIEnv(t)
	assert.JSONEq(t, "[]", env.mustExec("--json", "list"))
}

func TestSuggest(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec("add", "socks", "T-SHIRTS", "Raincoat")

	out := env.mustExec("suggest")
	assert.Equal(t, "Jeans\nUnderwear\nTowels\nShirts\nPants\nBedsheets\n", out)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(env.mustExec("--json", "suggest")), &names))
	assert.Len(t, names, 6)
}

func TestBackendsPersistAcrossInvocations(t *testing.T) {
	for _, backend := range []string{types.BackendFile, types.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			env := newCLIEnv(t)
			env.mustExec("--backend", backend, "add", "Socks")
			env.mustExec("--backend", backend, "inc", "Socks")

			out := env.mustExec("--backend", backend, "--json", "list")
			var items []types.Item
			require.NoError(t, json.Unmarshal([]byte(out), &items))
			want := []types.Item{{Name: "Socks", Quantity: 2}}
			if diff := cmp.Diff(want, items, ignoreID); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMemoryBackendForgets(t *testing.T) {
	env := newCLIEnv(t)
	env.mustExec("--backend", types.BackendMemory, "add", "Socks")
	assert.Equal(t, noItemsText+"\n", env.mustExec("--backend", types.BackendMemory, "list"))
}

func TestUnknownBackend(t *testing.T) {
	env := newCLIEnv(t)
	res := env.exec("--backend", "tape", "list")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "unknown backend")
}

func TestStorageFailureIsSystemError(t *testing.T) {
	env := newCLIEnv(t)
	// A regular file where the data directory should be.
	require.NoError(t, os.WriteFile(env.dataDir, []byte("x"), 0o644))

	res := env.exec("add", "Socks")
	assert.Equal(t, exitSysError, res.code)
	assert.Contains(t, res.stderr, "open storage")
}

func TestConfigFileSelectsBackend(t *testing.T) {
	env := newCLIEnv(t)
	env.writeConfig("backend: sqlite\nstorage_key: rack-test\n")

	env.mustExec("add", "Socks")
	assert.FileExists(t, filepath.Join(env.dataDir, "dryrack.db"))
	assert.NoFileExists(t, filepath.Join(env.dataDir, "rack-test.json"))

	// The flag wins over the file.
	env.mustExec("--backend", "file", "add", "Jeans")
	assert.FileExists(t, filepath.Join(env.dataDir, "rack-test.json"))
}

func TestDataDirPrecedence(t *testing.T) {
	env := newCLIEnv(t)
	fromConfig := filepath.Join(t.TempDir(), "from-config")
	fromEnv := filepath.Join(t.TempDir(), "from-env")
	env.writeConfig("data_dir: " + fromConfig + "\n")

	res := env.execRaw("--config-dir", env.configDir, "add", "Socks")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(fromConfig, types.DefaultStorageKey+".json"))

	t.Setenv("DRYRACK_DATA_DIR", fromEnv)
	res = env.execRaw("--config-dir", env.configDir, "add", "Socks")
	require.Equal(t, exitSuccess, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(fromEnv, types.DefaultStorageKey+".json"))

	env.mustExec("add", "Socks")
	assert.FileExists(t, filepath.Join(env.dataDir, types.DefaultStorageKey+".json"))
}

func TestMalformedConfigIsUserError(t *testing.T) {
	env := newCLIEnv(t)
	env.writeConfig("backend: [file\n")

	res := env.exec("list")
	assert.Equal(t, exitUserError, res.code)
	assert.Contains(t, res.stderr, "load config")
}

func TestInit(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustExec("--backend", "sqlite", "init")
	assert.Contains(t, out, "dryrack initialized")
	assert.FileExists(t, filepath.Join(env.dataDir, "dryrack.db"))

	data, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.Contains(t, string(data), "data_dir: "+env.dataDir)

	// Init does not overwrite an existing config.
	env.mustExec("--backend", "file", "init")
	again, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))

	// Later commands pick up the written backend.
	env.mustExec("add", "Socks")
	assert.NoFileExists(t, filepath.Join(env.dataDir, types.DefaultStorageKey+".json"))
}

func TestVersion(t *testing.T) {
	env := newCLIEnv(t)
	// version skips configuration, so a broken config does not matter.
	env.writeConfig("backend: [file\n")

	out := env.mustExec("version")
	assert.Equal(t, "dryrack v"+Version+"\nmodule: "+modulePath+"\n", out)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitUserError, exitCode(userError("bad %s", "input")))
	assert.Equal(t, exitSysError, exitCode(sysError(os.ErrPermission)))
	assert.Equal(t, exitUserError, exitCode(os.ErrInvalid))
}
