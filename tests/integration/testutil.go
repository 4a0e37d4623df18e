// Package integration provides end-to-end tests that drive the built
// dryrack binary.
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce   sync.Once
	buildTmpDir string
	dryrackBin  string
	buildErr    error
)

// ensureBinary builds the dryrack binary once per test run and returns
// its path.
func ensureBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		buildTmpDir, buildErr = os.MkdirTemp("", "dryrack-it-*")
		if buildErr != nil {
			return
		}
		root, err := findProjectRoot()
		if err != nil {
			buildErr = err
			return
		}
		binPath := filepath.Join(buildTmpDir, "dryrack")
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/dryrack")
		cmd.Dir = root
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		buildErr = cmd.Run()
		if buildErr == nil {
			dryrackBin = binPath
		}
	})
	if buildErr != nil {
		t.Fatalf("build dryrack binary: %v", buildErr)
	}
	return dryrackBin
}

// findProjectRoot walks up from the working directory until it finds go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// cleanEnv returns os.Environ() with all DRYRACK_* and XDG_* variables
// removed, giving subprocesses a clean baseline.
func cleanEnv() []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "DRYRACK_") || strings.HasPrefix(e, "XDG_") {
			continue
		}
		env = append(env, e)
	}
	return env
}

// TestEnv provides an isolated environment with its own config and data
// directories.
type TestEnv struct {
	t       *testing.T
	bin     string
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment. backend is written
// to config.yaml.
func NewTestEnv(t *testing.T, backend string) *TestEnv {
	t.Helper()
	bin := ensureBinary(t)

	tempDir := t.TempDir()
	env := &TestEnv{
		t:       t,
		bin:     bin,
		TempDir: tempDir,
		Config:  filepath.Join(tempDir, "config"),
		DataDir: filepath.Join(tempDir, "data"),
	}
	env.WriteConfig("backend: " + backend + "\n")
	return env
}

// WriteConfig replaces config.yaml in the environment's config directory.
func (e *TestEnv) WriteConfig(content string) {
	e.t.Helper()
	if err := os.MkdirAll(e.Config, 0o755); err != nil {
		e.t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.Config, "config.yaml"), []byte(content), 0o644); err != nil {
		e.t.Fatalf("write config: %v", err)
	}
}

// CmdResult holds the result of a dryrack command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes dryrack with --config-dir and --data-dir pointing at the
// environment.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()
	all := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	return e.RunWith(nil, all...)
}

// RunWith executes dryrack with args unchanged and extra environment
// variables added to a clean environment.
func (e *TestEnv) RunWith(extraEnv []string, args ...string) CmdResult {
	e.t.Helper()
	cmd := exec.Command(e.bin, args...)
	cmd.Env = append(cleanEnv(), extraEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.t.Fatalf("run dryrack: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return CmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}
}

// MustRun executes dryrack and fails the test on a non-zero exit.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	res := e.Run(args...)
	if res.ExitCode != 0 {
		e.t.Fatalf("dryrack %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, res.ExitCode, res.Stdout, res.Stderr)
	}
	return res
}

// Item mirrors the JSON form of a rack item.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ListItems runs "dryrack --json list" and decodes the result.
func (e *TestEnv) ListItems() []Item {
	e.t.Helper()
	res := e.MustRun("--json", "list")
	var items []Item
	if err := json.Unmarshal([]byte(res.Stdout), &items); err != nil {
		e.t.Fatalf("parse list output %q: %v", res.Stdout, err)
	}
	return items
}
