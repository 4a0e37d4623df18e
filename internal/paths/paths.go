// Package paths resolves where dryrack keeps its configuration and data.
//
// Both directories default to the platform's per-user locations:
//
//	Linux:   $XDG_CONFIG_HOME/dryrack, $XDG_DATA_HOME/dryrack
//	         (fallbacks ~/.config/dryrack, ~/.local/share/dryrack)
//	macOS:   ~/Library/Application Support/dryrack
//	Windows: %APPDATA%/dryrack
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the directory name used under the platform base dirs.
const AppDirName = "dryrack"

// EnvConfigDir overrides the configuration directory. The data directory
// is overridden through configuration (DRYRACK_DATA_DIR or data_dir).
const EnvConfigDir = "DRYRACK_CONFIG_DIR"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgBase describes one XDG base directory: its environment variable and
// the home-relative fallback.
type xdgBase struct {
	env      string
	fallback []string
}

var (
	xdgConfig = xdgBase{env: "XDG_CONFIG_HOME", fallback: []string{".config"}}
	xdgData   = xdgBase{env: "XDG_DATA_HOME", fallback: []string{".local", "share"}}
)

// appDir returns <base>/dryrack for the given XDG base on Linux and
// <UserConfigDir>/dryrack elsewhere.
func appDir(base xdgBase) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppDirName), nil
	}

	if v := os.Getenv(base.env); v != "" {
		return filepath.Join(v, AppDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, base.fallback...)
	return filepath.Join(append(parts, AppDirName)...), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
func DefaultConfigDir() (string, error) {
	return appDir(xdgConfig)
}

// DefaultDataDir returns the platform-specific default data directory.
func DefaultDataDir() (string, error) {
	return appDir(xdgData)
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > DRYRACK_CONFIG_DIR > DefaultConfigDir().
// Explicit values are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > configured > DefaultDataDir(). configured is the data_dir
// setting after environment overrides have been applied.
func ResolveDataDir(flag, configured string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configured != "" {
		return filepath.Abs(configured)
	}
	return DefaultDataDir()
}
