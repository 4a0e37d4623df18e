package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/dryrack/internal/paths"
	"github.com/mesh-intelligence/dryrack/internal/rack"
	"github.com/mesh-intelligence/dryrack/internal/storage"
	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// logFileName receives log output while the interactive screen owns the
// terminal.
const logFileName = "dryrack.log"

// setup resolves configuration and builds the logger. It runs before every
// command except version.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return userError("load config: %w", err)
	}

	s, err := resolveSettings(v, configDir, a.flags)
	if err != nil {
		return sysError(err)
	}
	a.settings = s

	outputs := []string{"stderr"}
	if isInteractive(cmd) {
		if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
			return sysError(fmt.Errorf("create data dir: %w", err))
		}
		outputs = []string{filepath.Join(s.dataDir, logFileName)}
	}

	logger, err := newLogger(s.logLevel, outputs)
	if err != nil {
		return userError("build logger: %w", err)
	}
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

// isInteractive reports whether cmd runs the full-screen UI.
func isInteractive(cmd *cobra.Command) bool {
	return cmd.Name() == "ui" || !cmd.HasParent()
}

// newLogger builds a production zap logger at the given level writing to
// outputs.
func newLogger(level string, outputs []string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = outputs
	config.ErrorOutputPaths = outputs
	config.Sampling = nil
	return config.Build()
}

// openStore opens the configured backend and hydrates a store from it.
// The caller must Close the store.
func (a *app) openStore() (*rack.Store, error) {
	cfg := a.settings.backendConfig()
	backend, err := storage.Open(cfg)
	if isConfigError(err) {
		return nil, userError("open storage: %w", err)
	}
	if err != nil {
		return nil, sysError(fmt.Errorf("open storage: %w", err))
	}
	a.logger.Debug("storage attached",
		zap.String("backend", cfg.Backend), zap.String("data_dir", cfg.DataDir))

	return rack.Open(backend,
		rack.WithLogger(a.logger),
		rack.WithKey(a.settings.storageKey),
	), nil
}

// isConfigError reports whether err comes from an invalid backend
// configuration rather than from the storage itself.
func isConfigError(err error) bool {
	return errors.Is(err, types.ErrBackendEmpty) ||
		errors.Is(err, types.ErrBackendUnknown) ||
		errors.Is(err, types.ErrRedisAddrEmpty)
}

// withStore runs fn against a freshly opened store and closes it after.
// Storage errors from fn are reported as system errors.
func (a *app) withStore(fn func(*rack.Store) error) (err error) {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = sysError(fmt.Errorf("close storage: %w", cerr))
		}
	}()
	return fn(store)
}

// resolveRef finds the item named by ref or returns a user error.
func resolveRef(store *rack.Store, ref string) (string, error) {
	item, ok := store.Lookup(ref)
	if !ok {
		return "", userError("item %q not found", ref)
	}
	return item.ID, nil
}
