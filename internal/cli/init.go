package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/dryrack/internal/rack"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend    string      `yaml:"backend"`
	DataDir    string      `yaml:"data_dir,omitempty"`
	StorageKey string      `yaml:"storage_key"`
	LogLevel   string      `yaml:"log_level"`
	Redis      redisConfig `yaml:"redis"`
}

type redisConfig struct {
	Addr    string `yaml:"addr"`
	DB      int    `yaml:"db"`
	Timeout string `yaml:"timeout"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize dryrack configuration and storage",
		Long: `Init creates the config and data directories, writes config.yaml
with the resolved settings if it does not exist yet, and checks that the
storage backend can be attached.

Running init again leaves an existing config.yaml untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	s := a.settings

	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(s.configDir, configFileExt)
	written, err := writeConfigIfMissing(configPath, s)
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if written {
		a.logger.Info("config written", zap.String("path", configPath))
	}

	// Opening the store attaches the backend, which creates the data
	// directory and any schema.
	if err := a.withStore(func(*rack.Store) error { return nil }); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config: %s\n", configPath)
	fmt.Fprintf(out, "data:   %s (%s backend)\n", s.dataDir, s.backend)
	_, err = fmt.Fprintln(out, "dryrack initialized")
	return err
}

// writeConfigIfMissing creates config.yaml from s if the file does not
// exist. It reports whether it wrote the file.
func writeConfigIfMissing(path string, s settings) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := configFile{
		Backend:    s.backend,
		DataDir:    s.dataDir,
		StorageKey: s.storageKey,
		LogLevel:   s.logLevel,
		Redis: redisConfig{
			Addr:    s.redis.Addr,
			DB:      s.redis.DB,
			Timeout: s.redis.GetTimeout().String(),
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
