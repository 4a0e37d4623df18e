package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/dryrack/internal/paths"
	"github.com/mesh-intelligence/dryrack/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix namespaces environment overrides, e.g. DRYRACK_BACKEND,
	// DRYRACK_REDIS_ADDR.
	envPrefix = "DRYRACK"

	// Config keys.
	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyStorageKey    = "storage_key"
	cfgKeyLogLevel      = "log_level"
	cfgKeyRedisAddr     = "redis.addr"
	cfgKeyRedisPassword = "redis.password"
	cfgKeyRedisDB       = "redis.db"
	cfgKeyRedisTimeout  = "redis.timeout"

	defaultBackend  = types.BackendFile
	defaultLogLevel = "info"
)

// settings is the resolved configuration for one invocation.
type settings struct {
	configDir  string
	dataDir    string
	backend    string
	storageKey string
	logLevel   string
	redis      types.RedisConfig
}

// backendConfig returns the Config passed to Backend.Attach.
func (s settings) backendConfig() types.Config {
	return types.Config{
		Backend: s.backend,
		DataDir: s.dataDir,
		Redis:   s.redis,
	}
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults and environment overrides apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyStorageKey, types.DefaultStorageKey)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyRedisAddr, "localhost:6379")
	v.SetDefault(cfgKeyRedisDB, 0)
	v.SetDefault(cfgKeyRedisTimeout, types.DefaultRedisTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for _, key := range []string{cfgKeyDataDir, cfgKeyRedisPassword} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveSettings merges flags over the loaded configuration.
func resolveSettings(v *viper.Viper, configDir string, flags rootFlags) (settings, error) {
	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := v.GetString(cfgKeyBackend)
	if flags.backend != "" {
		backend = flags.backend
	}

	s := settings{
		configDir:  configDir,
		dataDir:    dataDir,
		backend:    backend,
		storageKey: v.GetString(cfgKeyStorageKey),
		logLevel:   v.GetString(cfgKeyLogLevel),
		redis: types.RedisConfig{
			Addr:     v.GetString(cfgKeyRedisAddr),
			Password: v.GetString(cfgKeyRedisPassword),
			DB:       v.GetInt(cfgKeyRedisDB),
			Timeout:  v.GetDuration(cfgKeyRedisTimeout),
		},
	}
	if flags.verbose {
		s.logLevel = "debug"
	}
	return s, nil
}
