package types

import (
	"errors"
	"slices"
	"time"
)

// DefaultStorageKey is the key the rack collection is persisted under.
const DefaultStorageKey = "laundry-drying-items"

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend string      `json:"backend" yaml:"backend"`
	DataDir string      `json:"data_dir" yaml:"data_dir"`
	Redis   RedisConfig `json:"redis" yaml:"redis"`
}

// RedisConfig holds connection parameters for the redis backend.
type RedisConfig struct {
	Addr     string        `json:"addr" yaml:"addr"`
	Password string        `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int           `json:"db" yaml:"db"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultRedisTimeout bounds a single redis round trip when
// RedisConfig.Timeout is zero.
const DefaultRedisTimeout = 2 * time.Second

// GetTimeout returns the configured timeout, or DefaultRedisTimeout.
func (r RedisConfig) GetTimeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultRedisTimeout
	}
	return r.Timeout
}

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrRedisAddrEmpty = errors.New("redis address must not be empty")
)

// KnownBackends lists the backends that Validate accepts.
var KnownBackends = []string{
	BackendFile,
	BackendSQLite,
	BackendRedis,
	BackendMemory,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !slices.Contains(KnownBackends, c.Backend) {
		return ErrBackendUnknown
	}
	if c.Backend == BackendRedis && c.Redis.Addr == "" {
		return ErrRedisAddrEmpty
	}
	return nil
}
