// Package storage implements the key-value backends that persist the rack.
// Each backend satisfies types.Backend and follows the same lifecycle:
// construct, Attach to a Config, Get/Set values, Detach.
package storage

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// New returns an unattached backend for the given backend name.
// Returns ErrBackendUnknown if the name is not recognized.
func New(name string) (types.Backend, error) {
	switch name {
	case types.BackendFile:
		return NewFileBackend(), nil
	case types.BackendSQLite:
		return NewSQLiteBackend(), nil
	case types.BackendRedis:
		return NewRedisBackend(), nil
	case types.BackendMemory:
		return NewMemoryBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}

// Open creates the backend named by config.Backend and attaches it.
// The caller must Detach the returned backend.
func Open(config types.Config) (types.Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	b, err := New(config.Backend)
	if err != nil {
		return nil, err
	}
	if err := b.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", config.Backend, err)
	}
	return b, nil
}

// validateKey rejects keys that cannot be stored by every backend. Keys
// double as file names for the file backend, so path separators and dot
// segments are refused everywhere.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." {
		return types.ErrInvalidKey
	}
	if strings.ContainsAny(key, `/\`) {
		return types.ErrInvalidKey
	}
	return nil
}

// dataDirOrCWD returns dir, or "." when dir is empty.
func dataDirOrCWD(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
