package types

import "errors"

// Backend is a durable key-value store that holds serialized state.
// Callers attach a backend to a Config, read and write values by key, and
// detach when done. Implementations are used from one goroutine at a time.
type Backend interface {
	// Attach connects the backend to the storage described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Get and Set return ErrBackendDetached.
	Detach() error

	// Get returns the value stored under key.
	// Returns ErrNotFound if nothing is stored under key.
	Get(key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error
}

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Key-value operation errors.
var (
	ErrNotFound   = errors.New("key not found")
	ErrInvalidKey = errors.New("invalid key")
)
