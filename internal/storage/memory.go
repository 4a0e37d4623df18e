package storage

import (
	"sync"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// MemoryBackend keeps values in a process-local map. Values survive
// Detach and re-Attach on the same instance, which lets tests exercise
// hydration without touching disk.
type MemoryBackend struct {
	mu       sync.RWMutex
	attached bool
	values   map[string][]byte
}

// NewMemoryBackend creates an unattached in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Attach marks the backend attached. The config is not consulted.
func (b *MemoryBackend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	b.attached = true
	return nil
}

// Detach marks the backend detached. Idempotent.
func (b *MemoryBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	return nil
}

// Get returns a copy of the value stored under key.
func (b *MemoryBackend) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	v, ok := b.values[key]
	if !ok {
		return nil, types.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (b *MemoryBackend) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrBackendDetached
	}
	b.values[key] = append([]byte(nil), value...)
	return nil
}
