package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// valueFileExt is appended to the key to form the value file name.
const valueFileExt = ".json"

// FileBackend stores each key as <DataDir>/<key>.json. Writes are atomic:
// the value is written to a temp file, fsynced, then renamed over the
// previous file, so a crash never leaves a half-written value behind.
type FileBackend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
}

// NewFileBackend creates an unattached file backend.
func NewFileBackend() *FileBackend {
	return &FileBackend{}
}

// Attach creates DataDir if it does not exist.
// Returns ErrAlreadyAttached if already attached.
func (b *FileBackend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	dataDir := dataDirOrCWD(config.DataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	b.dataDir = dataDir
	b.attached = true
	return nil
}

// Detach releases the backend. Idempotent.
func (b *FileBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	return nil
}

// Get reads the value file for key.
// Returns ErrNotFound if the file does not exist.
func (b *FileBackend) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Set atomically replaces the value file for key.
func (b *FileBackend) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrBackendDetached
	}
	return writeFileAtomic(b.path(key), value)
}

// Path returns the file that holds key. Exposed for diagnostics.
func (b *FileBackend) Path(key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path(key)
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dataDir, key+valueFileExt)
}

// writeFileAtomic writes data to path using the temp-file, fsync, rename
// pattern.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".value-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing value: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
