package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// sqliteFileName is the database file created inside DataDir.
const sqliteFileName = "dryrack.db"

// Schema DDL for the key-value table.
const createKV = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

const (
	selectValue = `SELECT value FROM kv WHERE key = ?`
	upsertValue = `INSERT INTO kv (key, value) VALUES (?, ?)
    ON CONFLICT(key) DO UPDATE SET value = excluded.value`
)

// SQLiteBackend stores values in a single kv table in DataDir/dryrack.db.
// Unlike the file backend the database is the source of truth, so Attach
// keeps an existing database file.
type SQLiteBackend struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
	path     string
}

// NewSQLiteBackend creates an unattached SQLite backend.
func NewSQLiteBackend() *SQLiteBackend {
	return &SQLiteBackend{}
}

// Attach creates DataDir if needed, opens the database, and ensures the
// schema exists. Returns ErrAlreadyAttached if already attached.
func (b *SQLiteBackend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	dataDir := dataDirOrCWD(config.DataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, sqliteFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection keeps writes serialized and the file lock simple.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createKV); err != nil {
		db.Close()
		return fmt.Errorf("creating schema: %w", err)
	}

	b.db = db
	b.path = dbPath
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent.
func (b *SQLiteBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		if err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}
	return nil
}

// Get returns the value stored under key.
func (b *SQLiteBackend) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	var value string
	err := b.db.QueryRow(selectValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set upserts the value stored under key.
func (b *SQLiteBackend) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrBackendDetached
	}

	if _, err := b.db.Exec(upsertValue, key, string(value)); err != nil {
		return fmt.Errorf("upserting %s: %w", key, err)
	}
	return nil
}
