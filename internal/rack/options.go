package rack

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// Option configures a Store at Open.
type Option func(*Store)

// WithLogger sets the logger used for hydration and persistence events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithKey sets the storage key the collection is persisted under.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator replaces the item ID generator. The generator must
// return a value not already used in the collection.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// defaultOptions applied before caller options.
func defaultOptions(s *Store) {
	s.logger = zap.NewNop()
	s.key = types.DefaultStorageKey
	s.newID = generateUUID
}

// generateUUID generates a new UUID v7 for item IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
