// Package rack implements the Item Store: the ordered collection of items
// on the drying rack and its transition rules.
//
// A Store is hydrated once from a types.Backend at Open and writes the
// whole collection back after every mutation that changes it. Stores are
// not safe for concurrent use; callers drive them from one goroutine.
package rack

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/dryrack/pkg/types"
)

// Store is the authoritative collection of items for a session.
type Store struct {
	backend types.Backend
	key     string
	logger  *zap.Logger
	newID   func() string

	items []types.Item
}

// Open creates a Store over an attached backend and hydrates it from the
// value stored under the store key. A missing, unreadable, or malformed
// value yields an empty store; the problem is logged, not returned.
func Open(backend types.Backend, opts ...Option) *Store {
	s := &Store{backend: backend}
	defaultOptions(s)
	for _, opt := range opts {
		opt(s)
	}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	s.items = []types.Item{}

	data, err := s.backend.Get(s.key)
	if errors.Is(err, types.ErrNotFound) {
		s.logger.Debug("no persisted items", zap.String("key", s.key))
		return
	}
	if err != nil {
		s.logger.Warn("reading persisted items failed, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return
	}

	items, dropped, err := Decode(data)
	if err != nil {
		s.logger.Warn("persisted items malformed, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return
	}
	if dropped > 0 {
		s.logger.Warn("dropped invalid persisted items",
			zap.String("key", s.key), zap.Int("dropped", dropped))
	}
	s.items = items
	s.logger.Debug("hydrated items", zap.String("key", s.key), zap.Int("count", len(items)))
}

// persist writes the whole collection. On failure the in-memory state is
// kept as is and stays authoritative for the rest of the session.
func (s *Store) persist() error {
	data, err := Encode(s.items)
	if err == nil {
		err = s.backend.Set(s.key, data)
	}
	if err != nil {
		s.logger.Error("persisting items failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("persist items: %w", err)
	}
	return nil
}

// AddItem appends a new item named name with quantity 1.
//
// The name is trimmed first. A blank name, or a name already present
// under case-insensitive comparison, is a silent no-op: added is false and
// nothing is written. For a duplicate the existing item is returned.
func (s *Store) AddItem(name string) (item types.Item, added bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Item{}, false, nil
	}
	if i := types.IndexByName(s.items, name); i >= 0 {
		return s.items[i], false, nil
	}

	item = types.Item{ID: s.newID(), Name: name, Quantity: 1}
	s.items = append(s.items, item)
	s.logger.Debug("added item", zap.String("id", item.ID), zap.String("name", name))
	return item, true, s.persist()
}

// ChangeQuantity adds delta to the quantity of the item with the given id.
//
// The result saturates at math.MaxInt and is clamped at zero. A zero
// delta changes nothing and does not write. An item whose quantity reaches zero is
// removed from the collection; the returned item then reports Quantity 0.
// The order of the remaining items is unchanged. An unknown id is a no-op
// with found false.
func (s *Store) ChangeQuantity(id string, delta int) (item types.Item, found bool, err error) {
	i := types.IndexByID(s.items, id)
	if i < 0 {
		return types.Item{}, false, nil
	}

	item = s.items[i]
	if delta == 0 {
		return item, true, nil
	}
	item.Quantity = addQuantity(item.Quantity, delta)
	if item.Quantity == 0 {
		s.items = slices.Delete(s.items, i, i+1)
		s.logger.Debug("quantity reached zero, removed item", zap.String("id", id))
	} else {
		s.items[i] = item
	}
	return item, true, s.persist()
}

// addQuantity returns max(0, q+delta) without wrapping around.
func addQuantity(q, delta int) int {
	switch {
	case delta > 0 && q > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && q < math.MinInt-delta:
		return 0
	}
	return max(0, q+delta)
}

// RemoveItem removes the item with the given id. An unknown id is a
// no-op with removed false.
func (s *Store) RemoveItem(id string) (removed bool, err error) {
	i := types.IndexByID(s.items, id)
	if i < 0 {
		return false, nil
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.logger.Debug("removed item", zap.String("id", id))
	return true, s.persist()
}

// ClearAll removes every item.
func (s *Store) ClearAll() error {
	s.items = []types.Item{}
	s.logger.Debug("cleared all items")
	return s.persist()
}

// Snapshot returns a copy of the items in insertion order.
func (s *Store) Snapshot() []types.Item {
	return slices.Clone(s.items)
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Lookup resolves ref to an item, matching an exact id first and then a
// case-insensitive name.
func (s *Store) Lookup(ref string) (types.Item, bool) {
	if i := types.IndexByID(s.items, ref); i >= 0 {
		return s.items[i], true
	}
	if i := types.IndexByName(s.items, strings.TrimSpace(ref)); i >= 0 {
		return s.items[i], true
	}
	return types.Item{}, false
}

// Close detaches the backend. The store must not be used afterwards.
func (s *Store) Close() error {
	return s.backend.Detach()
}
