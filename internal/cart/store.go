package cart

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/RuanLimah/boutique/internal/catalog"
	"github.com/RuanLimah/boutique/internal/storage"
)

const storageKey = "boutique-cart"

// Store wraps the pure transitions with a lock and write-through
// persistence. A persistence failure is logged and otherwise ignored: the
// in-memory state is authoritative.
type Store struct {
	mu    sync.RWMutex
	state State
	kv    storage.KV
	log   *zap.Logger
}

// NewStore rehydrates from the KV layer. Absent or malformed payloads
// start an empty cart; a loaded state is sanitized, never trusted as-is.
func NewStore(kv storage.KV, log *zap.Logger) *Store {
	s := &Store{state: clear(), kv: kv, log: log}

	b, ok := kv.Load(storageKey)
	if !ok {
		return s
	}

	var loaded State
	if err := json.Unmarshal(b, &loaded); err != nil {
		log.Warn("discarding malformed cart state", zap.String("key", storageKey))
		return s
	}

	s.state = sanitize(loaded)
	return s
}

// Add puts qty units of the product in the cart and returns the resulting
// line.
func (s *Store) Add(p catalog.Product, qty int) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = add(s.state, p, qty)
	s.persist()

	for _, it := range s.state.Items {
		if it.Product.ID == p.ID {
			return it
		}
	}
	return Item{} // unreachable: add always leaves a line for p
}

// Remove drops the line for productID and reports whether one existed, so
// callers can tell a removal from a silent no-op.
func (s *Store) Remove(productID string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := findItem(s.state.Items, productID)
	s.state = remove(s.state, productID)
	if ok {
		s.persist()
	}
	return removed, ok
}

// SetQuantity replaces the quantity for productID; zero or less removes
// the line. Reports whether the product was in the cart.
func (s *Store) SetQuantity(productID string, qty int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := findItem(s.state.Items, productID)
	if !ok {
		return false
	}

	s.state = setQuantity(s.state, productID, qty)
	s.persist()
	return true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = clear()
	s.persist()
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.state)
}

// Item returns the line for productID, if present.
func (s *Store) Item(productID string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findItem(s.state.Items, productID)
}

// Quantity returns the quantity in the cart for productID, zero if absent.
func (s *Store) Quantity(productID string) int {
	it, _ := s.Item(productID)
	return it.Quantity
}

// Count is the total number of units across all lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Count()
}

func (s *Store) persist() {
	b, err := json.Marshal(s.state)
	if err != nil {
		s.log.Error("marshal cart failed", zap.Error(err))
		return
	}
	if err := s.kv.Save(storageKey, b); err != nil {
		s.log.Warn("persist cart failed", zap.Error(err), zap.String("key", storageKey))
	}
}

func findItem(items []Item, productID string) (Item, bool) {
	for _, it := range items {
		if it.Product.ID == productID {
			return it, true
		}
	}
	return Item{}, false
}

func copyState(s State) State {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, Total: s.Total}
}
