package catalog

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RuanLimah/boutique/internal/storage"
)

const storageKey = "boutique-products"

var ErrNotFound = errors.New("product not found")

// Store owns the canonical product collection. All reads return copies;
// the collection keeps insertion order and every mutation writes the full
// collection through to the KV layer.
type Store struct {
	mu       sync.RWMutex
	products []Product
	kv       storage.KV
	log      *zap.Logger
}

// NewStore rehydrates the collection from the KV layer. An absent or
// corrupt payload falls back to the built-in seed, which is persisted
// right away so the next load finds it.
func NewStore(kv storage.KV, log *zap.Logger) *Store {
	s := &Store{kv: kv, log: log}

	if b, ok := kv.Load(storageKey); ok {
		var products []Product
		if err := json.Unmarshal(b, &products); err == nil {
			s.products = products
			return s
		}
		log.Warn("discarding malformed product state", zap.String("key", storageKey))
	}

	s.products = seedProducts()
	s.persist()
	return s
}

func (s *Store) GetByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (s *Store) GetBySlug(slug string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return p, true
		}
	}
	return Product{}, false
}

// List returns the whole collection in insertion order.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) ListByCategory(c Category) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, p := range s.products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) ListFeatured() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Add assigns a fresh id, derives the slug from the name and appends the
// product to the collection.
func (s *Store) Add(d Draft) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:               "p_" + uuid.NewString(),
		Slug:             Slugify(d.Name),
		Name:             d.Name,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Price:            d.Price,
		Category:         d.Category,
		Stock:            d.Stock,
		Featured:         d.Featured,
		CreatedAt:        time.Now().UTC(),
	}

	s.products = append(s.products, p)
	s.persist()
	return p
}

// Update merges the patch into the product with the given id. A name
// change re-derives the slug; id and creation time never change.
func (s *Store) Update(id string, patch Patch) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}

		p := &s.products[i]
		if patch.Name != nil {
			p.Name = *patch.Name
			p.Slug = Slugify(*patch.Name)
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.ShortDescription != nil {
			p.ShortDescription = *patch.ShortDescription
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		if patch.Featured != nil {
			p.Featured = *patch.Featured
		}

		s.persist()
		return *p, nil
	}

	return Product{}, ErrNotFound
}

// Delete removes the product and returns it, so callers can report what
// disappeared.
func (s *Store) Delete(id string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID != id {
			continue
		}
		s.products = append(s.products[:i], s.products[i+1:]...)
		s.persist()
		return p, nil
	}

	return Product{}, ErrNotFound
}

// Search matches the query case-insensitively against name, description
// and short description. An empty query matches everything.
func (s *Store) Search(query string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Product
	for _, p := range s.products {
		if containsFold(p.Name, query) ||
			containsFold(p.Description, query) ||
			containsFold(p.ShortDescription, query) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) persist() {
	b, err := json.Marshal(s.products)
	if err != nil {
		s.log.Error("marshal products failed", zap.Error(err))
		return
	}
	if err := s.kv.Save(storageKey, b); err != nil {
		s.log.Warn("persist products failed", zap.Error(err), zap.String("key", storageKey))
	}
}
