package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RuanLimah/boutique/internal/storage"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// emptyStore builds a store with no products and no seed, so tests control
// the collection exactly.
func emptyStore(t *testing.T) *Store {
	t.Helper()
	kv := storage.NewMemStore()
	require.NoError(t, kv.Save(storageKey, []byte("[]")))
	return NewStore(kv, zap.NewNop())
}

func draft(name, price string, c Category) Draft {
	return Draft{
		Name:             name,
		ShortDescription: name + " short",
		Description:      name + " long",
		Price:            dec(price),
		Category:         c,
		Stock:            10,
	}
}

func TestNewStoreSeedsAndPersistsOnFirstLoad(t *testing.T) {
	kv := storage.NewMemStore()

	s := NewStore(kv, zap.NewNop())
	require.NotEmpty(t, s.List())

	b, ok := kv.Load(storageKey)
	require.True(t, ok, "seed must be persisted immediately")

	var persisted []Product
	require.NoError(t, json.Unmarshal(b, &persisted))
	assert.Len(t, persisted, len(s.List()))
}

func TestNewStoreFallsBackOnCorruptState(t *testing.T) {
	kv := storage.NewMemStore()
	require.NoError(t, kv.Save(storageKey, []byte("{definitely not json")))

	s := NewStore(kv, zap.NewNop())
	assert.Equal(t, len(seedProducts()), len(s.List()))
}

func TestNewStoreRehydratesPriorState(t *testing.T) {
	kv := storage.NewMemStore()
	require.NoError(t, kv.Save(storageKey, []byte("[]")))

	first := NewStore(kv, zap.NewNop())
	added := first.Add(draft("Amber Noir", "249.90", CategoryWoody))

	second := NewStore(kv, zap.NewNop())
	got, ok := second.GetByID(added.ID)
	require.True(t, ok)
	assert.Equal(t, added.Name, got.Name)
	assert.Equal(t, added.Slug, got.Slug)
	assert.True(t, added.Price.Equal(got.Price))
}

func TestAddAssignsIDSlugAndCreationTime(t *testing.T) {
	s := emptyStore(t)

	before := time.Now().UTC()
	p := s.Add(draft("Jardim Secreto", "179.90", CategoryFloral))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "jardim-secreto", p.Slug)
	assert.False(t, p.CreatedAt.Before(before))

	got, ok := s.GetByID(p.ID)
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := emptyStore(t)

	a := s.Add(draft("First", "10.00", CategoryFloral))
	b := s.Add(draft("Second", "20.00", CategorySweet))
	c := s.Add(draft("Third", "30.00", CategoryWoody))

	ids := []string{}
	for _, p := range s.List() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids)
}

func TestUpdateMergesFieldsAndRederivesSlug(t *testing.T) {
	s := emptyStore(t)
	p := s.Add(draft("Old Name", "10.00", CategoryFloral))

	name := "Âmbar Imperial"
	price := dec("99.90")
	updated, err := s.Update(p.ID, Patch{Name: &name, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "Âmbar Imperial", updated.Name)
	assert.Equal(t, "ambar-imperial", updated.Slug)
	assert.True(t, price.Equal(updated.Price))
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	// untouched fields survive
	assert.Equal(t, p.Description, updated.Description)
}

func TestUpdateWithoutNameKeepsSlug(t *testing.T) {
	s := emptyStore(t)
	p := s.Add(draft("Sol de Amalfi", "139.90", CategoryCitrus))

	stock := 3
	updated, err := s.Update(p.ID, Patch{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, p.Slug, updated.Slug)
	assert.Equal(t, 3, updated.Stock)
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	s := emptyStore(t)
	name := "x"
	_, err := s.Update("p_missing", Patch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesAndReportsNotFoundAfter(t *testing.T) {
	s := emptyStore(t)
	p := s.Add(draft("Short Lived", "10.00", CategoryFloral))

	removed, err := s.Delete(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, removed.ID)

	_, ok := s.GetByID(p.ID)
	assert.False(t, ok)

	_, err = s.Delete(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBySlug(t *testing.T) {
	s := emptyStore(t)
	p := s.Add(draft("Cedro do Atlas", "219.90", CategoryWoody))

	got, ok := s.GetBySlug("cedro-do-atlas")
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)

	_, ok = s.GetBySlug("no-such-slug")
	assert.False(t, ok)
}

func TestListByCategoryAndFeaturedKeepCollectionOrder(t *testing.T) {
	s := emptyStore(t)

	a := s.Add(Draft{Name: "A", Price: dec("1"), Category: CategoryFloral, Featured: true})
	s.Add(Draft{Name: "B", Price: dec("2"), Category: CategorySweet})
	c := s.Add(Draft{Name: "C", Price: dec("3"), Category: CategoryFloral, Featured: true})

	florals := s.ListByCategory(CategoryFloral)
	require.Len(t, florals, 2)
	assert.Equal(t, a.ID, florals[0].ID)
	assert.Equal(t, c.ID, florals[1].ID)

	featured := s.ListFeatured()
	require.Len(t, featured, 2)
	assert.Equal(t, a.ID, featured[0].ID)
	assert.Equal(t, c.ID, featured[1].ID)
}

func TestSearchMatchesAnyOfThreeFields(t *testing.T) {
	s := emptyStore(t)

	s.Add(Draft{Name: "Rosa Branca", ShortDescription: "soft petals", Description: "a quiet floral", Price: dec("1"), Category: CategoryFloral})
	s.Add(Draft{Name: "Noite Escura", ShortDescription: "VANILLA smoke", Description: "dark and sweet", Price: dec("2"), Category: CategorySweet})
	s.Add(Draft{Name: "Mar Aberto", ShortDescription: "salt air", Description: "hidden vanilla base", Price: dec("3"), Category: CategoryCitrus})

	assert.Len(t, s.Search("rosa"), 1)    // name
	assert.Len(t, s.Search("vanilla"), 2) // short description + description, case folded
	assert.Len(t, s.Search("quiet"), 1)   // description
	assert.Len(t, s.Search(""), 3)        // empty query matches everything
	assert.Empty(t, s.Search("oud"))
}

func TestMutationsWriteThrough(t *testing.T) {
	kv := storage.NewMemStore()
	require.NoError(t, kv.Save(storageKey, []byte("[]")))
	s := NewStore(kv, zap.NewNop())

	p := s.Add(draft("Persisted", "10.00", CategoryFloral))

	var persisted []Product
	b, _ := kv.Load(storageKey)
	require.NoError(t, json.Unmarshal(b, &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, p.ID, persisted[0].ID)

	_, err := s.Delete(p.ID)
	require.NoError(t, err)

	b, _ = kv.Load(storageKey)
	require.NoError(t, json.Unmarshal(b, &persisted))
	assert.Empty(t, persisted)
}

type failingKV struct{}

func (failingKV) Load(string) ([]byte, bool) { return nil, false }
func (failingKV) Save(string, []byte) error  { return assert.AnError }

func TestStoreSurvivesPersistenceFailure(t *testing.T) {
	s := NewStore(failingKV{}, zap.NewNop())

	p := s.Add(draft("Ephemeral", "10.00", CategoryFloral))
	got, ok := s.GetByID(p.ID)
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)
}
