package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RuanLimah/boutique/internal/storage"
)

func TestStoreWritesThroughOnEveryMutation(t *testing.T) {
	kv := storage.NewMemStore()
	s := NewStore(kv, zap.NewNop())

	s.Add(product("p1", "29.90"), 2)

	var persisted State
	b, ok := kv.Load(storageKey)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal(b, &persisted))
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, 2, persisted.Items[0].Quantity)
	assert.True(t, dec("59.80").Equal(persisted.Total))

	s.Clear()
	b, _ = kv.Load(storageKey)
	require.NoError(t, json.Unmarshal(b, &persisted))
	assert.Empty(t, persisted.Items)
}

func TestStoreRehydratesAcrossRestart(t *testing.T) {
	kv := storage.NewMemStore()

	first := NewStore(kv, zap.NewNop())
	first.Add(product("p1", "29.90"), 3)

	second := NewStore(kv, zap.NewNop())
	st := second.Get()
	require.Len(t, st.Items, 1)
	assert.Equal(t, 3, st.Items[0].Quantity)
	assert.True(t, dec("89.70").Equal(st.Total))
}

func TestStoreStartsEmptyOnCorruptState(t *testing.T) {
	kv := storage.NewMemStore()
	require.NoError(t, kv.Save(storageKey, []byte(`{"items": [broken`)))

	s := NewStore(kv, zap.NewNop())
	assert.Empty(t, s.Get().Items)
	assert.True(t, s.Get().Total.IsZero())
}

func TestStoreSanitizesLoadedState(t *testing.T) {
	bad := State{
		Items: []Item{
			{Product: product("p1", "10.00"), Quantity: 1},
			{Product: product("p2", "10.00"), Quantity: 0},
		},
		Total: dec("123.45"),
	}
	b, err := json.Marshal(bad)
	require.NoError(t, err)

	kv := storage.NewMemStore()
	require.NoError(t, kv.Save(storageKey, b))

	s := NewStore(kv, zap.NewNop())
	st := s.Get()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "p1", st.Items[0].Product.ID)
	assert.True(t, dec("10.00").Equal(st.Total))
}

func TestRemoveReportsWhetherItemExisted(t *testing.T) {
	s := NewStore(storage.NewMemStore(), zap.NewNop())
	s.Add(product("p1", "10"), 1)

	it, ok := s.Remove("p1")
	require.True(t, ok)
	assert.Equal(t, "p1", it.Product.ID)

	_, ok = s.Remove("p1")
	assert.False(t, ok)
}

func TestSetQuantityReportsMissingProduct(t *testing.T) {
	s := NewStore(storage.NewMemStore(), zap.NewNop())
	assert.False(t, s.SetQuantity("p_ghost", 2))

	s.Add(product("p1", "10"), 1)
	assert.True(t, s.SetQuantity("p1", 5))
	assert.Equal(t, 5, s.Quantity("p1"))

	assert.True(t, s.SetQuantity("p1", 0))
	assert.Zero(t, s.Quantity("p1"))
	assert.Empty(t, s.Get().Items)
}

type failingKV struct{}

func (failingKV) Load(string) ([]byte, bool) { return nil, false }
func (failingKV) Save(string, []byte) error  { return assert.AnError }

func TestStoreStaysUsableWithoutPersistence(t *testing.T) {
	s := NewStore(failingKV{}, zap.NewNop())

	s.Add(product("p1", "29.90"), 2)
	st := s.Get()
	require.Len(t, st.Items, 1)
	assert.True(t, dec("59.80").Equal(st.Total))
}

func TestCheckoutClearsCartAndReturnsReceipt(t *testing.T) {
	s := NewStore(storage.NewMemStore(), zap.NewNop())
	s.Add(product("p1", "29.90"), 3)

	r, err := s.Checkout(context.Background(), 0)
	require.NoError(t, err)

	assert.Contains(t, r.OrderID, "o_")
	require.Len(t, r.Items, 1)
	assert.True(t, dec("89.70").Equal(r.Total))
	assert.Empty(t, s.Get().Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	s := NewStore(storage.NewMemStore(), zap.NewNop())
	_, err := s.Checkout(context.Background(), 0)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutAbandonedLeavesCartUntouched(t *testing.T) {
	s := NewStore(storage.NewMemStore(), zap.NewNop())
	s.Add(product("p1", "10"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Checkout(ctx, time.Minute)
	require.Error(t, err)
	assert.Len(t, s.Get().Items, 1)
}
