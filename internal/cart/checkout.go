package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty")

type Receipt struct {
	OrderID  string          `json:"order_id"`
	Items    []Item          `json:"items"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
}

// Checkout simulates a payment: it snapshots the cart, waits out the
// configured delay, then clears the cart and returns a receipt. There is
// no real gateway behind it and no retry; cancelling the context abandons
// the pending payment and leaves the cart untouched.
func (s *Store) Checkout(ctx context.Context, delay time.Duration) (Receipt, error) {
	snapshot := s.Get()
	if len(snapshot.Items) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-t.C:
		}
	}

	s.Clear()

	return Receipt{
		OrderID:  "o_" + uuid.NewString(),
		Items:    snapshot.Items,
		Total:    snapshot.Total,
		PlacedAt: time.Now().UTC(),
	}, nil
}
