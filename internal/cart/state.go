// Package cart holds the shopping cart state machine: a pure transition
// layer over an immutable State value, and a Store that adds locking and
// write-through persistence on top of it.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/RuanLimah/boutique/internal/catalog"
)

// Item pairs a product snapshot with a quantity. The snapshot is copied at
// add time; later catalog edits never reach items already in the cart.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

func (it Item) Subtotal() decimal.Decimal {
	return it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// State is the cart aggregate. Items keep the order they were first added
// in, and Total always equals the sum of item subtotals: every transition
// recomputes it.
type State struct {
	Items []Item          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Count is the derived item count. It is never stored.
func (s State) Count() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

func sumTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// The transition functions below are pure: they never mutate their input
// and return a wholly new State.

// add consolidates by product id: an already-present product has its
// quantity incremented instead of gaining a second line. A qty under 1 is
// treated as 1.
func add(s State, p catalog.Product, qty int) State {
	if qty < 1 {
		qty = 1
	}

	items := make([]Item, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)

	found := false
	for i := range items {
		if items[i].Product.ID == p.ID {
			items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{Product: p, Quantity: qty})
	}

	return State{Items: items, Total: sumTotal(items)}
}

// remove drops the line for productID. Removing an absent product is a
// no-op, so remove is idempotent.
func remove(s State, productID string) State {
	items := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Product.ID != productID {
			items = append(items, it)
		}
	}
	return State{Items: items, Total: sumTotal(items)}
}

// setQuantity replaces the quantity for productID. A qty of zero or less
// removes the line; an item with quantity under 1 must never exist.
func setQuantity(s State, productID string, qty int) State {
	if qty <= 0 {
		return remove(s, productID)
	}

	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = qty
			break
		}
	}
	return State{Items: items, Total: sumTotal(items)}
}

func clear() State {
	return State{Items: []Item{}, Total: decimal.Zero}
}

// sanitize re-validates a wholesale-loaded state: lines with non-positive
// quantities are dropped and the total is recomputed rather than trusted.
func sanitize(s State) State {
	items := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Quantity >= 1 {
			items = append(items, it)
		}
	}
	return State{Items: items, Total: sumTotal(items)}
}
