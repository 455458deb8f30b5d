package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collators are expensive to build, so one is shared across Filter calls.
// collate.Collator is not safe for concurrent use; the mutex serializes it.
var (
	nameCollatorMu sync.Mutex
	nameCollator   = collate.New(language.BrazilianPortuguese)
)

type SortBy string

const (
	SortPriceAsc  SortBy = "price-asc"
	SortPriceDesc SortBy = "price-desc"
	SortName      SortBy = "name"
	SortNewest    SortBy = "newest"
)

func (s SortBy) Valid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortName, SortNewest:
		return true
	}
	return false
}

// Filters are ANDed together. The zero value matches everything.
type Filters struct {
	Category Category // empty or "all" disables the category filter
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   string // matched against name and short description only
	SortBy   SortBy
}

// Filter applies the criteria to a copy of the collection; the underlying
// collection is never reordered.
func (s *Store) Filter(f Filters) []Product {
	out := s.List()

	if f.Category != "" && f.Category != "all" {
		out = keep(out, func(p Product) bool { return p.Category == f.Category })
	}
	if f.MinPrice != nil {
		out = keep(out, func(p Product) bool { return p.Price.GreaterThanOrEqual(*f.MinPrice) })
	}
	if f.MaxPrice != nil {
		out = keep(out, func(p Product) bool { return p.Price.LessThanOrEqual(*f.MaxPrice) })
	}
	if f.Search != "" {
		out = keep(out, func(p Product) bool {
			return containsFold(p.Name, f.Search) || containsFold(p.ShortDescription, f.Search)
		})
	}

	switch f.SortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[j].Price.LessThan(out[i].Price) })
	case SortName:
		nameCollatorMu.Lock()
		sort.SliceStable(out, func(i, j int) bool {
			return nameCollator.CompareString(out[i].Name, out[j].Name) < 0
		})
		nameCollatorMu.Unlock()
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[j].CreatedAt.Before(out[i].CreatedAt) })
	}

	return out
}

func keep(in []Product, pred func(Product) bool) []Product {
	out := in[:0]
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
