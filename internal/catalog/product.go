package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFloral Category = "floral"
	CategorySweet  Category = "sweet"
	CategoryWoody  Category = "woody"
	CategoryCitrus Category = "citrus"
)

// Categories returns the fixed category enumeration in display order.
func Categories() []Category {
	return []Category{CategoryFloral, CategorySweet, CategoryWoody, CategoryCitrus}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFloral, CategorySweet, CategoryWoody, CategoryCitrus:
		return true
	}
	return false
}

func (c Category) Label() string {
	switch c {
	case CategoryFloral:
		return "Florals"
	case CategorySweet:
		return "Sweets"
	case CategoryWoody:
		return "Woody"
	case CategoryCitrus:
		return "Citrus"
	}
	return string(c)
}

func (c Category) Description() string {
	switch c {
	case CategoryFloral:
		return "Delicate fragrances with notes of rose, jasmine and lily"
	case CategorySweet:
		return "Enveloping aromas of vanilla, caramel and fruit"
	case CategoryWoody:
		return "Sophisticated notes of sandalwood, cedar and amber"
	case CategoryCitrus:
		return "Vibrant freshness of bergamot, lemon and orange"
	}
	return ""
}

type Product struct {
	ID               string          `json:"id"`
	Slug             string          `json:"slug"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description"`
	Price            decimal.Decimal `json:"price"`
	Category         Category        `json:"category"`
	Stock            int             `json:"stock"`
	Featured         bool            `json:"featured,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Draft holds the caller-supplied fields of a new product. ID, slug and
// creation time are assigned by the store.
type Draft struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description"`
	Price            decimal.Decimal `json:"price"`
	Category         Category        `json:"category"`
	Stock            int             `json:"stock"`
	Featured         bool            `json:"featured"`
}

// Patch is a partial update. Nil fields are left untouched; a non-nil Name
// also re-derives the slug.
type Patch struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"short_description"`
	Price            *decimal.Decimal `json:"price"`
	Category         *Category        `json:"category"`
	Stock            *int             `json:"stock"`
	Featured         *bool            `json:"featured"`
}
