package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"accents and ordinal", "Água de Rosas Nº 1", "agua-de-rosas-n-1"},
		{"plain", "Amber Noir", "amber-noir"},
		{"punctuation runs", "Café -- com___Leite!!", "cafe-com-leite"},
		{"leading and trailing junk", "  ...Sol de Amalfi...  ", "sol-de-amalfi"},
		{"digits kept", "No 5 — Edição 2025", "no-5-edicao-2025"},
		{"uppercase accented", "ÉÈÊ", "eee"},
		{"only junk", "!!! --- ???", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugifyIsPureFunctionOfName(t *testing.T) {
	s := emptyStore(t)

	a := s.Add(Draft{Name: "Água de Rosas Nº 1", Category: CategoryFloral})
	b := s.Add(Draft{Name: "Água de Rosas Nº 1", Category: CategoryFloral})

	assert.Equal(t, "agua-de-rosas-n-1", a.Slug)
	assert.Equal(t, a.Slug, b.Slug)
	assert.NotEqual(t, a.ID, b.ID)
}
