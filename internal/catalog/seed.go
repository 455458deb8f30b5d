package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// seedProducts is the dataset a fresh install starts from. Creation times
// are staggered so the newest sort has a deterministic order out of the box.
func seedProducts() []Product {
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	at := func(i int) time.Time { return base.Add(time.Duration(i) * time.Hour) }
	price := decimal.RequireFromString

	drafts := []struct {
		draft Draft
		id    string
	}{
		{id: "p_1", draft: Draft{
			Name:             "Água de Rosas Nº 1",
			ShortDescription: "Rose water with a powdery trail",
			Description:      "Damask rose petals over white musk and a whisper of violet. A tender, luminous floral for every day.",
			Price:            price("149.90"),
			Category:         CategoryFloral,
			Stock:            12,
			Featured:         true,
		}},
		{id: "p_2", draft: Draft{
			Name:             "Jardim Secreto",
			ShortDescription: "Jasmine and lily in full bloom",
			Description:      "Night-blooming jasmine wrapped in lily of the valley and a green stem accord. Bright by day, heady by night.",
			Price:            price("179.90"),
			Category:         CategoryFloral,
			Stock:            8,
		}},
		{id: "p_3", draft: Draft{
			Name:             "Baunilha Dourada",
			ShortDescription: "Warm vanilla and salted caramel",
			Description:      "Bourbon vanilla folded into salted caramel and tonka bean. A gourmand that never turns cloying.",
			Price:            price("199.90"),
			Category:         CategorySweet,
			Stock:            15,
			Featured:         true,
		}},
		{id: "p_4", draft: Draft{
			Name:             "Pêssego & Mel",
			ShortDescription: "Ripe peach drizzled with honey",
			Description:      "Juicy peach nectar, acacia honey and a soft almond-milk base. Summer in a bottle.",
			Price:            price("129.90"),
			Category:         CategorySweet,
			Stock:            20,
		}},
		{id: "p_5", draft: Draft{
			Name:             "Âmbar Imperial",
			ShortDescription: "Amber and sandalwood, smoothed by vanilla",
			Description:      "Golden amber layered over Mysore-style sandalwood, with labdanum and a vanilla dry-down. Deep and enveloping.",
			Price:            price("249.90"),
			Category:         CategoryWoody,
			Stock:            6,
			Featured:         true,
		}},
		{id: "p_6", draft: Draft{
			Name:             "Cedro do Atlas",
			ShortDescription: "Dry cedar with smoky vetiver",
			Description:      "Atlas cedarwood sharpened by vetiver root and a trace of incense smoke. Austere, elegant, long-lasting.",
			Price:            price("219.90"),
			Category:         CategoryWoody,
			Stock:            9,
		}},
		{id: "p_7", draft: Draft{
			Name:             "Sol de Amalfi",
			ShortDescription: "Sparkling lemon and bergamot",
			Description:      "Amalfi lemon zest, bergamot and a splash of petitgrain over a clean musk. Instant freshness.",
			Price:            price("139.90"),
			Category:         CategoryCitrus,
			Stock:            18,
			Featured:         true,
		}},
		{id: "p_8", draft: Draft{
			Name:             "Laranjeira em Flor",
			ShortDescription: "Orange blossom kissed by neroli",
			Description:      "Bitter orange blossom, neroli and a touch of honeyed beeswax. A citrus with a floral heart.",
			Price:            price("159.90"),
			Category:         CategoryCitrus,
			Stock:            11,
		}},
	}

	out := make([]Product, 0, len(drafts))
	for i, d := range drafts {
		out = append(out, Product{
			ID:               d.id,
			Slug:             Slugify(d.draft.Name),
			Name:             d.draft.Name,
			Description:      d.draft.Description,
			ShortDescription: d.draft.ShortDescription,
			Price:            d.draft.Price,
			Category:         d.draft.Category,
			Stock:            d.draft.Stock,
			Featured:         d.draft.Featured,
			CreatedAt:        at(i),
		})
	}
	return out
}
