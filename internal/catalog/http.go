package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/RuanLimah/boutique/pkg/kit"
)

type Server struct {
	Store *Store
	Log   *zap.Logger
}

const maxBody = 1 << 20

// Routes is the public storefront surface.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", s.list)
	r.Get("/products/featured", s.featured)
	r.Get("/products/search", s.search)
	r.Get("/products/{slug}", s.bySlug)
	r.Get("/categories", s.categories)

	return r
}

// AdminRoutes is the CRUD surface; the caller decides how to guard it.
func (s *Server) AdminRoutes() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", s.adminList)
	r.Get("/products/low-stock", s.lowStock)
	r.Post("/products", s.create)
	r.Put("/products/{id}", s.update)
	r.Delete("/products/{id}", s.delete)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	f, err := filtersFromQuery(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Store.Filter(f))
}

func (s *Server) featured(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.ListFeatured())
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.Search(r.URL.Query().Get("q")))
}

func (s *Server) bySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, ok := s.Store.GetBySlug(slug)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"slug": slug})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type categoryView struct {
	Code        Category `json:"code"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	cats := Categories()
	out := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryView{Code: c, Label: c.Label(), Description: c.Description()})
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) adminList(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Store.List())
}

// lowStock lists products at or under the restock threshold.
const lowStockThreshold = 5

func (s *Server) lowStock(w http.ResponseWriter, r *http.Request) {
	var out []Product
	for _, p := range s.Store.List() {
		if p.Stock <= lowStockThreshold {
			out = append(out, p)
		}
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var d Draft
	if err := decodeBody(w, r, &d); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if msg := validateDraft(d); msg != "" {
		kit.WriteError(w, r, http.StatusBadRequest, msg, nil)
		return
	}

	p := s.Store.Add(d)
	if s.Log != nil {
		s.Log.Info("product added", zap.String("id", p.ID), zap.String("slug", p.Slug))
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch Patch
	if err := decodeBody(w, r, &patch); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if msg := validatePatch(patch); msg != "" {
		kit.WriteError(w, r, http.StatusBadRequest, msg, nil)
		return
	}

	p, err := s.Store.Update(id, patch)
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.Store.Delete(id)
	if errors.Is(err, ErrNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if s.Log != nil {
		s.Log.Info("product deleted", zap.String("id", id), zap.String("name", p.Name))
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func filtersFromQuery(r *http.Request) (Filters, error) {
	q := r.URL.Query()
	f := Filters{
		Category: Category(q.Get("category")),
		Search:   q.Get("q"),
		SortBy:   SortBy(q.Get("sort")),
	}

	if f.Category != "" && f.Category != "all" && !f.Category.Valid() {
		return Filters{}, errors.New("unknown category")
	}
	if f.SortBy != "" && !f.SortBy.Valid() {
		return Filters{}, errors.New("unknown sort")
	}

	if v := q.Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Filters{}, errors.New("bad min_price")
		}
		f.MinPrice = &d
	}
	if v := q.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return Filters{}, errors.New("bad max_price")
		}
		f.MaxPrice = &d
	}

	return f, nil
}

// Business validation lives at this boundary; the store only enforces
// structural invariants.
func validateDraft(d Draft) string {
	if d.Name == "" {
		return "name required"
	}
	if d.Price.IsNegative() {
		return "price must not be negative"
	}
	if d.Stock < 0 {
		return "stock must not be negative"
	}
	if !d.Category.Valid() {
		return "unknown category"
	}
	return ""
}

func validatePatch(p Patch) string {
	if p.Name != nil && *p.Name == "" {
		return "name must not be empty"
	}
	if p.Price != nil && p.Price.IsNegative() {
		return "price must not be negative"
	}
	if p.Stock != nil && *p.Stock < 0 {
		return "stock must not be negative"
	}
	if p.Category != nil && !p.Category.Valid() {
		return "unknown category"
	}
	return ""
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
