package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/RuanLimah/boutique/internal/catalog"
	"github.com/RuanLimah/boutique/pkg/kit"
)

// Server exposes the cart to the UI layer. It consults the catalog only
// when adding, to take the product snapshot; everything after that works
// off the snapshots in the cart.
type Server struct {
	Cart          *Store
	Catalog       *catalog.Store
	Log           *zap.Logger
	CheckoutDelay time.Duration
}

const maxBody = 1 << 20

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.get)
	r.Delete("/", s.clear)
	r.Post("/items", s.add)
	r.Put("/items/{productID}", s.setQuantity)
	r.Delete("/items/{productID}", s.remove)
	r.Post("/checkout", s.checkout)

	return r
}

type stateView struct {
	State
	Count int `json:"count"`
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	st := s.Cart.Get()
	kit.WriteJSON(w, http.StatusOK, stateView{State: st, Count: st.Count()})
}

type addReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.ProductID == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "quantity must be positive", nil)
		return
	}

	p, ok := s.Catalog.GetByID(req.ProductID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": req.ProductID})
		return
	}

	if s.Cart.Quantity(p.ID)+req.Quantity > p.Stock {
		kit.WriteError(w, r, http.StatusConflict, "insufficient stock", map[string]any{"stock": p.Stock})
		return
	}

	it := s.Cart.Add(p, req.Quantity)
	if s.Log != nil {
		s.Log.Info("added to cart",
			zap.String("product_id", p.ID),
			zap.Int("quantity", it.Quantity),
		)
	}
	kit.WriteJSON(w, http.StatusOK, it)
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) setQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	var req quantityReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	it, inCart := s.Cart.Item(id)
	if !inCart {
		kit.WriteError(w, r, http.StatusNotFound, "not in cart", map[string]any{"id": id})
		return
	}

	// Quantity is capped by the stock recorded in the snapshot, matching
	// what the customer was shown when adding.
	if req.Quantity > it.Product.Stock {
		kit.WriteError(w, r, http.StatusConflict, "insufficient stock", map[string]any{"stock": it.Product.Stock})
		return
	}

	s.Cart.SetQuantity(id, req.Quantity)
	st := s.Cart.Get()
	kit.WriteJSON(w, http.StatusOK, stateView{State: st, Count: st.Count()})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	it, ok := s.Cart.Remove(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not in cart", map[string]any{"id": id})
		return
	}
	if s.Log != nil {
		s.Log.Info("removed from cart", zap.String("product_id", id), zap.String("name", it.Product.Name))
	}

	st := s.Cart.Get()
	kit.WriteJSON(w, http.StatusOK, stateView{State: st, Count: st.Count()})
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	s.Cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

type checkoutReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if msg := validateCheckout(req); msg != "" {
		kit.WriteError(w, r, http.StatusBadRequest, msg, nil)
		return
	}

	receipt, err := s.Cart.Checkout(r.Context(), s.CheckoutDelay)
	if errors.Is(err, ErrEmptyCart) {
		kit.WriteError(w, r, http.StatusConflict, "cart is empty", nil)
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kit.WriteError(w, r, http.StatusRequestTimeout, "payment interrupted", nil)
		return
	}
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if s.Log != nil {
		s.Log.Info("order placed",
			zap.String("order_id", receipt.OrderID),
			zap.String("total", receipt.Total.String()),
			zap.Int("lines", len(receipt.Items)),
		)
	}
	kit.WriteJSON(w, http.StatusCreated, receipt)
}

func validateCheckout(req checkoutReq) string {
	if req.Name == "" {
		return "name required"
	}
	if req.Email == "" {
		return "email required"
	}
	if req.Address == "" {
		return "address required"
	}
	if req.City == "" {
		return "city required"
	}
	if req.ZipCode == "" {
		return "zip_code required"
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
