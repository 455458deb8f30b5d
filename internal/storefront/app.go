// Package storefront composes the catalog and cart surfaces into the
// single HTTP handler the UI talks to.
package storefront

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/RuanLimah/boutique/internal/cart"
	"github.com/RuanLimah/boutique/internal/catalog"
	"github.com/RuanLimah/boutique/pkg/kit"
)

type Deps struct {
	Catalog *catalog.Store
	Cart    *cart.Store

	CheckoutDelay  time.Duration
	AdminRateLimit int // admin mutations per minute per client IP
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(httpDeps.Log))

	setupMetrics(r, deps, httpDeps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	catalogSrv := &catalog.Server{Store: deps.Catalog, Log: httpDeps.Log}
	cartSrv := &cart.Server{
		Cart:          deps.Cart,
		Catalog:       deps.Catalog,
		Log:           httpDeps.Log,
		CheckoutDelay: deps.CheckoutDelay,
	}

	r.Mount("/cart", cartSrv.Routes())

	limit := deps.AdminRateLimit
	if limit <= 0 {
		limit = 30
	}
	limiter := kit.NewIPRateLimiter(limit, 60)
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(limiter.Middleware)
		ar.Mount("/", catalogSrv.AdminRoutes())
	})

	r.Mount("/", catalogSrv.Routes())

	return r
}

func setupMetrics(r *chi.Mux, deps Deps, httpDeps HTTPDeps) {
	if httpDeps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(httpDeps.Registry)
	r.Use(metrics.Middleware(httpDeps.Service, kit.ChiRoutePatternOrPath))

	httpDeps.Registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Products currently in the catalog",
		}, func() float64 { return float64(len(deps.Catalog.List())) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "cart_units",
			Help: "Units currently in the cart",
		}, func() float64 { return float64(deps.Cart.Count()) }),
	)

	if !httpDeps.MetricsEnabled {
		return
	}

	r.With(kit.BearerAuth(httpDeps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(httpDeps.Registry, promhttp.HandlerOpts{}))
}
