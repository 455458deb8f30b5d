package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/RuanLimah/boutique/internal/cart"
	"github.com/RuanLimah/boutique/internal/catalog"
	"github.com/RuanLimah/boutique/internal/config"
	"github.com/RuanLimah/boutique/internal/storage"
	"github.com/RuanLimah/boutique/internal/storefront"
	"github.com/RuanLimah/boutique/pkg/kit"
)

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg := config.Load()

	// The app stays usable with persistence disabled; state just stops
	// surviving restarts.
	var kv storage.KV
	if fs, err := storage.NewFileStore(cfg.DataDir); err != nil {
		log.Warn("persistence disabled", zap.Error(err), zap.String("dir", cfg.DataDir))
		kv = storage.Discard{}
	} else {
		kv = fs
	}

	catalogStore := catalog.NewStore(kv, log)
	cartStore := cart.NewStore(kv, log)

	h := storefront.NewHandler(
		storefront.Deps{
			Catalog:        catalogStore,
			Cart:           cartStore,
			CheckoutDelay:  cfg.CheckoutDelay,
			AdminRateLimit: cfg.AdminRateLimit,
		},
		storefront.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       prometheus.NewRegistry(),
			MetricsEnabled: cfg.MetricsEnabled,
			MetricsToken:   cfg.MetricsToken,
		},
	)

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
