package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"storefront/internal/app"
	"storefront/internal/cartstore"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/httpserver"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/notify"
	cartrepo "storefront/internal/repository/cart"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	"storefront/internal/tracing"
)

func main() {
	cfg := config.FromEnv()

	flags := pflag.NewFlagSet("storefront", pflag.ExitOnError)
	addr := flags.String("addr", cfg.HTTPAddr, "HTTP listen address")
	cartStore := flags.String("cart-store", cfg.CartStore, "cart store: sqlite, postgres, redis or memory")
	_ = flags.Parse(os.Args[1:])
	cfg.HTTPAddr = *addr
	cfg.CartStore = *cartStore

	log := logger.New("storefront", cfg.LogLevel, cfg.Development())

	ctx := context.Background()

	stopTracing := func(context.Context) error { return nil }
	if cfg.TracingEnabled {
		shutdown, err := tracing.Setup(ctx, "storefront", cfg.JaegerEndpoint, log)
		if err != nil {
			log.Fatal().Err(err).Msg("init tracing")
		}
		stopTracing = shutdown
	}

	store, closeStore, err := cartstore.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("cart_store", cfg.CartStore).Msg("open cart store")
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	client := catalog.NewClient(cfg.CatalogBaseURL,
		catalog.WithTimeout(cfg.CatalogTimeout),
		catalog.WithLogger(log.With().Str("component", "catalog_client").Logger()),
		catalog.WithMetrics(m),
	)
	catalogService := catalogsvc.New(client,
		catalogsvc.WithLimit(cfg.CatalogProductLimit),
		catalogsvc.WithDetailFromCache(cfg.CatalogDetailFromCache),
		catalogsvc.WithLogger(log.With().Str("component", "catalog").Logger()),
	)
	cartRepo := cartrepo.New(store, cfg.CartStorageKey, log.With().Str("component", "cart_repo").Logger())
	cartService := cartsvc.New(ctx, cartRepo, catalogService, m)
	ctrl := app.New(catalogService, cartService, notify.New(), log.With().Str("component", "app").Logger())

	ctrl.Init(ctx)

	srv := httpserver.New(cfg.HTTPAddr, log, httpserver.Deps{
		Controller: ctrl,
		Catalog:    catalogService,
		Cart:       cartService,
		Ready:      cartRepo,
		Gatherer:   reg,
	}, cfg.CORSAllowedOrigins)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("cart_store", cfg.CartStore).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		log.Info().Msg("server stopped")
	}
	if err := stopTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("flush traces")
	}
}
