package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"storefront/internal/cartstore"
	"storefront/internal/config"
	"storefront/internal/logger"
	cartrepo "storefront/internal/repository/cart"
	"storefront/internal/seed"
)

func main() {
	cfg := config.FromEnv()

	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	cartStore := flags.String("cart-store", cfg.CartStore, "cart store: sqlite, postgres, redis or memory")
	force := flags.Bool("force", false, "overwrite a non-empty stored cart")
	_ = flags.Parse(os.Args[1:])
	cfg.CartStore = *cartStore

	log := logger.New("seed", cfg.LogLevel, cfg.Development())

	ctx := context.Background()
	store, closeStore, err := cartstore.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("cart_store", cfg.CartStore).Msg("open cart store")
	}
	defer closeStore()

	wrote, err := seed.Apply(ctx, cartrepo.New(store, cfg.CartStorageKey, log), *force)
	if err != nil {
		log.Fatal().Err(err).Msg("seed apply")
	}
	if !wrote {
		log.Info().Msg("cart already populated, nothing written (use --force)")
		return
	}
	log.Info().Int("items", len(seed.DemoCart)).Msg("seed applied")
}
