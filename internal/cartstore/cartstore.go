// Package cartstore opens the key-value store selected by configuration.
package cartstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/migrate"
	cartrepo "storefront/internal/repository/cart"
)

// Open builds the configured store. The returned func releases its
// connections and is safe to call once.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (cartrepo.Store, func(), error) {
	switch cfg.CartStore {
	case config.CartStoreMemory:
		logger.Warn().Msg("memory cart store: cart is lost on restart")
		return cartrepo.NewMemoryStore(), func() {}, nil

	case config.CartStoreSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := cartrepo.NewSQLite(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return store, func() { sqlDB.Close() }, nil

	case config.CartStorePostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		if _, err := migrate.Up(ctx, pool, migrate.WithLogger(logger.With().Str("component", "migrate").Logger())); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		return cartrepo.NewPostgres(pool), pool.Close, nil

	case config.CartStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return cartrepo.NewRedis(client), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown cart store %q", cfg.CartStore)
	}
}
