package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	"storefront/internal/migrate"
)

func main() {
	cfg := config.FromEnv()

	flags := pflag.NewFlagSet("migrate", pflag.ExitOnError)
	dsn := flags.String("dsn", cfg.DBConnString, "Postgres connection string")
	down := flags.Int("down", 0, "revert this many migrations instead of applying")
	status := flags.Bool("status", false, "print the current schema version and exit")
	_ = flags.Parse(os.Args[1:])

	log := logger.New("migrate", cfg.LogLevel, cfg.Development())

	ctx := context.Background()
	pool, err := db.Connect(ctx, *dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	opt := migrate.WithLogger(log)
	var st migrate.Status
	switch {
	case *status:
		st, err = migrate.Current(ctx, pool, opt)
	case *down > 0:
		st, err = migrate.Down(ctx, pool, *down, opt)
	default:
		st, err = migrate.Up(ctx, pool, opt)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if st.Dirty {
		log.Warn().Uint("version", st.Version).Msg("schema is dirty; fix it by hand before migrating again")
	}
}
