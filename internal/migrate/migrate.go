// Package migrate versions the Postgres cart schema from SQL files embedded
// in the binary.
package migrate

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Status is the schema version recorded in schema_migrations. Version zero
// means no migration has been applied.
type Status struct {
	Version uint
	Dirty   bool
}

type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger routes golang-migrate's progress lines and the final version
// to l.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Up applies every pending cart schema migration.
func Up(ctx context.Context, pool *pgxpool.Pool, opts ...Option) (Status, error) {
	return run(ctx, pool, "up", opts, func(m *migrate.Migrate) error { return m.Up() })
}

// Down reverts the last n applied migrations.
func Down(ctx context.Context, pool *pgxpool.Pool, n int, opts ...Option) (Status, error) {
	if n < 1 {
		return Status{}, fmt.Errorf("migrate down: steps must be positive, got %d", n)
	}
	return run(ctx, pool, "down", opts, func(m *migrate.Migrate) error { return m.Steps(-n) })
}

// Current reports the version without changing anything.
func Current(ctx context.Context, pool *pgxpool.Pool, opts ...Option) (Status, error) {
	return run(ctx, pool, "version", opts, func(*migrate.Migrate) error { return nil })
}

func run(ctx context.Context, pool *pgxpool.Pool, op string, opts []Option, step func(*migrate.Migrate) error) (Status, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	src, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return Status{}, fmt.Errorf("migrate %s: open embedded sql: %w", op, err)
	}

	// Closing sqlDB leaves pool open.
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()
	if err := sqlDB.PingContext(ctx); err != nil {
		return Status{}, fmt.Errorf("migrate %s: ping: %w", op, err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return Status{}, fmt.Errorf("migrate %s: postgres driver: %w", op, err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return Status{}, fmt.Errorf("migrate %s: %w", op, err)
	}
	defer m.Close()
	m.Log = migrateLogger{o.logger}

	if err := stepErr(step(m)); err != nil {
		return Status{}, fmt.Errorf("migrate %s: %w", op, err)
	}

	st, err := statusOf(m.Version())
	if err != nil {
		return Status{}, fmt.Errorf("migrate %s: read version: %w", op, err)
	}
	o.logger.Info().Str("op", op).Uint("version", st.Version).Bool("dirty", st.Dirty).Msg("cart schema")
	return st, nil
}

// stepErr treats "nothing to do" as success and points at unpaired files
// when golang-migrate cannot find a version's counterpart.
func stepErr(err error) error {
	switch {
	case err == nil, errors.Is(err, migrate.ErrNoChange):
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w (each sql/NNNNNN_name needs .up.sql and .down.sql)", err)
	default:
		return err
	}
}

func statusOf(version uint, dirty bool, err error) (Status, error) {
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}
	return Status{Version: version, Dirty: dirty}, nil
}

// migrateLogger adapts zerolog to migrate.Logger.
type migrateLogger struct {
	logger zerolog.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return l.logger.GetLevel() <= zerolog.DebugLevel
}
