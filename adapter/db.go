// Package adapter runs compiled statements through database/sql.
//
// A DB pairs a connection pool with the Dialect that compiles statements
// for it. Sessions pin a single connection and optionally a transaction:
//
//	db, err := adapter.Open(ctx, cfg, nil)
//	s, err := db.GetConnection(ctx)
//	defer db.Close(s)
//	if err := db.InitTransaction(ctx, s); err != nil { ... }
//	rs, err := db.RunStatement(ctx, s, stmt)
//	err = db.Commit(s)
package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nitinet/dblink-core/config"
	"github.com/nitinet/dblink-core/internal/types"
)

// Dialect compiles statements and converts values for one database.
type Dialect interface {
	types.Handler
	types.ValueCodec
	types.Placeholder
	Name() string
}

// Errors returned by DB and Session operations.
var (
	ErrNotConnected      = errors.New("database connection not established")
	ErrSessionClosed     = errors.New("session is closed")
	ErrNoTransaction     = errors.New("no transaction in progress")
	ErrTransactionActive = errors.New("transaction already in progress")
)

// DB is a connection pool bound to a dialect. It is safe for concurrent use.
type DB struct {
	db      *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *DB) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func newDB(db *sql.DB, dialect Dialect, opts []Option) *DB {
	d := &DB{
		db:      db,
		dialect: dialect,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open connects to the database described by cfg. When dialect is nil the
// dialect registered under cfg.Dialect is used.
func Open(ctx context.Context, cfg *config.Config, dialect Dialect, opts ...Option) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	drv, ok := Lookup(cfg.Dialect)
	if !ok {
		return nil, &UnknownDialectError{Name: cfg.Dialect, Available: ListDialects()}
	}
	if dialect == nil {
		dialect = drv.Dialect()
	}

	dsn, err := drv.DSN(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s DSN: %w", cfg.Dialect, err)
	}

	db, err := sql.Open(drv.Name, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", cfg.Dialect, err)
	}

	switch {
	case cfg.Dialect == "sqlite" && cfg.Database == ":memory:":
		// every connection would see its own empty database
		db.SetMaxOpenConns(1)
	case cfg.ConnectionLimit > 0:
		db.SetMaxOpenConns(cfg.ConnectionLimit)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	d := newDB(db, dialect, opts)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.Dialect, err)
	}

	d.logger.Info("connected to database",
		slog.String("dialect", dialect.Name()),
		slog.String("driver", drv.Name),
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database))
	return d, nil
}

// NewWithDB wraps an existing pool.
func NewWithDB(db *sql.DB, dialect Dialect, opts ...Option) *DB {
	return newDB(db, dialect, opts)
}

// Dialect returns the dialect statements are compiled with.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Ping verifies the pool can reach the database.
func (d *DB) Ping(ctx context.Context) error {
	if d.db == nil {
		return ErrNotConnected
	}
	return d.db.PingContext(ctx)
}

// Shutdown closes the pool.
func (d *DB) Shutdown() error {
	if d.db == nil {
		return nil
	}
	d.logger.Info("closing database connection", slog.String("dialect", d.dialect.Name()))
	return d.db.Close()
}
