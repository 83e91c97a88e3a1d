package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// ErrUnsupportedDriver is returned when Config.Driver names a database the
// module has no dialect for.
var ErrUnsupportedDriver = errors.New("storage: unsupported driver")

// Config captures the runtime configuration for the publication store.
type Config struct {
	Driver string
	DSN    string
	// MaxOpenConns bounds the pool size; shared-cache SQLite needs 1.
	MaxOpenConns int
}

// Open constructs a bun.DB for the configured driver. Supported drivers are
// "sqlite3" (mattn/go-sqlite3) and "postgres" (lib/pq).
func Open(cfg Config) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", "sqlite", "sqlite3":
		return openSQLite(cfg)
	case "postgres", "postgresql", "pg":
		return openPostgres(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func openSQLite(cfg Config) (*bun.DB, error) {
	dsn := cfg.DSN
	if strings.TrimSpace(dsn) == "" {
		dsn = "file::memory:?cache=shared"
	}
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 && strings.Contains(dsn, ":memory:") {
		maxConns = 1
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return db, nil
}

func openPostgres(cfg Config) (*bun.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("storage: postgres requires a DSN")
	}
	sqlDB, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open postgres: %w", err)
	}
	db := bun.NewDB(sqlDB, pgdialect.New())
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return db, nil
}
