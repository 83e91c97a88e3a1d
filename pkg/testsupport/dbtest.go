package testsupport

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// NewSQLiteMemoryDB opens a shared-cache in-memory SQLite database.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewBunSQLiteDB opens an in-memory SQLite database wrapped in bun and
// registers a cleanup. The pool is capped at one connection so the shared
// cache behaves across goroutines.
func NewBunSQLiteDB(tb testing.TB) *bun.DB {
	tb.Helper()

	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		tb.Fatalf("new sqlite db: %v", err)
	}
	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db
}

// CreatePublicationsTable installs the publications schema used by
// integration tests.
func CreatePublicationsTable(tb testing.TB, db *bun.DB) {
	tb.Helper()

	const ddl = `
CREATE TABLE IF NOT EXISTS publications (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL UNIQUE,
    slug TEXT NOT NULL,
    title TEXT,
    selected_ordinal INTEGER NOT NULL,
    variant_count INTEGER NOT NULL,
    checksum BLOB NOT NULL,
    published_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP,
    updated_at TIMESTAMP,
    deleted_at TIMESTAMP
)`
	if _, err := db.ExecContext(context.Background(), ddl); err != nil {
		tb.Fatalf("create publications table: %v", err)
	}
}
