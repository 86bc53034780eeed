package client

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("tableExists query failed: %v", err)
	}
	return n > 0
}

func TestInitDatabase_CreatesDBAndGooseVersionTable(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("db.PingContext failed: %v", err)
	}

	if !tableExists(t, db, "goose_db_version") {
		t.Fatalf("expected goose_db_version table to exist after migrations")
	}
	if !tableExists(t, db, "metadata") {
		t.Fatalf("expected metadata table to exist after migrations")
	}
}

func TestInitDatabase_CreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "state", "trustcart.db")

	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dsn); err != nil {
		t.Fatalf("expected database file at %s: %v", dsn, err)
	}
}

func TestInitDatabase_InMemory(t *testing.T) {
	db, err := InitDatabase(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer db.Close()

	if !tableExists(t, db, "metadata") {
		t.Fatalf("expected metadata table in the in-memory database")
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations (first) error: %v", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations (second) should be idempotent, got error: %v", err)
	}

	if !tableExists(t, db, "goose_db_version") {
		t.Fatalf("expected goose_db_version table to exist after repeated migrations")
	}
}

func TestInitDatabase_TokenRowRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES ('token', 'abc')`)
	if err != nil {
		t.Fatalf("insert token failed: %v", err)
	}
	var got string
	if err := db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = 'token'`).Scan(&got); err != nil {
		t.Fatalf("select token failed: %v", err)
	}
	if got != "abc" {
		t.Fatalf("unexpected token value: %q", got)
	}
}
