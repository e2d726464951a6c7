package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const DriverName = "sqlite"

// busyTimeoutMillis bounds how long a write waits on the lock held by another
// wardrobe-budget process sharing the same ledger file.
const busyTimeoutMillis = 5000

const dataDirPerm = 0o700

// Budget categories are deleted with their budget through ON DELETE CASCADE,
// which only fires with foreign keys on.
var connectionPragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA foreign_keys = ON;",
	fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMillis),
}

// Open opens the ledger database at dbPath, creating its parent directory when
// needed, and applies the connection pragmas.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("sqlite open: db path is required")
	}
	if err := ensureParentDir(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Connection-local pragmas only hold on a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping %s: %w", dbPath, err)
	}

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenAndMigrate opens the ledger and brings its schema up to date. An empty
// migrationsDir uses the migrations embedded in the binary; otherwise the SQL
// files in migrationsDir are applied instead.
func OpenAndMigrate(ctx context.Context, dbPath, migrationsDir string) (*sql.DB, error) {
	db, err := Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func ensureParentDir(dbPath string) error {
	if dbPath == ":memory:" || strings.HasPrefix(dbPath, "file:") {
		return nil
	}
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return fmt.Errorf("sqlite open: create data dir %s: %w", dir, err)
	}
	return nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	for _, stmt := range connectionPragmas {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", stmt, err)
		}
	}
	return nil
}
