package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"wardrobe-budget/migrations"

	"github.com/pressly/goose/v3"
)

// RunMigrations applies every pending migration. An empty migrationsDir uses
// the migrations embedded in the binary.
func RunMigrations(ctx context.Context, db *sql.DB, migrationsDir string) error {
	provider, err := newMigrationProvider(db, migrationsDir)
	if err != nil {
		return err
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration version.
func SchemaVersion(ctx context.Context, db *sql.DB, migrationsDir string) (int64, error) {
	provider, err := newMigrationProvider(db, migrationsDir)
	if err != nil {
		return 0, err
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose version: %w", err)
	}
	return version, nil
}

func newMigrationProvider(db *sql.DB, migrationsDir string) (*goose.Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("run migrations: db is nil")
	}

	var fsys fs.FS = migrations.FS
	if migrationsDir != "" {
		fsys = os.DirFS(migrationsDir)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("create goose provider: %w", err)
	}
	return provider, nil
}
