package client

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/notekeeper/internal/client/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// gooseUp is a test seam around the goose provider.
var gooseUp = func(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, embedded fs.FS, dir string) error {
	fsys, err := fs.Sub(embedded, dir)
	if err != nil {
		return fmt.Errorf("failed to open %s migrations: %w", dir, err)
	}
	if err := gooseUp(ctx, db, dialect, fsys); err != nil {
		return fmt.Errorf("failed to apply %s migrations: %w", dir, err)
	}
	return nil
}

// RunMigrations applies the local cache migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, goose.DialectSQLite3, migrations.Local, "local")
}

// OpenCache opens (creating if needed) the SQLite cache at dsn and migrates it.
func OpenCache(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", dsn, err)
	}
	// One connection keeps ":memory:" databases coherent and serialises writers.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenRemote returns a lazily connecting pool for the remote Postgres store.
// No connection is attempted, so the client can start offline.
func OpenRemote(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote store: %w", err)
	}
	return db, nil
}

// MigrateRemote bootstraps the remote schema.
func MigrateRemote(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, goose.DialectPostgres, migrations.Remote, "remote")
}
