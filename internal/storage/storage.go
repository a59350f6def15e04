// Package storage opens the database that backs the token store and applies
// the embedded schema migrations.
//
// Two dialects are supported: SQLite (modernc.org/sqlite, the default for
// the CLI and single-node servers) and PostgreSQL (pgx stdlib driver).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/progressboard/internal/dbx"
	"github.com/dmitrijs2005/progressboard/internal/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// ParseDialect maps a config value to a dbx.Dialect.
func ParseDialect(s string) (dbx.Dialect, error) {
	switch s {
	case "", "sqlite", "sqlite3":
		return dbx.SQLite, nil
	case "pgx", "postgres", "postgresql":
		return dbx.Postgres, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", s)
}

func gooseDialect(d dbx.Dialect) (goose.Dialect, string) {
	if d == dbx.Postgres {
		return goose.DialectPostgres, "postgres"
	}
	return goose.DialectSQLite3, "sqlite"
}

// RunMigrations applies every pending migration of dialect d to db.
func RunMigrations(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	dialect, dir := gooseDialect(d)

	fsys, err := fs.Sub(migrations.Migrations, dir)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Open connects to the database and migrates it.
func Open(ctx context.Context, d dbx.Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, err
	}

	if d == dbx.SQLite {
		// a single writer avoids SQLITE_BUSY between concurrent requests
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}

	if err := RunMigrations(ctx, db, d); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
