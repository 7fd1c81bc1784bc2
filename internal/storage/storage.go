// Package storage opens the relational database that backs the credential
// store and brings its schema up to date with goose.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// Supported database/sql driver names
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

//go:embed migrations
var migrations embed.FS

// goose keeps its dialect, filesystem and logger in package globals
var gooseLock sync.Mutex

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects with the named driver, verifies the connection and applies
// pending migrations.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	migrationsDir, err := migrationsFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma error: %w", err)
		}
	}

	if err := RunMigrations(ctx, db, driver, migrationsDir); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}

func migrationsFor(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "migrations/postgres", nil
	case DriverSQLite:
		return "migrations/sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// RunMigrations sets up goose with the embedded migrations in dir and runs
// them against db.
func RunMigrations(ctx context.Context, db *sql.DB, driver, dir string) error {
	sub, err := fs.Sub(migrations, dir)
	if err != nil {
		return err
	}

	gooseLock.Lock()
	defer gooseLock.Unlock()

	goose.SetLogger(newMigrationLogger())
	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(driver); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
