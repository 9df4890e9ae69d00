package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// migrationDB is the minimal surface the migration runner needs from a driver.
type migrationDB interface {
	exec(ctx context.Context, query string, args ...any) error
	applied(ctx context.Context, version string) (bool, error)
	record(ctx context.Context, version string) error
}

// RunMigrations applies pending PostgreSQL migrations in order.
// Migrations are tracked in a schema_migrations table.
// There are no down migrations; fix forward only.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return runMigrations(ctx, "migrations/postgres", pgxMigrationDB{pool: pool}, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
}

// runSQLiteMigrations applies pending SQLite migrations in order.
func runSQLiteMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, "migrations/sqlite", sqlMigrationDB{db: db}, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		)`)
}

func runMigrations(ctx context.Context, dir string, db migrationDB, bootstrap string) error {
	if err := db.exec(ctx, bootstrap); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Lexicographic order gives us version order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version := entry.Name()

		exists, err := db.applied(ctx, version)
		if err != nil {
			return fmt.Errorf("checking migration %s: %w", version, err)
		}
		if exists {
			continue
		}

		body, err := migrationsFS.ReadFile(path.Join(dir, version))
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", version, err)
		}

		if err := db.exec(ctx, string(body)); err != nil {
			return fmt.Errorf("applying migration %s: %w", version, err)
		}

		if err := db.record(ctx, version); err != nil {
			return fmt.Errorf("recording migration %s: %w", version, err)
		}
	}

	return nil
}

type pgxMigrationDB struct {
	pool *pgxpool.Pool
}

func (m pgxMigrationDB) exec(ctx context.Context, query string, args ...any) error {
	_, err := m.pool.Exec(ctx, query, args...)
	return err
}

func (m pgxMigrationDB) applied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
		version,
	).Scan(&exists)
	return exists, err
}

func (m pgxMigrationDB) record(ctx context.Context, version string) error {
	return m.exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version)
}

type sqlMigrationDB struct {
	db *sql.DB
}

func (m sqlMigrationDB) exec(ctx context.Context, query string, args ...any) error {
	_, err := m.db.ExecContext(ctx, query, args...)
	return err
}

func (m sqlMigrationDB) applied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)",
		version,
	).Scan(&exists)
	return exists, err
}

func (m sqlMigrationDB) record(ctx context.Context, version string) error {
	return m.exec(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version)
}
