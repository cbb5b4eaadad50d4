package db

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrations holds the SQL migration files compiled into the binary.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// NewMigrator builds a migrate instance over the embedded migrations.
func NewMigrator(dbURL string) (*migrate.Migrate, error) {
	migrationsFS, err := fs.Sub(Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to get embedded migrations: %w", err)
	}

	d, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs driver: %w", err)
	}

	return migrate.NewWithSourceInstance("iofs", d, dbURL)
}

// Migrate brings the schema fully up to date. Returns the version migrated
// to; a nil error with no pending migrations is not a failure.
func Migrate(dbURL string) (uint, error) {
	m, err := NewMigrator(dbURL)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return 0, fmt.Errorf("migration failed: %w", err)
	}

	version, _, _ := m.Version()
	return version, nil
}
