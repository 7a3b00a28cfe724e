package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"spendly/internal/logger"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// NewMigrator returns a migrate instance over the embedded migrations for the
// configured driver. The caller must Close it.
func NewMigrator(config *Config) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+config.Driver)
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	switch config.Driver {
	case DriverPostgres:
		m, err := migrate.NewWithSourceInstance("iofs", src, config.MigrateURL())
		if err != nil {
			return nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, nil

	case DriverSQLite:
		// A separate connection, so closing the migrator leaves the
		// application's pool alone.
		migrateDB, err := sql.Open("sqlite3", config.DSN())
		if err != nil {
			return nil, fmt.Errorf("open migration database: %w", err)
		}
		driver, err := sqlite3.WithInstance(migrateDB, &sqlite3.Config{})
		if err != nil {
			_ = migrateDB.Close()
			return nil, fmt.Errorf("create sqlite driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
		if err != nil {
			_ = migrateDB.Close()
			return nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
}

// Migrate applies every pending up migration.
func Migrate(config *Config) error {
	m, err := NewMigrator(config)
	if err != nil {
		return err
	}
	defer CloseMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// CloseMigrator closes m and logs, rather than returns, close errors.
func CloseMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}
