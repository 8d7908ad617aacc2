package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/dropdesk/dropdesk-go/internal/repository/migrations"
)

// Migrate applies any pending schema migrations from the embedded
// per-dialect files. Safe to call on every startup.
func Migrate(db *sql.DB, driver string) error {
	var dbDriver database.Driver
	var err error

	switch driver {
	case "mysql":
		dbDriver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case "sqlite":
		dbDriver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	src, err := iofs.New(migrations.FS, driver)
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}

	instance, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}
