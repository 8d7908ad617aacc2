package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// NewDB opens a connection pool for the configured driver. MySQL is the
// production store; SQLite backs development and tests. SQLite gets
// foreign_keys enabled explicitly, since cascade deletes depend on it.
func NewDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "mysql":
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil

	case "sqlite":
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
			db.Close()
			return nil, err
		}
		// The pragma is per-connection; pin to one so it holds.
		db.SetMaxOpenConns(1)
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
