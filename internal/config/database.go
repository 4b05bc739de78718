package config

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func NewDB(cfg *Config) (*sqlx.DB, error) {
	switch cfg.DatabaseDriver {
	case "postgres":
		db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		return db, nil
	case "sqlite":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = "storefront-admin.db"
		}
		db, err := sqlx.Connect("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}
