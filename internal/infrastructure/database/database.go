// Package database opens the shared *sql.DB handle and applies the schema.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Options configure a database handle.
type Options struct {
	Dialect      Dialect
	DSN          string
	MaxOpenConns int
}

// Open creates the handle without contacting the server. Connectivity is
// checked separately with Ping so that a missing database does not stop
// the process from serving.
func Open(opts Options) (*sql.DB, error) {
	db, err := sql.Open(opts.Dialect.DriverName(), opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Dialect, err)
	}

	switch {
	case opts.Dialect == SQLite:
		// single writer
		db.SetMaxOpenConns(1)
	case opts.MaxOpenConns > 0:
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	return db, nil
}

// Ping verifies the handle can reach the server.
func Ping(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
