package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Direction selects which way migrations run.
type Direction int

const (
	Up Direction = iota
	Down
)

// Migrate applies (or reverts) the embedded migrations for the dialect.
// It opens its own handle because closing a migrate instance closes the
// underlying *sql.DB.
func Migrate(opts Options, dir Direction) error {
	db, err := Open(opts)
	if err != nil {
		return err
	}

	var drv migratedb.Driver
	switch opts.Dialect {
	case Postgres:
		drv, err = migratepostgres.WithInstance(db, &migratepostgres.Config{})
	case SQLite:
		drv, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		drv, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(opts.Dialect))
	if err != nil {
		drv.Close()
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(opts.Dialect), drv)
	if err != nil {
		drv.Close()
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	if dir == Down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration run: %w", err)
	}

	version, dirty, _ := m.Version()
	slog.Info("migrations applied", "dialect", opts.Dialect, "version", version, "dirty", dirty)
	return nil
}
