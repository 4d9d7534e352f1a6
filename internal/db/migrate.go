package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// registers the postgres:// scheme used by MigratePostgres
	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"crowdfund/db/migrations"
)

// MigratePostgres applies the embedded PostgreSQL migrations to the database
// at addr.
func MigratePostgres(addr string) error {
	src, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		return err
	}
	mg, err := migrate.NewWithSourceInstance("iofs", src, addr)
	if err != nil {
		return err
	}
	defer mg.Close()
	return run(mg)
}

// MigrateSQLite applies the embedded SQLite migrations to the file at path.
// It uses its own connection, which is closed on return.
func MigrateSQLite(path string) error {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	driver, err := sqlite.WithInstance(conn, &sqlite.Config{})
	if err != nil {
		_ = conn.Close()
		return err
	}
	src, err := iofs.New(migrations.SQLite, "sqlite")
	if err != nil {
		_ = driver.Close()
		return err
	}
	mg, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		_ = driver.Close()
		return err
	}
	defer mg.Close()
	return run(mg)
}

func run(mg *migrate.Migrate) error {
	_, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	if dirty {
		return errors.New("database is in dirty state")
	}
	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
