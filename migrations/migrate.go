package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Migrate applies all pending schema migrations for the given driver.
// PostgreSQL and SQLite keep separate migration directories because their
// DDL dialects differ; the driver name selects both the goose dialect and
// the directory.
func Migrate(db *sql.DB, driverName string) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(driverName); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	dir := "postgres"
	if driverName == "sqlite3" {
		dir = "sqlite"
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
