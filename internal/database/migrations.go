package database

import (
	"context"
	"fmt"
	"strings"

	"melite/internal/log"
)

// Migration represents a database migration
type Migration struct {
	ID          int
	Description string
	SQL         string
}

// migrations contains all database migrations in order
var migrations = []Migration{
	{
		ID:          1,
		Description: "Commanders table",
		SQL: `
CREATE TABLE IF NOT EXISTS commanders (
	name TEXT PRIMARY KEY,
	galaxy INTEGER NOT NULL,
	system INTEGER NOT NULL,
	cash INTEGER NOT NULL,
	fuel INTEGER NOT NULL,
	cargo_bay INTEGER NOT NULL,
	native_rand BOOLEAN NOT NULL DEFAULT TRUE,
	rand_state INTEGER NOT NULL DEFAULT 0,
	saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		ID:          2,
		Description: "Cargo and market snapshots",
		SQL: `
CREATE TABLE IF NOT EXISTS commander_cargo (
	commander TEXT NOT NULL REFERENCES commanders(name) ON DELETE CASCADE,
	good INTEGER NOT NULL,
	quantity INTEGER NOT NULL,
	PRIMARY KEY (commander, good)
);
CREATE TABLE IF NOT EXISTS commander_market (
	commander TEXT NOT NULL REFERENCES commanders(name) ON DELETE CASCADE,
	good INTEGER NOT NULL,
	price INTEGER NOT NULL,
	quantity INTEGER NOT NULL,
	PRIMARY KEY (commander, good)
);`,
	},
	{
		ID:          3,
		Description: "Native generator position",
		SQL: `
ALTER TABLE commanders ADD COLUMN rand_seed INTEGER NOT NULL DEFAULT 0;
ALTER TABLE commanders ADD COLUMN rand_draws INTEGER NOT NULL DEFAULT 0;`,
	},
}

// MigrationStatus represents the status of a migration
type MigrationStatus struct {
	ID          int
	Description string
	Applied     bool
}

// runMigrations executes all pending migrations
func (d *DB) runMigrations(ctx context.Context) error {
	if err := d.ensureSchemaVersionTable(ctx); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	currentVersion, err := d.currentSchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	log.Debug("schema version", "path", d.path, "version", currentVersion)

	for _, migration := range migrations {
		if migration.ID <= currentVersion {
			continue
		}
		log.Info("applying migration", "id", migration.ID, "description", migration.Description)
		if err := d.applyMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.ID, err)
		}
	}
	return nil
}

func (d *DB) ensureSchemaVersionTable(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`)
	return err
}

func (d *DB) currentSchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := d.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version;`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// applyMigration runs every statement of a migration and records it, all in one transaction
func (d *DB) applyMigration(ctx context.Context, migration Migration) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range strings.Split(migration.SQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration statement: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?);`, migration.ID); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}

// Migrations reports which migrations have been applied
func (d *DB) Migrations(ctx context.Context) ([]MigrationStatus, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT version FROM schema_version ORDER BY version;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	status := make([]MigrationStatus, 0, len(migrations))
	for _, migration := range migrations {
		status = append(status, MigrationStatus{
			ID:          migration.ID,
			Description: migration.Description,
			Applied:     applied[migration.ID],
		})
	}
	return status, nil
}
