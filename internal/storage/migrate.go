package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp brings the schema to the latest version. Applied migrations
// are recorded in schema_migrations, so reopening an existing database
// only runs the scripts it has not seen yet.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("storage: init schema_migrations: %w", err)
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}
	names, err := migrationNames(".up.sql")
	if err != nil {
		return err
	}
	for _, name := range names {
		key := migrationKey(name)
		if applied[key] {
			continue
		}
		err := runMigration(db, name, func(tx *sql.Tx) error {
			_, err := tx.Exec(`INSERT INTO schema_migrations (name) VALUES (?)`, key)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown unwinds the schema by running every down script in
// reverse order and clearing its schema_migrations record.
func MigrateDown(db *sql.DB) error {
	names, err := migrationNames(".down.sql")
	if err != nil {
		return err
	}
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		err := runMigration(db, name, func(tx *sql.Tx) error {
			_, err := tx.Exec(`DELETE FROM schema_migrations WHERE name = ?`, migrationKey(name))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// runMigration executes one embedded script and the bookkeeping update
// in a single transaction.
func runMigration(db *sql.DB, name string, record func(tx *sql.Tx) error) error {
	script, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("storage: read migration %s: %w", name, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin migration %s: %w", name, err)
	}
	if _, err := tx.Exec(string(script)); err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: apply migration %s: %w", name, err)
	}
	if err := record(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: record migration %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit migration %s: %w", name, err)
	}
	return nil
}

func migrationNames(suffix string) ([]string, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("storage: glob migrations: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// migrationKey strips the directory and direction suffix, so the up and
// down scripts of one migration share a ledger entry.
func migrationKey(name string) string {
	key := strings.TrimPrefix(name, "migrations/")
	key = strings.TrimSuffix(key, ".up.sql")
	key = strings.TrimSuffix(key, ".down.sql")
	return key
}

func appliedMigrations(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("storage: list applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: scan applied migration: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}
