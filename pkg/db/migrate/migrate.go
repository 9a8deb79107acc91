// Package migrate provides database migration functionality.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/flowpro/flowpro/pkg/db"
)

const (
	driverSQLite   = "sqlite"
	driverSQLite3  = "sqlite3"
	driverPostgres = "postgres"
	driverPgx      = "pgx"
)

// MigrateFunc is a function that executes a migration.
type MigrateFunc func(ctx context.Context, h db.Handler) error //nolint:revive

// Migration is a struct that contains the name of the migration and the
// function to execute it.
type Migration struct {
	Version  int64
	Name     string
	Migrate  MigrateFunc
	Rollback MigrateFunc
}

// Migrations is a database model to store migrations.
type Migrations struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Version int64  `db:"version"`
}

func (Migrations) schema(driverName string) (string, error) {
	switch driverName {
	case driverSQLite3, driverSQLite:
		return `CREATE TABLE IF NOT EXISTS migrations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				version INTEGER NOT NULL UNIQUE
			);
		`, nil
	case driverPostgres, driverPgx:
		return `CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			version INTEGER NOT NULL UNIQUE
		);
	`, nil
	default:
		return "", fmt.Errorf("unknown driver %q", driverName)
	}
}

// Version returns the version of the latest applied migration, or 0 when
// no migration has been applied yet.
func Version(ctx context.Context, h db.Handler) (int64, error) {
	if !hasTable(ctx, h, "migrations") {
		return 0, nil
	}

	var migrs Migrations
	if err := h.GetContext(ctx, &migrs, h.Rebind("SELECT * FROM migrations ORDER BY version DESC LIMIT 1")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return migrs.Version, nil
}

// Migrate runs the migrations.
func Migrate(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if !hasTable(ctx, tx, "migrations") {
			schema, err := Migrations{}.schema(tx.DriverName())
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, schema); err != nil {
				return err
			}
		}

		current, err := Version(ctx, tx)
		if err != nil {
			return err
		}

		for _, m := range migrations {
			if m.Version <= current {
				continue
			}

			logger.Infof("running migration %d. %s", m.Version, m.Name)
			if err := m.Migrate(ctx, tx); err != nil {
				return fmt.Errorf("migration %d: %w", m.Version, err)
			}

			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO migrations (name, version) VALUES (?, ?)"), m.Name, m.Version); err != nil {
				return err
			}
		}

		return nil
	})
}

// Rollback rolls back the latest migration.
func Rollback(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		current, err := Version(ctx, tx)
		if err != nil {
			return fmt.Errorf("there are no migrations to rollback: %w", err)
		}

		if current == 0 || len(migrations) < int(current) {
			return fmt.Errorf("there are no migrations to rollback")
		}

		m := migrations[current-1]
		logger.Infof("rolling back migration %d. %s", m.Version, m.Name)
		if err := m.Rollback(ctx, tx); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM migrations WHERE version = ?"), current); err != nil {
			return err
		}

		return nil
	})
}

func hasTable(ctx context.Context, h db.Handler, tableName string) bool {
	var query string
	switch h.DriverName() {
	case driverSQLite3, driverSQLite:
		query = "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
	case driverPostgres, driverPgx:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?"
	default:
		return false
	}

	var name string
	err := h.GetContext(ctx, &name, h.Rebind(query), tableName)
	return err == nil
}
