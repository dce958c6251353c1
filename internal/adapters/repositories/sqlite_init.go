package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fuel-route-service/internal/platform/db"
)

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		station_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		price_per_gallon REAL NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon REAL NOT NULL,
		lat REAL NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT 0
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stations_state ON stations(state);
	`

	return execSchema(ctx, conn, createStationsQuery, createGeocodeCacheQuery, createIndexQuery)
}

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, conn *sql.DB) error {
	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		station_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		price_per_gallon DOUBLE PRECISION NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		updated_at BIGINT NOT NULL DEFAULT 0
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stations_state ON stations(state);
	`

	return execSchema(ctx, conn, createStationsQuery, createGeocodeCacheQuery, createIndexQuery)
}

// InitSchemaFor picks the schema matching dialect.
func InitSchemaFor(ctx context.Context, conn *sql.DB, dialect db.Dialect) error {
	if dialect == db.Postgres {
		return InitPostgresSchema(ctx, conn)
	}
	return InitSchema(ctx, conn)
}

func execSchema(ctx context.Context, conn *sql.DB, statements ...string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
