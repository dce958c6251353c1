package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLGeocodeCache is the Postgres variant of SqliteGeocodeCache.
type SQLGeocodeCache struct {
	DB     *sql.DB
	MaxAge time.Duration
}

func NewSQLGeocodeCache(db *sql.DB, maxAge time.Duration) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, MaxAge: maxAge}
}

// Fetch cached coordinates for the given queries.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.sql.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q := `
	SELECT address, lon, lat
	FROM geocode_cache
	WHERE address = ANY($1::text[]) AND updated_at >= $2;
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq, minUpdatedAt(s.MaxAge))
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanCoordinates(rows, len(uniq))
}

// Store query -> coordinate mappings in the cache.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (address, lon, lat, updated_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		updated_at = EXCLUDED.updated_at;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return errors.New("insert geocode cache: empty address key")
		}
		if _, err := stmt.ExecContext(ctx, addr, c.Lon, c.Lat, now); err != nil {
			return fmt.Errorf("insert geocode cache address=%q: %w", addr, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}
	return nil
}
