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

// SQLite backed cache mapping geocoder queries to coordinates.
// Keys are expected to be normalized by the caller (see routing.NormalizeQuery).
//
// Entries older than MaxAge are treated as misses; zero keeps them forever.
type SqliteGeocodeCache struct {
	DB     *sql.DB
	MaxAge time.Duration
}

func NewSqliteGeocodeCache(db *sql.DB, maxAge time.Duration) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db, MaxAge: maxAge}
}

// Fetch cached coordinates for the given queries.
func (s *SqliteGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	ph := make([]string, 0, len(uniq))
	args := make([]any, 0, len(uniq)+1)
	for _, a := range uniq {
		ph = append(ph, "?")
		args = append(args, a)
	}
	args = append(args, minUpdatedAt(s.MaxAge))

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT address, lon, lat
	FROM geocode_cache
	WHERE address IN (%s) AND updated_at >= ?;
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanCoordinates(rows, len(uniq))
}

// Store query -> coordinate mappings in the cache.
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
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
	INSERT OR REPLACE INTO geocode_cache (address, lon, lat, updated_at)
	VALUES (?, ?, ?, ?);
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

func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// minUpdatedAt is the oldest unix timestamp still considered fresh.
func minUpdatedAt(maxAge time.Duration) int64 {
	if maxAge <= 0 {
		return 0
	}
	return time.Now().Add(-maxAge).Unix()
}

func scanCoordinates(rows *sql.Rows, sizeHint int) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, sizeHint)
	for rows.Next() {
		var addr string
		var lon, lat float64
		if err := rows.Scan(&addr, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}
	return out, nil
}
