package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
)

const listStationsQuery = `
	SELECT
		station_id,
		name,
		address,
		city,
		state,
		lat,
		lon,
		price_per_gallon
	FROM stations
	ORDER BY station_id;
	`

// SQLite-backed implementation of the StationRepository and StationWriter ports.
type SqliteStationRepository struct{ DB *sql.DB }

func NewSqliteStationRepository(db *sql.DB) *SqliteStationRepository {
	return &SqliteStationRepository{DB: db}
}

// Return all stations stored in the database.
func (s *SqliteStationRepository) ListStations(ctx context.Context) (_ []domain.Station, err error) {
	defer obs.Time(ctx, "stations.sqlite.ListStations")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite station repository: DB is nil")
	}
	return listStations(ctx, s.DB)
}

// Insert or update stations by ID. Returns the number written.
func (s *SqliteStationRepository) UpsertStations(ctx context.Context, stations []domain.Station) (_ int, err error) {
	defer obs.Time(ctx, "stations.sqlite.UpsertStations")(&err)

	if s.DB == nil {
		return 0, errors.New("sqlite station repository: DB is nil")
	}

	return upsertStations(ctx, s.DB, `
	INSERT INTO stations (
		station_id, name, address, city, state, lat, lon, price_per_gallon
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (station_id) DO UPDATE SET
		name = excluded.name,
		address = excluded.address,
		city = excluded.city,
		state = excluded.state,
		lat = excluded.lat,
		lon = excluded.lon,
		price_per_gallon = excluded.price_per_gallon;
	`, stations)
}

func listStations(ctx context.Context, db *sql.DB) ([]domain.Station, error) {
	rows, err := db.QueryContext(ctx, listStationsQuery)
	if err != nil {
		return nil, fmt.Errorf("list stations: query stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.Station, 0, 1024)
	for rows.Next() {
		var st domain.Station
		err := rows.Scan(
			&st.ID,
			&st.Name,
			&st.Address,
			&st.City,
			&st.State,
			&st.Location.Lat,
			&st.Location.Lon,
			&st.PricePerGallon,
		)
		if err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		stations = append(stations, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}

// upsertStations writes every valid station in one transaction. Invalid
// records are rejected up front so a bad file never half-applies.
func upsertStations(ctx context.Context, db *sql.DB, query string, stations []domain.Station) (int, error) {
	for i, st := range stations {
		if err := st.Validate(); err != nil {
			return 0, fmt.Errorf("upsert stations: record #%d: %w", i+1, err)
		}
	}
	if len(stations) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("upsert stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("upsert stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range stations {
		_, err := stmt.ExecContext(ctx,
			st.ID,
			st.Name,
			st.Address,
			st.City,
			st.State,
			st.Location.Lat,
			st.Location.Lon,
			st.PricePerGallon,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert stations: insert station_id=%s: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("upsert stations: commit tx: %w", err)
	}

	return len(stations), nil
}
