package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the StationRepository and StationWriter ports.
type SQLStationRepository struct{ DB *sql.DB }

func NewSQLStationRepository(db *sql.DB) *SQLStationRepository {
	return &SQLStationRepository{DB: db}
}

func (s *SQLStationRepository) ListStations(ctx context.Context) (_ []domain.Station, err error) {
	defer obs.Time(ctx, "stations.sql.ListStations")(&err)

	if s.DB == nil {
		return nil, errors.New("sql station repository: DB is nil")
	}
	return listStations(ctx, s.DB)
}

func (s *SQLStationRepository) UpsertStations(ctx context.Context, stations []domain.Station) (_ int, err error) {
	defer obs.Time(ctx, "stations.sql.UpsertStations")(&err)

	if s.DB == nil {
		return 0, errors.New("sql station repository: DB is nil")
	}

	return upsertStations(ctx, s.DB, `
	INSERT INTO stations (
		station_id, name, address, city, state, lat, lon, price_per_gallon
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (station_id) DO UPDATE SET
		name = EXCLUDED.name,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		price_per_gallon = EXCLUDED.price_per_gallon;
	`, stations)
}
