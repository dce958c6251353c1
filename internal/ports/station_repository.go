package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Port: a boundary for loading the fuel station catalog.
type StationRepository interface {
	// Retrieve every station in the catalog.
	ListStations(ctx context.Context) ([]domain.Station, error)
}

// Port: a boundary for writing catalog imports.
type StationWriter interface {
	UpsertStations(ctx context.Context, stations []domain.Station) (int, error)
}
