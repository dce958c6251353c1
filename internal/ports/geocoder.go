package ports

import (
	"context"
	"errors"
	"fuel-route-service/internal/domain"
)

// ErrLocationNotFound is returned when a geocoder has no result for a query.
var ErrLocationNotFound = errors.New("location not found")

// Contract for resolving free-text locations into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}

// Contract for a persistent address -> coordinates cache.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
