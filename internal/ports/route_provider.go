package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Driving route geometry between two points, as returned by a routing service.
type RouteResult struct {
	Geometry        []domain.Coordinates
	DistanceMeters  float64
	DurationSeconds float64
}

// Contract for retrieving a driving route from an external routing service.
type RouteProvider interface {
	// Return the route geometry ordered from origin to destination.
	GetRoute(ctx context.Context, origin, destination domain.Coordinates) (RouteResult, error)
}

// Contract for caching route geometries between requests.
type RouteCache interface {
	// Return the cached route for key and whether it was found.
	Get(ctx context.Context, key string) (RouteResult, bool, error)
	Put(ctx context.Context, key string, route RouteResult) error
}
