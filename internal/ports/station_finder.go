package ports

import "fuel-route-service/internal/domain"

// StationFinder answers proximity questions for one route. Planners depend
// on this capability only, so the index behind it can be swapped freely.
type StationFinder interface {
	// Stations whose snapped distance lies in [lower, upper], ordered by
	// distance from start.
	StationsWithin(lower, upper float64) []domain.RouteStation
	// The first station strictly beyond position, if any.
	NextAfter(position float64) (domain.RouteStation, bool)
	Len() int
}
