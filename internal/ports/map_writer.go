package ports

import (
	"context"
	"fuel-route-service/internal/domain"
)

// Contract for rendering an itinerary as a map artifact. The returned
// reference is opaque to the planner (a URL for the file writer).
type MapWriter interface {
	WriteMap(ctx context.Context, it *domain.Itinerary) (string, error)
}
