package domain

import (
	"errors"
	"fmt"
)

// ErrPlanning is matched by every deterministic planning failure below.
// These are input problems, so callers must not retry them.
var ErrPlanning = errors.New("planning failed")

// InvalidRouteError reports malformed or too-short route geometry.
type InvalidRouteError struct {
	Reason string
	Index  int // offending point, -1 when not point specific
}

func (e *InvalidRouteError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid route at point %d: %s", e.Index, e.Reason)
	}
	return "invalid route: " + e.Reason
}

func (e *InvalidRouteError) Unwrap() error { return ErrPlanning }

// InvalidVehicleParametersError reports a non-positive or non-finite vehicle parameter.
type InvalidVehicleParametersError struct {
	Field string
	Value float64
}

func (e *InvalidVehicleParametersError) Error() string {
	return fmt.Sprintf("invalid vehicle parameters: %s must be a positive finite number within tank capacity, got %v", e.Field, e.Value)
}

func (e *InvalidVehicleParametersError) Unwrap() error { return ErrPlanning }

// UnreachableDestinationError is returned when no station lies within range
// of Position. NextCandidate is the next station (or the destination) beyond
// the window, and Gap the leg that would be needed to reach it.
type UnreachableDestinationError struct {
	Position      float64
	Reach         float64
	NextCandidate float64
	Gap           float64
	TotalDistance float64
}

func (e *UnreachableDestinationError) Error() string {
	return fmt.Sprintf(
		"destination unreachable: no station within range from mile %.2f (window %.2f-%.2f, next candidate at mile %.2f, gap %.2f miles, route %.2f miles)",
		e.Position, e.Position, e.Reach, e.NextCandidate, e.Gap, e.TotalDistance,
	)
}

func (e *UnreachableDestinationError) Unwrap() error { return ErrPlanning }

// EmptyStationCatalogError is returned when a refuelling stop is required
// but the station index holds no stations.
type EmptyStationCatalogError struct {
	TotalDistance float64
	InitialRange  float64
}

func (e *EmptyStationCatalogError) Error() string {
	return fmt.Sprintf(
		"station catalog is empty: route of %.2f miles exceeds initial range of %.2f miles",
		e.TotalDistance, e.InitialRange,
	)
}

func (e *EmptyStationCatalogError) Unwrap() error { return ErrPlanning }
