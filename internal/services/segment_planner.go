package services

import (
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"math"
)

// PlanStopsGreedy selects refuelling stops window by window.
//
// From the current position the reachable window is scanned and the
// cheapest station in it is chosen; equal prices go to the station farthest
// from the start, then to the lowest ID so the result is deterministic.
// Every leg stays within range by construction, but the result is not
// guaranteed to be globally cheapest (see PlanStopsOptimal).
func PlanStopsGreedy(
	finder ports.StationFinder,
	totalDistance float64,
	vehicle domain.Vehicle,
) ([]domain.RouteStation, error) {
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}
	if finder == nil {
		return nil, errors.New("plan stops: station finder must be non-nil")
	}
	if math.IsNaN(totalDistance) || math.IsInf(totalDistance, 0) || totalDistance < 0 {
		return nil, &domain.InvalidRouteError{
			Reason: fmt.Sprintf("total distance %v is not a non-negative finite number", totalDistance),
			Index:  -1,
		}
	}

	position := 0.0
	reach := vehicle.InitialRange()
	stops := []domain.RouteStation{}

	for {
		window := domain.Window{Start: position, End: math.Min(position+reach, totalDistance)}
		if window.End >= totalDistance {
			return stops, nil
		}

		// A station at the current position is only useful before the first
		// stop when the trip starts without a full tank.
		allowHere := len(stops) == 0 && reach < vehicle.MaxRangeMiles

		var best domain.RouteStation
		found := false
		for _, c := range finder.StationsWithin(window.Start, window.End) {
			if c.DistanceFromStart <= position && !(allowHere && c.DistanceFromStart == position) {
				continue
			}
			if !found || preferStation(c, best) {
				best = c
				found = true
			}
		}

		if !found {
			return nil, unreachableFrom(finder, position, window.End, totalDistance)
		}

		stops = append(stops, best)
		position = best.DistanceFromStart
		reach = vehicle.MaxRangeMiles
	}
}

// preferStation orders candidates: lowest price, then farthest along the
// route, then lowest ID.
func preferStation(a, b domain.RouteStation) bool {
	if a.Station.PricePerGallon != b.Station.PricePerGallon {
		return a.Station.PricePerGallon < b.Station.PricePerGallon
	}
	if a.DistanceFromStart != b.DistanceFromStart {
		return a.DistanceFromStart > b.DistanceFromStart
	}
	return a.Station.ID < b.Station.ID
}

func unreachableFrom(finder ports.StationFinder, position, reach, totalDistance float64) error {
	next := totalDistance
	if s, ok := finder.NextAfter(reach); ok && s.DistanceFromStart < totalDistance {
		next = s.DistanceFromStart
	}

	return &domain.UnreachableDestinationError{
		Position:      position,
		Reach:         reach,
		NextCandidate: next,
		Gap:           next - position,
		TotalDistance: totalDistance,
	}
}
