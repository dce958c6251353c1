package services

import (
	"errors"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"math"
	"slices"
)

const costEpsilon = 1e-9

type pathNode struct {
	cost  float64
	stops int
	prev  int // -1 is the trip start
	ok    bool
}

// PlanStopsOptimal selects the stop sequence with the lowest total cost
// under the same cost model as CalculateCosts: each purchase refills what
// the previous leg consumed at the station's price, and the final leg is
// priced at the last stop.
//
// Dynamic programming over snapped stations ordered by distance, O(n*k)
// where k is the number of stations within one tank of range. Equal costs
// prefer fewer stops, then later stations.
func PlanStopsOptimal(
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
		return nil, &domain.InvalidRouteError{Reason: "total distance is not a non-negative finite number", Index: -1}
	}

	initial := vehicle.InitialRange()
	if totalDistance <= initial {
		return []domain.RouteStation{}, nil
	}

	maxRange := vehicle.MaxRangeMiles
	mpg := vehicle.MilesPerGallon
	partial := initial < maxRange

	cands := make([]domain.RouteStation, 0, finder.Len())
	for _, c := range finder.StationsWithin(0, totalDistance) {
		if c.DistanceFromStart >= totalDistance {
			continue
		}
		if c.DistanceFromStart <= 0 && !partial {
			continue
		}
		cands = append(cands, c)
	}

	nodes := make([]pathNode, len(cands))
	for j, c := range cands {
		n := pathNode{prev: -1}
		d := c.DistanceFromStart
		price := c.Station.PricePerGallon

		if d <= initial {
			n.cost = (maxRange - initial + d) / mpg * price
			n.stops = 1
			n.ok = true
		}

		for i := j - 1; i >= 0; i-- {
			leg := d - cands[i].DistanceFromStart
			if leg > maxRange {
				break
			}
			if leg <= 0 || !nodes[i].ok {
				continue
			}

			cost := nodes[i].cost + leg/mpg*price
			stops := nodes[i].stops + 1
			if !n.ok || betterPath(cost, stops, i, n.cost, n.stops, n.prev) {
				n.cost, n.stops, n.prev, n.ok = cost, stops, i, true
			}
		}
		nodes[j] = n
	}

	last := -1
	var bestCost float64
	var bestStops int
	for i, n := range nodes {
		if !n.ok {
			continue
		}
		final := totalDistance - cands[i].DistanceFromStart
		if final > maxRange {
			continue
		}

		cost := n.cost + final/mpg*cands[i].Station.PricePerGallon
		if last < 0 || betterPath(cost, n.stops, i, bestCost, bestStops, last) {
			last, bestCost, bestStops = i, cost, n.stops
		}
	}

	if last < 0 {
		position, reach := 0.0, initial
		for i := len(nodes) - 1; i >= 0; i-- {
			if nodes[i].ok {
				position = cands[i].DistanceFromStart
				reach = position + maxRange
				break
			}
		}
		return nil, unreachableFrom(finder, position, math.Min(reach, totalDistance), totalDistance)
	}

	stops := make([]domain.RouteStation, 0, bestStops)
	for i := last; i >= 0; i = nodes[i].prev {
		stops = append(stops, cands[i])
	}
	slices.Reverse(stops)

	return stops, nil
}

// betterPath reports whether candidate (cost, stops, via) beats the current
// best path.
func betterPath(cost float64, stops, via int, bestCost float64, bestStops, bestVia int) bool {
	if cost < bestCost-costEpsilon {
		return true
	}
	if cost > bestCost+costEpsilon {
		return false
	}
	if stops != bestStops {
		return stops < bestStops
	}
	return via > bestVia
}
