package services

import (
	"fuel-route-service/internal/domain"
	"math"
)

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// AssembleItinerary composes the planning result. Money, gallons and
// distances are rounded to 2 decimals; totals are rounded from their
// unrounded components so they never drift from the stop figures by more
// than a cent.
func AssembleItinerary(route *domain.Route, costed *CostedStops, strategy Strategy) *domain.Itinerary {
	stops := make([]domain.FuelStop, 0, len(costed.Stops))
	for _, s := range costed.Stops {
		stops = append(stops, domain.FuelStop{
			Station:           s.Station,
			DistanceFromStart: Round2(s.DistanceFromStart),
			Gallons:           Round2(s.Gallons),
			Cost:              Round2(s.Cost),
		})
	}

	var coords []domain.Coordinates
	if route != nil {
		coords = route.Coordinates()
	}

	return &domain.Itinerary{
		RouteCoordinates: coords,
		FuelStops:        stops,
		TotalCost:        Round2(costed.TotalCost),
		TotalDistance:    Round2(costed.TotalDistance),
		TotalGallons:     Round2(costed.PurchasedGallons),
		FinalLegMiles:    Round2(costed.FinalLegMiles),
		FinalLegCost:     Round2(costed.FinalLegCost),
		Strategy:         string(strategy),
	}
}
