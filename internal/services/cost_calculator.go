package services

import (
	"fmt"
	"fuel-route-service/internal/domain"
)

// Tolerance for comparing a leg against the remaining range.
const rangeEpsilon = 1e-9

// CostedStops is the unrounded output of CalculateCosts.
type CostedStops struct {
	Stops            []domain.FuelStop
	TotalDistance    float64
	PurchasedGallons float64
	FinalLegMiles    float64
	FinalLegGallons  float64
	FinalLegCost     float64
	TotalCost        float64
}

// CalculateCosts prices each stop and the trip as a whole.
//
// At every stop the tank is filled back up, so the purchase equals the fuel
// burned since the last fill (plus, for the first stop of a trip started on
// a partial tank, the fuel that was missing at departure). The final leg is
// burned from the last fill; it is priced at the last stop's price, or at
// referencePrice when there were no stops, and added to TotalCost.
func CalculateCosts(
	stops []domain.RouteStation,
	totalDistance float64,
	vehicle domain.Vehicle,
	referencePrice float64,
) (*CostedStops, error) {
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	out := &CostedStops{
		Stops:         make([]domain.FuelStop, 0, len(stops)),
		TotalDistance: totalDistance,
	}

	position := 0.0
	rangeLeft := vehicle.InitialRange()
	stopCost := 0.0

	for i, s := range stops {
		leg := s.DistanceFromStart - position
		if leg < 0 {
			return nil, fmt.Errorf("calculate costs: stop %d (station %s) at mile %.2f is behind mile %.2f", i, s.Station.ID, s.DistanceFromStart, position)
		}
		if leg > rangeLeft+rangeEpsilon {
			return nil, &domain.UnreachableDestinationError{
				Position:      position,
				Reach:         position + rangeLeft,
				NextCandidate: s.DistanceFromStart,
				Gap:           leg,
				TotalDistance: totalDistance,
			}
		}

		deficit := vehicle.MaxRangeMiles - rangeLeft
		gallons := (deficit + leg) / vehicle.MilesPerGallon
		cost := gallons * s.Station.PricePerGallon

		out.Stops = append(out.Stops, domain.FuelStop{
			Station:           s.Station,
			DistanceFromStart: s.DistanceFromStart,
			Gallons:           gallons,
			Cost:              cost,
		})
		out.PurchasedGallons += gallons
		stopCost += cost

		position = s.DistanceFromStart
		rangeLeft = vehicle.MaxRangeMiles
	}

	final := totalDistance - position
	if final < 0 {
		return nil, fmt.Errorf("calculate costs: last stop at mile %.2f is beyond the destination at mile %.2f", position, totalDistance)
	}
	if final > rangeLeft+rangeEpsilon {
		return nil, &domain.UnreachableDestinationError{
			Position:      position,
			Reach:         position + rangeLeft,
			NextCandidate: totalDistance,
			Gap:           final,
			TotalDistance: totalDistance,
		}
	}

	price := referencePrice
	if n := len(out.Stops); n > 0 {
		price = out.Stops[n-1].Station.PricePerGallon
	}

	out.FinalLegMiles = final
	out.FinalLegGallons = final / vehicle.MilesPerGallon
	out.FinalLegCost = out.FinalLegGallons * price
	out.TotalCost = stopCost + out.FinalLegCost

	return out, nil
}
