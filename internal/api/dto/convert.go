package dto

import (
	"fuel-route-service/internal/domain"
	"math"
)

func (l *Location) Coordinates() *domain.Coordinates {
	if l == nil {
		return nil
	}
	return &domain.Coordinates{Lat: l.Lat, Lon: l.Lng}
}

func LocationOf(c domain.Coordinates) Location { return Location{Lat: c.Lat, Lng: c.Lon} }

func NewStationResponse(s domain.Station) StationResponse {
	return StationResponse{
		StationID: s.ID,
		Name:      s.Name,
		Address:   s.Address,
		City:      s.City,
		State:     s.State,
		Location:  LocationOf(s.Location),
		Price:     s.PricePerGallon,
	}
}

// Prices keep three decimals as published; everything else has two.
func NewPlanResponse(it *domain.Itinerary, mapURL string) PlanResponse {
	stops := make([]FuelStopResponse, 0, len(it.FuelStops))
	for _, s := range it.FuelStops {
		stops = append(stops, FuelStopResponse{
			StationID:         s.Station.ID,
			Name:              s.Station.Name,
			Address:           s.Station.Address,
			City:              s.Station.City,
			State:             s.Station.State,
			Location:          LocationOf(s.Station.Location),
			Price:             s.Station.PricePerGallon,
			DistanceFromStart: s.DistanceFromStart,
			Gallons:           s.Gallons,
			Cost:              s.Cost,
		})
	}

	sum := it.Summary()
	return PlanResponse{
		RouteCoordinates: domain.ToLonLat(it.RouteCoordinates),
		MapURL:           mapURL,
		FuelStops:        stops,
		TotalCost:        it.TotalCost,
		TotalDistance:    it.TotalDistance,
		TotalGallons:     it.TotalGallons,
		FinalLegCost:     it.FinalLegCost,
		Strategy:         it.Strategy,
		Summary: SummaryResponse{
			NumberOfStops: sum.NumberOfStops,
			TotalGallons:  sum.TotalGallons,
			AveragePrice:  math.Round(sum.AveragePrice*1000) / 1000,
		},
	}
}
