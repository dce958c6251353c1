package dto

import (
	"fuel-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlanResponseSummaryMatchesTotals(t *testing.T) {
	// Each stop bought 10.005 gallons: rounded per stop they sum to 20.02,
	// the rounded total is 20.01.
	it := &domain.Itinerary{
		RouteCoordinates: []domain.Coordinates{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 3}},
		FuelStops: []domain.FuelStop{
			{Station: domain.Station{ID: "1", PricePerGallon: 3.0991, Location: domain.Coordinates{Lat: 0, Lon: 1}}, Gallons: 10.01},
			{Station: domain.Station{ID: "2", PricePerGallon: 3.2, Location: domain.Coordinates{Lat: 0, Lon: 2}}, Gallons: 10.01},
		},
		TotalGallons: 20.01,
		Strategy:     "greedy",
	}

	resp := NewPlanResponse(it, "/maps/x.geojson")

	assert.Equal(t, 20.01, resp.TotalGallons)
	assert.Equal(t, resp.TotalGallons, resp.Summary.TotalGallons)
	assert.Equal(t, 2, resp.Summary.NumberOfStops)
	assert.Equal(t, 3.15, resp.Summary.AveragePrice)
	assert.Equal(t, [][]float64{{0, 0}, {3, 0}}, resp.RouteCoordinates)
	assert.Equal(t, Location{Lat: 0, Lng: 1}, resp.FuelStops[0].Location)
	assert.Equal(t, "/maps/x.geojson", resp.MapURL)
}
