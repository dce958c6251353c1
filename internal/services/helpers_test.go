package services

import (
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"testing"
)

func rs(id string, dist, price float64) domain.RouteStation {
	return domain.RouteStation{
		Station: domain.Station{
			ID:             id,
			Name:           "Station " + id,
			Location:       domain.Coordinates{Lat: 0, Lon: dist / geo.MilesPerDegreeLat},
			PricePerGallon: price,
		},
		DistanceFromStart: dist,
	}
}

// equatorCoords returns points along the equator every step miles up to
// about totalMiles.
func equatorCoords(totalMiles, step float64) []domain.Coordinates {
	var out []domain.Coordinates
	for d := 0.0; d <= totalMiles+1e-9; d += step {
		out = append(out, domain.Coordinates{Lat: 0, Lon: d / geo.MilesPerDegreeLat})
	}
	return out
}

func stationAtMile(id string, mile, price float64) domain.Station {
	return domain.Station{
		ID:             id,
		Name:           "Station " + id,
		Location:       domain.Coordinates{Lat: 0.01, Lon: mile / geo.MilesPerDegreeLat},
		PricePerGallon: price,
	}
}

func ids(stops []domain.RouteStation) []string {
	out := make([]string, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.Station.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []domain.RouteStation, want ...string) {
	t.Helper()

	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("stops = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("stops = %v, want %v", g, want)
		}
	}
}

func approx(a, b, eps float64) bool {
	d := a - b
	return d <= eps && d >= -eps
}
