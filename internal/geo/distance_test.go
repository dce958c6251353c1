package geo

import (
	"fuel-route-service/internal/domain"
	"math"
	"testing"
)

func TestMilesAlongEquator(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 1}

	got := Miles(a, b)
	if math.Abs(got-MilesPerDegreeLat) > 1e-6 {
		t.Fatalf("one degree of longitude on the equator = %v miles, want %v", got, MilesPerDegreeLat)
	}
	if got < 69 || got > 69.3 {
		t.Fatalf("one degree = %v miles, want about 69.17", got)
	}
}

func TestMilesKnownCities(t *testing.T) {
	chicago := domain.Coordinates{Lat: 41.8781, Lon: -87.6298}
	stLouis := domain.Coordinates{Lat: 38.6270, Lon: -90.1994}

	got := Miles(chicago, stLouis)
	// Great-circle distance is roughly 258 miles.
	if got < 250 || got > 265 {
		t.Fatalf("Chicago -> St. Louis = %.2f miles, want ~258", got)
	}

	if Miles(chicago, chicago) != 0 {
		t.Errorf("distance to self should be zero")
	}
}

func TestFiniteAndBound(t *testing.T) {
	if !Finite(domain.Coordinates{Lat: 1, Lon: 2}) {
		t.Errorf("expected finite coordinates")
	}
	if Finite(domain.Coordinates{Lat: math.NaN(), Lon: 2}) {
		t.Errorf("expected NaN latitude to be rejected")
	}

	c := domain.Coordinates{Lat: 35, Lon: -100}
	b := BoundAround(c, 10)
	if !b.Contains(Point(c)) {
		t.Fatalf("bound %v does not contain its center", b)
	}
	halfHeight := (b.Max.Lat() - b.Min.Lat()) / 2 * MilesPerDegreeLat
	if math.Abs(halfHeight-10) > 0.1 {
		t.Errorf("bound half height = %.3f miles, want 10", halfHeight)
	}
}
