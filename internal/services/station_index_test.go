package services

import (
	"context"
	"errors"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"math/rand"
	"testing"
)

func TestNewStationIndexSkipsInvalidAndKeepsCheapestDuplicate(t *testing.T) {
	idx := NewStationIndex([]domain.Station{
		stationAtMile("a", 10, 3.50),
		stationAtMile("a", 10, 3.20),
		stationAtMile("a", 10, 3.40),
		stationAtMile("b", 20, 0),
		{ID: "", PricePerGallon: 3, Location: domain.Coordinates{Lat: 1, Lon: 1}},
		stationAtMile("c", 30, 3.00),
	}, 10)

	if idx.Len() != 2 {
		t.Fatalf("len = %d, want 2", idx.Len())
	}
	if idx.Skipped() != 2 {
		t.Fatalf("skipped = %d, want 2", idx.Skipped())
	}

	a, ok := idx.Get("a")
	if !ok || a.PricePerGallon != 3.20 {
		t.Fatalf("a = %+v (found %v), want price 3.20", a, ok)
	}

	avg, ok := idx.AveragePrice()
	if !ok || !approx(avg, 3.10, 1e-9) {
		t.Fatalf("average = %v, want 3.10", avg)
	}

	all := idx.All()
	if all[0].ID != "a" || all[1].ID != "c" {
		t.Fatalf("All() not ordered by ID: %v", all)
	}
}

func TestSnapToleranceDropsFarStations(t *testing.T) {
	route, err := SampleRoute(equatorCoords(200, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	near := stationAtMile("near", 50, 3)
	far := stationAtMile("far", 80, 3)
	far.Location.Lat = 1 // ~69 miles north

	idx := NewStationIndex([]domain.Station{near, far}, 10)

	snapped := idx.Snap(route).All()
	if len(snapped) != 1 || snapped[0].Station.ID != "near" {
		t.Fatalf("snapped = %v, want [near]", ids(snapped))
	}
	if !approx(snapped[0].DistanceFromStart, 50, 1e-6) {
		t.Fatalf("distance = %v, want 50", snapped[0].DistanceFromStart)
	}

	// No tolerance: every station goes to its nearest point.
	all := idx.SnapWithin(route, 0).All()
	if len(all) != 2 {
		t.Fatalf("snapped without tolerance = %d, want 2", len(all))
	}
}

func TestGridSnapMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	route, err := SampleRoute(equatorCoords(600, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stations []domain.Station
	for i := 0; i < 300; i++ {
		s := stationAtMile(string(rune('A'+i%26))+string(rune('a'+i/26)), rng.Float64()*600, 2+rng.Float64())
		s.Location.Lat = (rng.Float64() - 0.5) * 0.4
		stations = append(stations, s)
	}

	const tol = 8.0
	idx := NewStationIndex(stations, tol)

	grid := idx.SnapWithin(route, tol).All()
	var brute []domain.RouteStation
	for _, s := range idx.SnapWithin(route, 0).All() {
		if s.OffsetMiles <= tol {
			brute = append(brute, s)
		}
	}

	if len(grid) != len(brute) {
		t.Fatalf("grid = %d stations, brute force = %d", len(grid), len(brute))
	}
	for i := range grid {
		if grid[i].Station.ID != brute[i].Station.ID || grid[i].DistanceFromStart != brute[i].DistanceFromStart {
			t.Fatalf("mismatch at %d: grid %+v, brute %+v", i, grid[i], brute[i])
		}
	}
}

func TestRouteStationsQueries(t *testing.T) {
	f := NewRouteStations([]domain.RouteStation{rs("c", 300, 3), rs("a", 100, 3), rs("b", 100, 3), rs("d", 500, 3)})

	got := f.StationsWithin(100, 300)
	assertIDs(t, got, "a", "b", "c")

	if got := f.StationsWithin(301, 499); len(got) != 0 {
		t.Fatalf("empty window returned %v", ids(got))
	}
	if got := f.StationsWithin(10, 5); len(got) != 0 {
		t.Fatalf("inverted window returned %v", ids(got))
	}

	next, ok := f.NextAfter(300)
	if !ok || next.Station.ID != "d" {
		t.Fatalf("NextAfter(300) = %v %v, want d", next.Station.ID, ok)
	}
	if _, ok := f.NextAfter(500); ok {
		t.Fatalf("NextAfter(500) should find nothing")
	}
}

type listRepo struct {
	stations []domain.Station
	err      error
}

func (r listRepo) ListStations(context.Context) ([]domain.Station, error) { return r.stations, r.err }

func TestStationCatalogReloadSwapsWholeIndex(t *testing.T) {
	c := NewStationCatalog(10)
	if c.Current().Len() != 0 {
		t.Fatalf("new catalog should be empty")
	}

	if _, err := c.Reload(context.Background(), listRepo{stations: []domain.Station{stationAtMile("1", 10, 3)}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snapshot := c.Current()

	_, err := c.Reload(context.Background(), listRepo{stations: []domain.Station{
		stationAtMile("1", 10, 3), stationAtMile("2", 20, 3),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.Len() != 1 {
		t.Fatalf("old snapshot changed: len = %d", snapshot.Len())
	}
	if c.Current().Len() != 2 {
		t.Fatalf("current len = %d, want 2", c.Current().Len())
	}

	boom := errors.New("db down")
	if _, err := c.Reload(context.Background(), listRepo{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if c.Current().Len() != 2 {
		t.Fatalf("failed reload replaced the index")
	}
}

func TestStationsNearWindow(t *testing.T) {
	route, err := SampleRoute(equatorCoords(300, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx := NewStationIndex([]domain.Station{
		stationAtMile("a", 40, 3),
		stationAtMile("b", 120, 3),
		stationAtMile("c", 250, 3),
	}, 10)

	assertIDs(t, idx.StationsNear(route, 0, 125), "a", "b")
	assertIDs(t, idx.StationsNear(route, 125, 300), "c")
	if got := idx.StationsNear(route, 260, 300); len(got) != 0 {
		t.Fatalf("stations = %v, want none", ids(got))
	}
}

func TestSnapFindsStationBetweenSparseVertices(t *testing.T) {
	route, err := SampleRoute([]domain.Coordinates{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 200 / geo.MilesPerDegreeLat}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx := NewStationIndex([]domain.Station{stationAtMile("mid", 120, 3)}, 10)

	got := idx.StationsNear(route, 0, 200)
	assertIDs(t, got, "mid")
	if !approx(got[0].DistanceFromStart, 120, 0.5) || got[0].OffsetMiles > 1 {
		t.Fatalf("snapped = %+v, want about mile 120 within a mile of the line", got[0])
	}
}
