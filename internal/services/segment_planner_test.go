package services

import (
	"errors"
	"fuel-route-service/internal/domain"
	"testing"
)

func TestPlanStopsGreedyZeroStopsWithinRange(t *testing.T) {
	f := NewRouteStations([]domain.RouteStation{rs("a", 100, 1)})

	stops, err := PlanStopsGreedy(f, 500, domain.DefaultVehicle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 0 {
		t.Fatalf("stops = %v, want none", ids(stops))
	}
}

func TestPlanStopsGreedyTieBreaksToFarthest(t *testing.T) {
	f := NewRouteStations([]domain.RouteStation{
		rs("near", 200, 3.00),
		rs("far", 450, 3.00),
		rs("pricey", 480, 3.50),
	})

	stops, err := PlanStopsGreedy(f, 900, domain.DefaultVehicle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, stops, "far")
}

func TestPlanStopsGreedyTieBreaksToLowestIDAtSameDistance(t *testing.T) {
	f := NewRouteStations([]domain.RouteStation{rs("b", 450, 3), rs("a", 450, 3)})

	stops, err := PlanStopsGreedy(f, 900, domain.DefaultVehicle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, stops, "a")
}

func TestPlanStopsGreedyUnreachable(t *testing.T) {
	// 1000 miles, nothing in the first 500-mile window.
	f := NewRouteStations([]domain.RouteStation{rs("late", 620, 3)})

	_, err := PlanStopsGreedy(f, 1000, domain.DefaultVehicle())

	var ude *domain.UnreachableDestinationError
	if !errors.As(err, &ude) {
		t.Fatalf("err = %v, want UnreachableDestinationError", err)
	}
	if ude.Position != 0 || ude.Reach != 500 {
		t.Fatalf("window = [%v, %v], want [0, 500]", ude.Position, ude.Reach)
	}
	if ude.NextCandidate != 620 || ude.Gap != 620 {
		t.Fatalf("next = %v gap = %v, want 620 and 620", ude.NextCandidate, ude.Gap)
	}
}

func TestPlanStopsGreedyUnreachableMidRoute(t *testing.T) {
	f := NewRouteStations([]domain.RouteStation{rs("a", 400, 3)})

	_, err := PlanStopsGreedy(f, 1000, domain.DefaultVehicle())

	var ude *domain.UnreachableDestinationError
	if !errors.As(err, &ude) {
		t.Fatalf("err = %v, want UnreachableDestinationError", err)
	}
	if ude.Position != 400 || ude.NextCandidate != 1000 || ude.Gap != 600 {
		t.Fatalf("got position %v next %v gap %v, want 400 1000 600", ude.Position, ude.NextCandidate, ude.Gap)
	}
}

func TestPlanStopsGreedyConcreteRoute(t *testing.T) {
	f := NewRouteStations([]domain.RouteStation{
		rs("1", 350.14, 3.099),
		rs("2", 800, 3.2),
		rs("3", 1250, 3.0),
		rs("4", 1700, 3.1),
	})

	stops, err := PlanStopsGreedy(f, 2017.92, domain.DefaultVehicle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, stops, "1", "2", "3", "4")
}

func TestPlanStopsGreedyPartialTank(t *testing.T) {
	v := domain.Vehicle{MaxRangeMiles: 500, MilesPerGallon: 10, StartFuelGallons: 5}
	f := NewRouteStations([]domain.RouteStation{rs("start", 0, 3.0), rs("later", 40, 3.5)})

	stops, err := PlanStopsGreedy(f, 400, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, stops, "start")
}

func TestPlanStopsGreedyRejectsBadVehicle(t *testing.T) {
	_, err := PlanStopsGreedy(NewRouteStations(nil), 100, domain.Vehicle{MaxRangeMiles: 500})

	var ive *domain.InvalidVehicleParametersError
	if !errors.As(err, &ive) || ive.Field != "miles_per_gallon" {
		t.Fatalf("err = %v, want InvalidVehicleParametersError for miles_per_gallon", err)
	}
}
