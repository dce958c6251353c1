package services

import (
	"errors"
	"fuel-route-service/internal/domain"
	"testing"
)

func TestPlanStopsOptimalBeatsGreedy(t *testing.T) {
	// Greedy stops once at a and drives the rest at 2.00; refuelling again
	// at b prices the last 45 miles at 1.00.
	f := NewRouteStations([]domain.RouteStation{rs("a", 200, 2.0), rs("b", 550, 1.0)})
	v := domain.DefaultVehicle()

	greedy, err := PlanStopsGreedy(f, 650, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, greedy, "a")

	optimal, err := PlanStopsOptimal(f, 650, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, optimal, "a", "b")

	gc, err := CalculateCosts(greedy, 650, v, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oc, err := CalculateCosts(optimal, 650, v, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(gc.TotalCost, 130, 1e-9) || !approx(oc.TotalCost, 85, 1e-9) {
		t.Fatalf("greedy = %v, optimal = %v, want 130 and 85", gc.TotalCost, oc.TotalCost)
	}
}

func TestPlanStopsOptimalPrefersFewerStopsOnEqualCost(t *testing.T) {
	f := NewRouteStations([]domain.RouteStation{rs("a", 200, 3), rs("b", 400, 3)})

	stops, err := PlanStopsOptimal(f, 800, domain.DefaultVehicle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, stops, "b")
}

func TestPlanStopsOptimalZeroStops(t *testing.T) {
	stops, err := PlanStopsOptimal(NewRouteStations([]domain.RouteStation{rs("a", 10, 1)}), 499, domain.DefaultVehicle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stops) != 0 {
		t.Fatalf("stops = %v, want none", ids(stops))
	}
}

func TestPlanStopsOptimalUnreachable(t *testing.T) {
	f := NewRouteStations([]domain.RouteStation{rs("a", 300, 3), rs("b", 900, 3)})

	_, err := PlanStopsOptimal(f, 1200, domain.DefaultVehicle())

	var ude *domain.UnreachableDestinationError
	if !errors.As(err, &ude) {
		t.Fatalf("err = %v, want UnreachableDestinationError", err)
	}
	if ude.Position != 300 || ude.NextCandidate != 900 || ude.Gap != 600 {
		t.Fatalf("got position %v next %v gap %v, want 300 900 600", ude.Position, ude.NextCandidate, ude.Gap)
	}
}
