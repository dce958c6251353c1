package services

import (
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"strings"
)

// Strategy selects the stop selection algorithm.
type Strategy string

const (
	StrategyGreedy  Strategy = "greedy"
	StrategyOptimal Strategy = "optimal"
)

const (
	DefaultFallbackPrice      = 3.50
	DefaultSnapToleranceMiles = 10.0
	DefaultSampleSpacingMiles = 0.5
)

// ParseStrategy accepts "greedy" and "optimal" in any case. An empty string
// selects the greedy strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyGreedy:
		return StrategyGreedy, nil
	case StrategyOptimal:
		return StrategyOptimal, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want %q or %q)", s, StrategyGreedy, StrategyOptimal)
	}
}

type stopPlanner func(ports.StationFinder, float64, domain.Vehicle) ([]domain.RouteStation, error)

func (s Strategy) planner() stopPlanner {
	if s == StrategyOptimal {
		return PlanStopsOptimal
	}
	return PlanStopsGreedy
}

// Planner turns a sampled route into an itinerary using the current station
// catalog. It holds no per-request state and is safe for concurrent use.
type Planner struct {
	Catalog *StationCatalog

	// Lateral distance within which a station counts as on the route.
	SnapToleranceMiles float64
	// Spacing of the route points stations are snapped to: closer vertices
	// are dropped and longer segments are subdivided.
	SampleSpacingMiles float64
	// Price used for the final leg when nothing on or off the route is known.
	FallbackPrice float64
}

func NewPlanner(catalog *StationCatalog) *Planner {
	return &Planner{
		Catalog:            catalog,
		SnapToleranceMiles: DefaultSnapToleranceMiles,
		SampleSpacingMiles: DefaultSampleSpacingMiles,
		FallbackPrice:      DefaultFallbackPrice,
	}
}

// Plan computes the refuelling itinerary for route.
func (p *Planner) Plan(route *domain.Route, vehicle domain.Vehicle, strategy Strategy) (*domain.Itinerary, error) {
	if route == nil || len(route.Points) < 2 {
		n := 0
		if route != nil {
			n = len(route.Points)
		}
		return nil, &domain.InvalidRouteError{Reason: fmt.Sprintf("at least 2 points are required, got %d", n), Index: -1}
	}
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}
	if strategy == "" {
		strategy = StrategyGreedy
	}

	// One snapshot for the whole request; a concurrent reload does not
	// affect it.
	idx := p.index()
	total := route.TotalMiles()

	if total > vehicle.InitialRange() && idx.Len() == 0 {
		return nil, &domain.EmptyStationCatalogError{TotalDistance: total, InitialRange: vehicle.InitialRange()}
	}

	spacing := p.SampleSpacingMiles
	if spacing <= 0 {
		spacing = DefaultSampleSpacingMiles
	}
	snapped := idx.SnapWithin(Densify(Decimate(route, spacing), spacing), p.SnapToleranceMiles)

	stops, err := strategy.planner()(snapped, total, vehicle)
	if err != nil {
		return nil, err
	}

	costed, err := CalculateCosts(stops, total, vehicle, p.referencePrice(idx, snapped))
	if err != nil {
		return nil, err
	}

	return AssembleItinerary(route, costed, strategy), nil
}

// PlanCoordinates samples raw geometry and plans it in one step.
func (p *Planner) PlanCoordinates(coords []domain.Coordinates, vehicle domain.Vehicle, strategy Strategy) (*domain.Itinerary, error) {
	route, err := SampleRoute(coords)
	if err != nil {
		return nil, err
	}
	return p.Plan(route, vehicle, strategy)
}

func (p *Planner) index() *StationIndex {
	if p.Catalog == nil {
		return NewStationIndex(nil, p.SnapToleranceMiles)
	}
	return p.Catalog.Current()
}

// referencePrice prices the final leg of a trip without stops: the average
// over stations near the route, else over the catalog, else the fallback.
func (p *Planner) referencePrice(idx *StationIndex, snapped *RouteStations) float64 {
	if avg, ok := snapped.AveragePrice(); ok {
		return avg
	}
	if avg, ok := idx.AveragePrice(); ok {
		return avg
	}
	if p.FallbackPrice > 0 {
		return p.FallbackPrice
	}
	return DefaultFallbackPrice
}
