package services

import (
	"context"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidTrip is wrapped by request problems detected before any
// upstream call is made.
var ErrInvalidTrip = errors.New("invalid trip request")

// UpstreamError marks a failure of an external collaborator (geocoder or
// routing service) as opposed to a planning failure.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

type PlanTripRequest struct {
	Start         string
	End           string
	StartLocation *domain.Coordinates
	EndLocation   *domain.Coordinates
	// When set, used as the route geometry and no routing call is made.
	Geometry []domain.Coordinates
	Vehicle  domain.Vehicle
	Strategy Strategy
}

type TripPlan struct {
	Itinerary           *domain.Itinerary
	Start               domain.Coordinates
	End                 domain.Coordinates
	RouteDistanceMeters float64
}

// PlanTrip resolves the trip endpoints, fetches the driving route and
// plans refuelling stops along it.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	planner *Planner,
) (_ *TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	if planner == nil {
		return nil, errors.New("plan trip: planner is nil")
	}

	geometry := req.Geometry
	var distanceMeters float64

	if len(geometry) == 0 {
		start, end, err := resolveEndpoints(ctx, req, geocoder)
		if err != nil {
			return nil, err
		}
		if routes == nil {
			return nil, errors.New("plan trip: route provider is nil")
		}

		r, err := routes.GetRoute(ctx, start, end)
		if err != nil {
			return nil, &UpstreamError{Op: "plan trip: get route", Err: err}
		}
		geometry = r.Geometry
		distanceMeters = r.DistanceMeters
	}

	route, err := SampleRoute(geometry)
	if err != nil {
		return nil, fmt.Errorf("plan trip: sample route: %w", err)
	}

	it, err := planner.Plan(route, req.Vehicle, req.Strategy)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	return &TripPlan{
		Itinerary:           it,
		Start:               route.Start(),
		End:                 route.End(),
		RouteDistanceMeters: distanceMeters,
	}, nil
}

// resolveEndpoints geocodes the start and end concurrently. Explicit
// coordinates take precedence over the free-text location.
func resolveEndpoints(ctx context.Context, req PlanTripRequest, geocoder ports.Geocoder) (domain.Coordinates, domain.Coordinates, error) {
	var start, end domain.Coordinates

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := resolveEndpoint(gctx, "start", req.Start, req.StartLocation, geocoder)
		start = c
		return err
	})
	g.Go(func() error {
		c, err := resolveEndpoint(gctx, "end", req.End, req.EndLocation, geocoder)
		end = c
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Coordinates{}, domain.Coordinates{}, err
	}

	return start, end, nil
}

func resolveEndpoint(
	ctx context.Context,
	name string,
	query string,
	loc *domain.Coordinates,
	geocoder ports.Geocoder,
) (domain.Coordinates, error) {
	if loc != nil {
		if err := loc.Validate(); err != nil {
			return domain.Coordinates{}, fmt.Errorf("%w: %s_location: %v", ErrInvalidTrip, name, err)
		}
		return *loc, nil
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return domain.Coordinates{}, fmt.Errorf("%w: %s is required", ErrInvalidTrip, name)
	}
	if geocoder == nil {
		return domain.Coordinates{}, errors.New("plan trip: geocoder is nil")
	}

	c, err := geocoder.Geocode(ctx, q)
	if err != nil {
		return domain.Coordinates{}, &UpstreamError{Op: fmt.Sprintf("plan trip: geocode %s %q", name, q), Err: err}
	}
	return c, nil
}
