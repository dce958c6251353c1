package services

import (
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"math"
)

// SampleRoute annotates raw route geometry with cumulative distance.
//
// Coordinates must be ordered start to finish. Distances are summed pairwise
// with the haversine formula, so the result is a lower bound of the real
// driving distance between consecutive vertices (OSRM geometries are dense
// enough that the difference is negligible).
func SampleRoute(coords []domain.Coordinates) (*domain.Route, error) {
	if len(coords) < 2 {
		return nil, &domain.InvalidRouteError{
			Reason: fmt.Sprintf("at least 2 points are required, got %d", len(coords)),
			Index:  -1,
		}
	}

	points := make([]domain.RoutePoint, 0, len(coords))
	total := 0.0
	for i, c := range coords {
		if err := c.Validate(); err != nil {
			return nil, &domain.InvalidRouteError{Reason: err.Error(), Index: i}
		}

		if i > 0 {
			d := geo.Miles(coords[i-1], c)
			if math.IsNaN(d) || math.IsInf(d, 0) {
				return nil, &domain.InvalidRouteError{
					Reason: fmt.Sprintf("segment distance from point %d is not finite", i-1),
					Index:  i,
				}
			}
			total += d
		}

		points = append(points, domain.RoutePoint{Coordinates: c, CumulativeMiles: total})
	}

	return &domain.Route{Points: points}, nil
}

// Decimate keeps the first and last points and every point at least
// minSpacing miles beyond the previously kept one. Cumulative distances
// come from the full geometry and are left untouched.
func Decimate(route *domain.Route, minSpacing float64) *domain.Route {
	if route == nil || len(route.Points) <= 2 || minSpacing <= 0 {
		return route
	}

	last := len(route.Points) - 1
	kept := make([]domain.RoutePoint, 0, len(route.Points))
	kept = append(kept, route.Points[0])
	for _, p := range route.Points[1:last] {
		if p.CumulativeMiles-kept[len(kept)-1].CumulativeMiles >= minSpacing {
			kept = append(kept, p)
		}
	}
	kept = append(kept, route.Points[last])

	return &domain.Route{Points: kept}
}

// Densify inserts points along every segment longer than maxSpacing miles so
// that consecutive points are at most maxSpacing apart. Inserted points lie
// on the great circle between the original vertices and carry interpolated
// cumulative distances, so nearest-point snapping tracks the polyline itself.
func Densify(route *domain.Route, maxSpacing float64) *domain.Route {
	if route == nil || len(route.Points) < 2 || maxSpacing <= 0 {
		return route
	}

	out := make([]domain.RoutePoint, 0, len(route.Points))
	out = append(out, route.Points[0])
	for i := 1; i < len(route.Points); i++ {
		a, b := route.Points[i-1], route.Points[i]
		seg := b.CumulativeMiles - a.CumulativeMiles

		if n := int(math.Ceil(seg / maxSpacing)); n > 1 {
			for k := 1; k < n; k++ {
				f := float64(k) / float64(n)
				out = append(out, domain.RoutePoint{
					Coordinates:     geo.Interpolate(a.Coordinates, b.Coordinates, f),
					CumulativeMiles: a.CumulativeMiles + seg*f,
				})
			}
		}
		out = append(out, b)
	}

	return &domain.Route{Points: out}
}
