// Package geo holds the geospatial helpers used by the planner. Distances
// are great-circle (haversine) on the orb earth radius, reported in
// statute miles.
package geo

import (
	"fuel-route-service/internal/domain"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const MetersPerMile = 1609.344

// MilesPerDegreeLat is the length of one degree of latitude.
var MilesPerDegreeLat = orb.EarthRadius * math.Pi / 180 / MetersPerMile

func Point(c domain.Coordinates) orb.Point { return orb.Point{c.Lon, c.Lat} }

func FromPoint(p orb.Point) domain.Coordinates { return domain.Coordinates{Lat: p.Lat(), Lon: p.Lon()} }

// Miles returns the great-circle distance between a and b.
func Miles(a, b domain.Coordinates) float64 {
	return geo.DistanceHaversine(Point(a), Point(b)) / MetersPerMile
}

// Interpolate returns the point at fraction (0..1) of the great-circle path
// from a to b.
func Interpolate(a, b domain.Coordinates, fraction float64) domain.Coordinates {
	pa, pb := Point(a), Point(b)
	d := geo.DistanceHaversine(pa, pb)
	if d == 0 {
		return a
	}
	return FromPoint(geo.PointAtBearingAndDistance(pa, geo.Bearing(pa, pb), d*fraction))
}

func Finite(c domain.Coordinates) bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}

// BoundAround returns the bound covering every point within miles of c.
func BoundAround(c domain.Coordinates, miles float64) orb.Bound {
	return geo.NewBoundAroundPoint(Point(c), miles*MetersPerMile)
}

// LineString converts coordinates into an orb line in [lon, lat] order.
func LineString(coords []domain.Coordinates) orb.LineString {
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, Point(c))
	}
	return ls
}
