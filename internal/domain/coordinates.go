package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (latitude, longitude), WGS-84 degrees.
// The core always works in this order; [lon, lat] pairs from GeoJSON and
// routing services are converted with FromLonLat at the adapter boundary.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

func (c Coordinates) String() string { return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon) }

// Validate rejects NaN, infinities and out-of-range degrees.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return fmt.Errorf("latitude %v is not a finite number", c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("longitude %v is not a finite number", c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %.6f must be between -90 and 90", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %.6f must be between -180 and 180", c.Lon)
	}
	return nil
}

// FromLonLat converts GeoJSON-ordered [lon, lat] pairs into Coordinates.
func FromLonLat(pairs [][]float64) ([]Coordinates, error) {
	out := make([]Coordinates, 0, len(pairs))
	for i, p := range pairs {
		if len(p) < 2 {
			return nil, fmt.Errorf("coordinate #%d: expected [lon, lat], got %d values", i, len(p))
		}
		out = append(out, Coordinates{Lon: p[0], Lat: p[1]})
	}
	return out, nil
}

// ToLonLat is the inverse of FromLonLat.
func ToLonLat(coords []Coordinates) [][]float64 {
	out := make([][]float64, 0, len(coords))
	for _, c := range coords {
		out = append(out, c.CoordsToList())
	}
	return out
}
