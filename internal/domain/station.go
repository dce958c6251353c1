package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// A retail fuel station from the catalog. Stations are loaded once and
// treated as read-only for the lifetime of a planning request.
type Station struct {
	ID             string
	Name           string
	Address        string
	City           string
	State          string
	Location       Coordinates
	PricePerGallon float64
}

func (s Station) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("station id must not be empty")
	}
	if math.IsNaN(s.PricePerGallon) || math.IsInf(s.PricePerGallon, 0) || s.PricePerGallon <= 0 {
		return fmt.Errorf("station %s: price per gallon must be positive, got %v", s.ID, s.PricePerGallon)
	}
	if err := s.Location.Validate(); err != nil {
		return fmt.Errorf("station %s: %w", s.ID, err)
	}
	return nil
}

// A station snapped onto a specific route: the cumulative distance of its
// nearest route point, and how far off the route it sits.
type RouteStation struct {
	Station           Station
	DistanceFromStart float64
	OffsetMiles       float64
}
