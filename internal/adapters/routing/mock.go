package routing

import (
	"context"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"sync/atomic"
)

// MockRouteProvider returns canned routes keyed by RouteKey. Without a
// matching entry it answers with the straight segment between the points.
type MockRouteProvider struct {
	Routes map[string]ports.RouteResult
	Err    error
	calls  atomic.Int64
}

func (m *MockRouteProvider) GetRoute(_ context.Context, origin, destination domain.Coordinates) (ports.RouteResult, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return ports.RouteResult{}, m.Err
	}
	if r, ok := m.Routes[RouteKey(origin, destination)]; ok {
		return r, nil
	}
	return ports.RouteResult{Geometry: []domain.Coordinates{origin, destination}}, nil
}

func (m *MockRouteProvider) Calls() int { return int(m.calls.Load()) }

// MockGeocoder resolves queries from a fixed table keyed by NormalizeQuery.
type MockGeocoder struct {
	Locations map[string]domain.Coordinates
	calls     atomic.Int64
}

func NewMockGeocoder(locations map[string]domain.Coordinates) *MockGeocoder {
	m := &MockGeocoder{Locations: make(map[string]domain.Coordinates, len(locations))}
	for q, c := range locations {
		m.Locations[NormalizeQuery(q)] = c
	}
	return m
}

func (m *MockGeocoder) Geocode(_ context.Context, query string) (domain.Coordinates, error) {
	m.calls.Add(1)
	c, ok := m.Locations[NormalizeQuery(query)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocode %q: %w", query, ports.ErrLocationNotFound)
	}
	return c, nil
}

func (m *MockGeocoder) Calls() int { return int(m.calls.Load()) }
