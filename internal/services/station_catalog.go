package services

import (
	"context"
	"errors"
	"fmt"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"sync"
	"sync/atomic"
)

// StationCatalog holds the process-wide station index.
//
// Readers take a snapshot with Current and keep using it for the whole
// request. A reload builds a complete new index and swaps the pointer, so an
// in-flight request never observes a partially built catalog.
type StationCatalog struct {
	current   atomic.Pointer[StationIndex]
	tolerance float64
	reloadMu  sync.Mutex
}

func NewStationCatalog(toleranceMiles float64) *StationCatalog {
	c := &StationCatalog{tolerance: toleranceMiles}
	c.current.Store(NewStationIndex(nil, toleranceMiles))
	return c
}

func (c *StationCatalog) Current() *StationIndex { return c.current.Load() }

// Replace installs idx as the current index.
func (c *StationCatalog) Replace(idx *StationIndex) {
	if idx == nil {
		idx = NewStationIndex(nil, c.tolerance)
	}
	c.current.Store(idx)
}

// Reload rebuilds the index from repo and swaps it in. On failure the
// previous index stays in place.
func (c *StationCatalog) Reload(ctx context.Context, repo ports.StationRepository) (_ *StationIndex, err error) {
	defer obs.Time(ctx, "station.catalog.Reload")(&err)

	if repo == nil {
		return nil, errors.New("reload station catalog: repository is nil")
	}

	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	stations, err := repo.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload station catalog: list stations: %w", err)
	}

	idx := NewStationIndex(stations, c.tolerance)
	c.current.Store(idx)
	return idx, nil
}
