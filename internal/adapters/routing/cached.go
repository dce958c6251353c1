package routing

import (
	"context"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"log"
	"strings"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
)

// NormalizeQuery collapses whitespace and case-folds a free-text location
// so equivalent queries share a cache key.
func NormalizeQuery(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// RouteKey identifies a route between two points at roughly 1 m precision.
func RouteKey(origin, destination domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f;%.5f,%.5f", origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}

// CachedGeocoder checks a persistent cache before calling the wrapped
// geocoder. Cache failures are logged and never fail the lookup.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	key := NormalizeQuery(query)
	if key == "" {
		return domain.Coordinates{}, errors.New("geocode: query must be non-empty")
	}

	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{key})
		if err != nil {
			log.Printf("req_id=%s geocode cache read failed: %v", obs.RequestID(ctx), err)
		} else if c, ok := hits[key]; ok {
			return c, nil
		}
	}

	c, err := g.next.Geocode(ctx, strings.Join(strings.Fields(query), " "))
	if err != nil {
		return domain.Coordinates{}, err
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{key: c}); err != nil {
			log.Printf("req_id=%s geocode cache write failed: %v", obs.RequestID(ctx), err)
		}
	}
	return c, nil
}

// CachedRouteProvider serves routes from a cache and collapses concurrent
// requests for the same route into a single upstream call.
type CachedRouteProvider struct {
	next  ports.RouteProvider
	cache ports.RouteCache
	group singleflight.Group
}

func NewCachedRouteProvider(next ports.RouteProvider, cache ports.RouteCache) *CachedRouteProvider {
	return &CachedRouteProvider{next: next, cache: cache}
}

func (p *CachedRouteProvider) GetRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.RouteResult, error) {
	key := RouteKey(origin, destination)

	// The shared fetch must outlive any single caller; each caller still
	// stops waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key, func() (any, error) {
		ctx := shared
		if p.cache != nil {
			r, ok, err := p.cache.Get(ctx, key)
			if err != nil {
				log.Printf("req_id=%s route cache read failed: %v", obs.RequestID(ctx), err)
			} else if ok {
				return r, nil
			}
		}

		r, err := p.next.GetRoute(ctx, origin, destination)
		if err != nil {
			return ports.RouteResult{}, err
		}

		if p.cache != nil {
			if err := p.cache.Put(ctx, key, r); err != nil {
				log.Printf("req_id=%s route cache write failed: %v", obs.RequestID(ctx), err)
			}
		}
		return r, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return ports.RouteResult{}, res.Err
		}
		return res.Val.(ports.RouteResult), nil
	case <-ctx.Done():
		return ports.RouteResult{}, ctx.Err()
	}
}
