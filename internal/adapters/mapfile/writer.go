package mapfile

import (
	"context"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"fuel-route-service/internal/platform/obs"
	"os"
	"log"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

const Ext = ".geojson"

// Writer stores itinerary maps as GeoJSON files under Dir and returns their
// URL below BaseURL. Files older than MaxAge are removed by Prune.
type Writer struct {
	Dir     string
	BaseURL string
	MaxAge  time.Duration
}

func NewWriter(dir, baseURL string) (*Writer, error) {
	if dir == "" {
		return nil, errors.New("map writer: directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("map writer: create %q: %w", dir, err)
	}
	if baseURL == "" {
		baseURL = "/maps/"
	}
	return &Writer{Dir: dir, BaseURL: baseURL}, nil
}

// FeatureCollection renders the route as a LineString, its endpoints as
// Points and one Point per fuel stop.
func FeatureCollection(it *domain.Itinerary) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if it == nil || len(it.RouteCoordinates) == 0 {
		return fc
	}

	line := geojson.NewFeature(geo.LineString(it.RouteCoordinates))
	line.Properties["kind"] = "route"
	line.Properties["total_distance"] = it.TotalDistance
	line.Properties["total_cost"] = it.TotalCost
	fc.Append(line)

	start := geojson.NewFeature(geo.Point(it.RouteCoordinates[0]))
	start.Properties["kind"] = "start"
	fc.Append(start)

	for i, s := range it.FuelStops {
		f := geojson.NewFeature(geo.Point(s.Station.Location))
		f.ID = s.Station.ID
		f.Properties["kind"] = "fuel_stop"
		f.Properties["order"] = i + 1
		f.Properties["name"] = s.Station.Name
		f.Properties["price"] = s.Station.PricePerGallon
		f.Properties["distance_from_start"] = s.DistanceFromStart
		f.Properties["gallons"] = s.Gallons
		f.Properties["cost"] = s.Cost
		fc.Append(f)
	}

	end := geojson.NewFeature(geo.Point(it.RouteCoordinates[len(it.RouteCoordinates)-1]))
	end.Properties["kind"] = "end"
	fc.Append(end)

	return fc
}

// WriteMap writes the itinerary map to a new file and returns its URL.
func (w *Writer) WriteMap(ctx context.Context, it *domain.Itinerary) (_ string, err error) {
	defer obs.Time(ctx, "mapfile.WriteMap")(&err)

	b, err := FeatureCollection(it).MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("write map: encode: %w", err)
	}

	name := uuid.NewString() + Ext

	// Write then rename so the file server never sees a partial file.
	tmp, err := os.CreateTemp(w.Dir, ".map-*")
	if err != nil {
		return "", fmt.Errorf("write map: create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write map: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write map: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(w.Dir, name)); err != nil {
		return "", fmt.Errorf("write map: rename: %w", err)
	}

	return path.Join(w.BaseURL, name), nil
}

// Prune removes map files (and abandoned temp files) last modified before
// cutoff and reports how many were removed.
func (w *Writer) Prune(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return 0, fmt.Errorf("prune maps: read %q: %w", w.Dir, err)
	}

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, Ext) || strings.HasPrefix(name, ".map-")) {
			continue
		}

		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(w.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("prune maps: %w", err)
		}
		removed++
	}
	return removed, nil
}

// StartPruner removes maps older than MaxAge every interval until ctx is
// done. It does nothing when MaxAge or interval is not positive.
func (w *Writer) StartPruner(ctx context.Context, interval time.Duration) {
	if w.MaxAge <= 0 || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n, err := w.Prune(time.Now().Add(-w.MaxAge))
				if err != nil {
					log.Printf("op=mapfile.prune dir=%s err=%v", w.Dir, err)
				} else if n > 0 {
					log.Printf("op=mapfile.prune dir=%s removed=%d", w.Dir, n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
