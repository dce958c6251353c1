package routing

import (
	"context"
	"errors"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"net/url"
	"strings"
)

const DefaultORSBaseURL = "https://api.openrouteservice.org"

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

type orsDirectionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// ORSClient implements both ports.Geocoder and ports.RouteProvider using
// OpenRouteService. It is safe for concurrent use.
type ORSClient struct {
	http    *httpClient
	baseURL string
	profile string
}

func NewORSClient(apiKey, baseURL string) (*ORSClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultORSBaseURL
	}

	return &ORSClient{
		http:    newHTTPClient(map[string]string{"Authorization": apiKey}),
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving-car",
	}, nil
}

// Geocode resolves query via /geocode/search, restricted to the US.
func (o *ORSClient) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	q := url.Values{}
	q.Set("text", query)
	q.Set("boundary.country", "US")
	q.Set("size", "1")

	var decoded orsGeocodeResponse
	if err := o.http.getJSON(ctx, o.baseURL+"/geocode/search", q, &decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w", query, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w", query, ports.ErrLocationNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: invalid coordinate format", query)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}

// GetRoute fetches driving directions as GeoJSON.
func (o *ORSClient) GetRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)
	payload := map[string]any{
		"coordinates": [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	}

	var decoded orsDirectionsResponse
	if err := o.http.postJSON(ctx, endpoint, payload, &decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("ors route: %w", err)
	}

	if len(decoded.Features) == 0 {
		return ports.RouteResult{}, fmt.Errorf("ors route: %w", ErrNoRoute)
	}

	f := decoded.Features[0]
	geometry, err := domain.FromLonLat(f.Geometry.Coordinates)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("ors route: %w", err)
	}
	if len(geometry) < 2 {
		return ports.RouteResult{}, fmt.Errorf("ors route: geometry has %d points: %w", len(geometry), ErrNoRoute)
	}

	return ports.RouteResult{
		Geometry:        geometry,
		DistanceMeters:  f.Properties.Summary.Distance,
		DurationSeconds: f.Properties.Summary.Duration,
	}, nil
}
