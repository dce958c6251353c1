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

// ErrNoRoute is returned when the routing service finds no drivable route.
var ErrNoRoute = errors.New("no route found")

const DefaultOSRMBaseURL = "https://router.project-osrm.org"

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// OSRMClient implements ports.RouteProvider against an OSRM HTTP server.
type OSRMClient struct {
	http    *httpClient
	baseURL string
}

func NewOSRMClient(baseURL string) *OSRMClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultOSRMBaseURL
	}
	return &OSRMClient{
		http:    newHTTPClient(nil),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GetRoute returns the full-resolution driving geometry from origin to destination.
func (o *OSRMClient) GetRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	endpoint := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f",
		o.baseURL, origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", "geojson")

	var decoded osrmResponse
	if err := o.http.getJSON(ctx, endpoint, q, &decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("osrm route: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("osrm route: code=%s %s: %w", decoded.Code, decoded.Message, ErrNoRoute)
	}

	r := decoded.Routes[0]
	geometry, err := domain.FromLonLat(r.Geometry.Coordinates)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("osrm route: %w", err)
	}
	if len(geometry) < 2 {
		return ports.RouteResult{}, fmt.Errorf("osrm route: geometry has %d points: %w", len(geometry), ErrNoRoute)
	}

	return ports.RouteResult{
		Geometry:        geometry,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
	}, nil
}
