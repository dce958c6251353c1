package routing

import (
	"context"
	"fmt"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"
	nominatimUserAgent      = "fuel-route-service/1.0"
)

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimClient implements ports.Geocoder using the OpenStreetMap
// Nominatim search API. Nominatim requires an identifying User-Agent.
type NominatimClient struct {
	http         *httpClient
	baseURL      string
	countryCodes string
}

func NewNominatimClient(baseURL, countryCodes string) *NominatimClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultNominatimBaseURL
	}
	return &NominatimClient{
		http:         newHTTPClient(map[string]string{"User-Agent": nominatimUserAgent}),
		baseURL:      strings.TrimRight(baseURL, "/"),
		countryCodes: countryCodes,
	}
}

// Geocode returns the first result for query that carries coordinates.
func (n *NominatimClient) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "5")
	if n.countryCodes != "" {
		q.Set("countrycodes", n.countryCodes)
	}

	var results []nominatimResult
	if err := n.http.getJSON(ctx, n.baseURL+"/search", q, &results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w", query, err)
	}

	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		c := domain.Coordinates{Lat: lat, Lon: lon}
		if c.Validate() == nil {
			return c, nil
		}
	}

	return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w", query, ports.ErrLocationNotFound)
}
