package api

import (
	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
	"net/http"
)

// Dependencies are the collaborators the HTTP layer needs. Handlers stay
// unaware of the concrete adapters behind the ports.
type Dependencies struct {
	Catalog  *services.StationCatalog
	Planner  *services.Planner
	Stations ports.StationRepository
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Maps     ports.MapWriter
	MapsDir  string
	Defaults handlers.PlanDefaults
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root.
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Catalog: deps.Catalog}
	stationHandler := &handlers.StationHandler{Catalog: deps.Catalog, Repo: deps.Stations}
	planHandler := &handlers.PlanHandler{
		Planner:  deps.Planner,
		Geocoder: deps.Geocoder,
		Routes:   deps.Routes,
		Maps:     deps.Maps,
		Defaults: deps.Defaults,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/stations", stationHandler.List)
	mux.HandleFunc("/stations/reload", stationHandler.Reload)

	if deps.MapsDir != "" {
		mux.Handle("GET /maps/", http.StripPrefix("/maps/", http.FileServer(http.Dir(deps.MapsDir))))
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
