package handlers

import (
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
	"log"
	"net/http"
	"strings"
)

// PlanDefaults supplies the vehicle and strategy used when a request leaves
// them out. It is called per request so configuration reloads apply.
type PlanDefaults func() (domain.Vehicle, services.Strategy)

type PlanHandler struct {
	Planner  *services.Planner
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider
	Maps     ports.MapWriter
	Defaults PlanDefaults
}

// Plan resolves the trip, plans refuelling stops and renders the map.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vehicle, strategy := domain.DefaultVehicle(), services.StrategyGreedy
	if h.Defaults != nil {
		vehicle, strategy = h.Defaults()
	}

	if req.MaxRangeMiles != nil {
		vehicle.MaxRangeMiles = *req.MaxRangeMiles
	}
	if req.MilesPerGallon != nil {
		vehicle.MilesPerGallon = *req.MilesPerGallon
	}
	vehicle.StartTankFull = true
	if req.StartTankFull != nil {
		vehicle.StartTankFull = *req.StartTankFull
	}
	if req.StartFuelGallons != nil {
		vehicle.StartFuelGallons = *req.StartFuelGallons
	}
	if !vehicle.StartTankFull && req.StartFuelGallons == nil {
		writeError(w, r, http.StatusBadRequest, "start_fuel_gallons is required when start_tank_full is false")
		return
	}

	if strings.TrimSpace(req.Strategy) != "" {
		s, err := services.ParseStrategy(req.Strategy)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		strategy = s
	}

	svcReq := services.PlanTripRequest{
		Start:         req.Start,
		End:           req.End,
		StartLocation: req.StartLocation.Coordinates(),
		EndLocation:   req.EndLocation.Coordinates(),
		Vehicle:       vehicle,
		Strategy:      strategy,
	}
	if len(req.RouteCoordinates) > 0 {
		geometry, err := domain.FromLonLat(req.RouteCoordinates)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "route_coordinates: "+err.Error())
			return
		}
		svcReq.Geometry = geometry
	}

	trip, err := services.PlanTrip(r.Context(), svcReq, h.Geocoder, h.Routes, h.Planner)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	// The map is a convenience; a failure to render it does not fail the plan.
	var mapURL string
	if h.Maps != nil {
		u, err := h.Maps.WriteMap(r.Context(), trip.Itinerary)
		if err != nil {
			log.Printf("req_id=%s map write failed: %v", obs.RequestID(r.Context()), err)
		} else {
			mapURL = u
		}
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(trip.Itinerary, mapURL))
}
