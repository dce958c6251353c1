package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
	"io"
	"log"
	"net/http"
)

const maxBodyBytes = 8 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

func writeErrorDetails(w http.ResponseWriter, r *http.Request, status int, msg string, details map[string]any) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg, Details: details})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body: "+err.Error())
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writePlanError maps planning and upstream failures onto HTTP responses.
func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalidRoute   *domain.InvalidRouteError
		invalidVehicle *domain.InvalidVehicleParametersError
		unreachable    *domain.UnreachableDestinationError
		emptyCatalog   *domain.EmptyStationCatalogError
		upstream       *services.UpstreamError
	)

	switch {
	case errors.Is(err, services.ErrInvalidTrip):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &invalidVehicle):
		writeErrorDetails(w, r, http.StatusBadRequest, invalidVehicle.Error(), map[string]any{
			"field": invalidVehicle.Field,
		})
	case errors.As(err, &invalidRoute):
		writeErrorDetails(w, r, http.StatusBadRequest, invalidRoute.Error(), map[string]any{
			"reason": invalidRoute.Reason,
			"index":  invalidRoute.Index,
		})
	case errors.As(err, &unreachable):
		writeErrorDetails(w, r, http.StatusUnprocessableEntity, unreachable.Error(), map[string]any{
			"position":       services.Round2(unreachable.Position),
			"reach":          services.Round2(unreachable.Reach),
			"next_candidate": services.Round2(unreachable.NextCandidate),
			"gap":            services.Round2(unreachable.Gap),
			"total_distance": services.Round2(unreachable.TotalDistance),
		})
	case errors.As(err, &emptyCatalog):
		writeErrorDetails(w, r, http.StatusUnprocessableEntity, emptyCatalog.Error(), map[string]any{
			"total_distance": services.Round2(emptyCatalog.TotalDistance),
			"initial_range":  services.Round2(emptyCatalog.InitialRange),
		})
	case errors.Is(err, ports.ErrLocationNotFound):
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("could not geocode location: %v", err))
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "upstream request timed out")
	case errors.As(err, &upstream):
		log.Printf("req_id=%s upstream failure: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusBadGateway, "routing service unavailable")
	default:
		log.Printf("req_id=%s plan failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
