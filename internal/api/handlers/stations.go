package handlers

import (
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
	"log"
	"net/http"
	"strings"
)

type StationHandler struct {
	Catalog *services.StationCatalog
	Repo    ports.StationRepository
}

// List returns the current catalog, or a single station with ?id=.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	idx := h.Catalog.Current()

	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		s, ok := idx.Get(id)
		if !ok {
			writeError(w, r, http.StatusNotFound, "station not found")
			return
		}
		writeJSON(w, r, http.StatusOK, dto.NewStationResponse(s))
		return
	}

	all := idx.All()
	res := dto.ListStationsResponse{
		Count:    len(all),
		Stations: make([]dto.StationResponse, 0, len(all)),
	}
	for _, s := range all {
		res.Stations = append(res.Stations, dto.NewStationResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Reload rebuilds the catalog from the repository and swaps it in.
func (h *StationHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "station repository is not configured")
		return
	}

	idx, err := h.Catalog.Reload(r.Context(), h.Repo)
	if err != nil {
		log.Printf("req_id=%s reload stations failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ReloadStationsResponse{Stations: idx.Len(), Skipped: idx.Skipped()})
}
