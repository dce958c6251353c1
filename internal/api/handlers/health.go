package handlers

import (
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/services"
	"net/http"
)

type HealthHandler struct {
	Catalog *services.StationCatalog
}

// Health provides a minimal liveness check that also reports the catalog size.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	res := dto.HealthResponse{Status: "ok"}
	if h.Catalog != nil {
		res.Stations = h.Catalog.Current().Len()
	}
	writeJSON(w, r, http.StatusOK, res)
}
