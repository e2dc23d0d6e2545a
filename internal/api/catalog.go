package api

import (
	"net/http"

	"hinditts/pkg/tts"
)

// CatalogHandler serves the static provider listing.
type CatalogHandler struct {
	registry *tts.Registry
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(reg *tts.Registry) *CatalogHandler {
	return &CatalogHandler{registry: reg}
}

// ProvidersResponse is the body of GET /api/providers.
type ProvidersResponse struct {
	Providers []tts.CatalogEntry `json:"providers"`
}

// HandleProviders lists every registered provider, configured or not.
func (h *CatalogHandler) HandleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProvidersResponse{Providers: h.registry.Catalog()})
}
