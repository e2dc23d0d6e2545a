package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"hinditts/pkg/config"
	"hinditts/pkg/version"
)

// NewServer creates and configures the HTTP server.
func NewServer(cfg *config.ServerConfig, synth *SynthesisHandler, catalog *CatalogHandler, stats *StatsHandler) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      NewHandler(cfg, synth, catalog, stats),
		ReadTimeout:  cfg.ReadTimeout.Std(),
		WriteTimeout: cfg.WriteTimeout.Std(),
		IdleTimeout:  cfg.IdleTimeout.Std(),
	}
}

// NewHandler builds the route table wrapped in the middleware chain:
// recover, CORS, request logging, mux.
func NewHandler(cfg *config.ServerConfig, synth *SynthesisHandler, catalog *CatalogHandler, stats *StatsHandler) http.Handler {
	mux := http.NewServeMux()

	// 1. Synthesis
	mux.Handle("POST /api/generate-audio", synth)

	// 2. Catalog & Health
	mux.HandleFunc("GET /api/providers", catalog.HandleProviders)
	mux.HandleFunc("GET /api/health", handleHealth)

	// 3. Diagnostics
	mux.Handle("GET /api/stats", stats)
	mux.HandleFunc("GET /api/version", handleVersion)

	// 4. Everything else, including wrong methods on known paths
	mux.HandleFunc("/", handleNotFound)

	var h http.Handler = mux
	h = loggingMiddleware(h)
	h = corsMiddleware(cfg.CORS.AllowedOrigins, h)
	h = recoverMiddleware(h)
	return h
}

// HealthResponse is the constant liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Message: "Hindi TTS API is running"})
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusNotFound, "Endpoint not found")
}
