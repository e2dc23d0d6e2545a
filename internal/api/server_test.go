package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hinditts/pkg/config"
	"hinditts/pkg/tracker"
	"hinditts/pkg/tts"
	"hinditts/pkg/tts/providers"
	"hinditts/pkg/version"
)

func newCatalogServer(t *testing.T, tr *tracker.Tracker) http.Handler {
	t.Helper()
	cfg := config.DefaultConfig()
	reg, err := providers.NewRegistry(&cfg.Providers, tr)
	require.NoError(t, err)
	return newTestHandler(reg, tr)
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewServer(t *testing.T) {
	cfg := config.DefaultConfig()
	reg, err := providers.NewRegistry(&cfg.Providers, nil)
	require.NoError(t, err)

	srv := NewServer(&cfg.Server, NewSynthesisHandler(reg), NewCatalogHandler(reg), NewStatsHandler(tracker.New()))
	assert.Equal(t, "0.0.0.0:5000", srv.Addr)
	assert.Equal(t, 120*time.Second, srv.WriteTimeout)
	assert.Equal(t, 15*time.Second, srv.ReadTimeout)
	assert.NotNil(t, srv.Handler)
}

func TestHandleProviders(t *testing.T) {
	// Catalog is fixed regardless of which credentials are present
	h := newCatalogServer(t, tracker.New())

	rec := get(h, "/api/providers")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProvidersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Providers, 4)

	ids := make([]string, len(resp.Providers))
	for i, p := range resp.Providers {
		ids[i] = p.ID
		assert.Len(t, p.Voices, 3, p.ID)
	}
	assert.Equal(t, []string{"elevenlabs", "sarvam", "google", "azure"}, ids)
	assert.Equal(t, tts.CatalogEntry{ID: "azure", Name: "Microsoft Azure", Voices: []string{"hari", "ananya", "karan"}}, resp.Providers[3])
}

func TestHandleHealth(t *testing.T) {
	h := newCatalogServer(t, tracker.New())

	rec := get(h, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Hindi TTS API is running"}`, rec.Body.String())
}

func TestHandleVersion(t *testing.T) {
	h := newCatalogServer(t, tracker.New())

	rec := get(h, "/api/version")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, version.Version, resp["version"])
}

func TestHandleStats(t *testing.T) {
	tr := tracker.New()
	tr.TrackSuccess("sarvam", 100)
	tr.TrackSuccess("sarvam", 50)
	tr.TrackUnavailable("sarvam")
	h := newCatalogServer(t, tr)

	rec := get(h, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	s := resp.Providers["sarvam"]
	assert.Equal(t, int64(2), s.Success)
	assert.Equal(t, int64(1), s.Unavailable)
	assert.Equal(t, int64(150), s.AudioBytes)
	assert.Equal(t, int64(66), s.SuccessRate)
	assert.Equal(t, "client not initialized", s.LastFailure)
	assert.NotNil(t, s.LastActivity)
}

func TestNotFound(t *testing.T) {
	h := newCatalogServer(t, tracker.New())

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/unknown"},
		{http.MethodGet, "/"},
		{http.MethodGet, "/api/generate-audio"},
		{http.MethodPost, "/api/health"},
		{http.MethodDelete, "/api/providers"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"error":"Endpoint not found"}`, rec.Body.String())
		})
	}
}
