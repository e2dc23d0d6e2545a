package api

import (
	"net/http"
	"time"

	"hinditts/pkg/tracker"
	"hinditts/pkg/version"
)

// StatsHandler reports per-provider usage since startup.
type StatsHandler struct {
	tracker *tracker.Tracker
	started time.Time
}

func NewStatsHandler(t *tracker.Tracker) *StatsHandler {
	return &StatsHandler{
		tracker: t,
		started: time.Now(),
	}
}

type ProviderStatsDTO struct {
	Success      int64      `json:"success"`
	Failures     int64      `json:"failures"`
	Unavailable  int64      `json:"unavailable"`
	AudioBytes   int64      `json:"audio_bytes"`
	SuccessRate  int64      `json:"success_rate"` // percent of calls
	LastFailure  string     `json:"last_failure,omitempty"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

type StatsResponse struct {
	Version   string                      `json:"version"`
	UptimeSec int64                       `json:"uptime_sec"`
	Providers map[string]ProviderStatsDTO `json:"providers"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snapshot := h.tracker.Snapshot()

	resp := StatsResponse{
		Version:   version.Version,
		UptimeSec: int64(time.Since(h.started).Seconds()),
		Providers: make(map[string]ProviderStatsDTO, len(snapshot)),
	}

	for provider, stats := range snapshot {
		total := stats.Success + stats.Failures + stats.Unavailable
		rate := int64(0)
		if total > 0 {
			rate = (stats.Success * 100) / total
		}
		dto := ProviderStatsDTO{
			Success:     stats.Success,
			Failures:    stats.Failures,
			Unavailable: stats.Unavailable,
			AudioBytes:  stats.AudioBytes,
			SuccessRate: rate,
			LastFailure: stats.LastFailure,
		}
		if !stats.LastActivity.IsZero() {
			last := stats.LastActivity
			dto.LastActivity = &last
		}
		resp.Providers[provider] = dto
	}

	writeJSON(w, http.StatusOK, resp)
}
