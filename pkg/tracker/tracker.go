package tracker

import (
	"sync"
	"sync/atomic"
	"time"
)

// Tracker tracks synthesis outcomes per provider.
type Tracker struct {
	mu    sync.RWMutex
	stats map[string]*ProviderStats
}

// ProviderStats holds metrics for a specific provider.
// Counter fields are accessed atomically.
type ProviderStats struct {
	Success      int64
	Failures     int64
	Unavailable  int64
	AudioBytes   int64
	LastFailure  string
	LastActivity time.Time
}

// New creates a new Tracker.
func New() *Tracker {
	return &Tracker{
		stats: make(map[string]*ProviderStats),
	}
}

// getStats returns the stats object for a provider, creating it if needed.
func (t *Tracker) getStats(provider string) *ProviderStats {
	t.mu.RLock()
	s, ok := t.stats[provider]
	t.mu.RUnlock()
	if ok {
		return s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Double check
	if s, ok = t.stats[provider]; ok {
		return s
	}
	s = &ProviderStats{}
	t.stats[provider] = s
	return s
}

// TrackSuccess records a successful synthesis that produced n audio bytes.
func (t *Tracker) TrackSuccess(provider string, n int) {
	if t == nil {
		return
	}
	s := t.getStats(provider)
	atomic.AddInt64(&s.Success, 1)
	atomic.AddInt64(&s.AudioBytes, int64(n))
	t.touch(s, "")
}

// TrackFailure records a failed vendor call.
func (t *Tracker) TrackFailure(provider string, err error) {
	if t == nil {
		return
	}
	s := t.getStats(provider)
	atomic.AddInt64(&s.Failures, 1)
	t.touch(s, errString(err))
}

// TrackUnavailable records a call rejected because the vendor client was not initialized.
func (t *Tracker) TrackUnavailable(provider string) {
	if t == nil {
		return
	}
	s := t.getStats(provider)
	atomic.AddInt64(&s.Unavailable, 1)
	t.touch(s, "client not initialized")
}

func (t *Tracker) touch(s *ProviderStats, failure string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s.LastActivity = time.Now()
	if failure != "" {
		s.LastFailure = failure
	}
}

// Snapshot returns a copy of the current stats.
func (t *Tracker) Snapshot() map[string]ProviderStats {
	if t == nil {
		return map[string]ProviderStats{}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]ProviderStats, len(t.stats))
	for k, v := range t.stats {
		result[k] = ProviderStats{
			Success:      atomic.LoadInt64(&v.Success),
			Failures:     atomic.LoadInt64(&v.Failures),
			Unavailable:  atomic.LoadInt64(&v.Unavailable),
			AudioBytes:   atomic.LoadInt64(&v.AudioBytes),
			LastFailure:  v.LastFailure,
			LastActivity: v.LastActivity,
		}
	}
	return result
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
