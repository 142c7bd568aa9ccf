package observability

import (
	"sync"
	"time"
)

// Metrics is a small in-process registry of API request outcomes, keyed by
// method+endpoint+status. It exists so the CLI (and tests) can inspect how
// many physical requests a workflow issued.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*EndpointStats
}

type EndpointStats struct {
	Count        int64
	Errors       int64
	TotalLatency time.Duration
}

var (
	currentMu sync.RWMutex
	current   *Metrics
)

func Init() *Metrics {
	m := &Metrics{requests: map[string]*EndpointStats{}}
	currentMu.Lock()
	current = m
	currentMu.Unlock()
	return m
}

// Current returns the active registry, or nil when Init was never called.
// Observation is always best-effort.
func Current() *Metrics {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

func (m *Metrics) ObserveRequest(method, endpoint, status string, dur time.Duration) {
	if m == nil {
		return
	}
	key := method + " " + endpoint + " " + status
	m.mu.Lock()
	st, ok := m.requests[key]
	if !ok {
		st = &EndpointStats{}
		m.requests[key] = st
	}
	st.Count++
	if status != "" && status[0] != '2' {
		st.Errors++
	}
	st.TotalLatency += dur
	m.mu.Unlock()
}

func (m *Metrics) Snapshot() map[string]EndpointStats {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]EndpointStats, len(m.requests))
	for k, v := range m.requests {
		out[k] = *v
	}
	return out
}
