package observability

import (
	"strconv"
	"sync"
	"time"
)

// RouteStats accumulates outcomes for one path/method/status combination.
type RouteStats struct {
	Count         int64
	TotalDuration time.Duration
}

// Avg returns the mean request duration for the route.
func (s RouteStats) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// Metrics aggregates per-route request outcomes in memory. The request logger
// feeds it on every request; error codes are recorded by the error middleware.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*RouteStats
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]*RouteStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest adds one request outcome, accumulating its duration.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[key]
	if !ok {
		stats = &RouteStats{}
		m.requests[key] = stats
	}
	stats.Count++
	stats.TotalDuration += duration
}

// RecordError increments error counters by internal error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[key]++
}

// RequestStats returns a copy of the accumulated stats for a route.
func (m *Metrics) RequestStats(path, method string, status int) RouteStats {
	if m == nil {
		return RouteStats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if stats, ok := m.requests[pathKey(path, method, status)]; ok {
		return *stats
	}
	return RouteStats{}
}

// ErrorCount returns the number of recorded errors for a route and code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[path+"|"+method+"|"+code]
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
