package observability

import (
	"testing"
	"time"
)

func TestMetrics_AccumulatesDurations(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/tickets", "POST", 200, 40*time.Millisecond)
	m.RecordRequest("/api/tickets", "POST", 200, 60*time.Millisecond)
	m.RecordRequest("/api/tickets", "GET", 200, 10*time.Millisecond)

	stats := m.RequestStats("/api/tickets", "POST", 200)
	if stats.Count != 2 {
		t.Fatalf("expected 2 requests, got %d", stats.Count)
	}
	if stats.TotalDuration != 100*time.Millisecond {
		t.Fatalf("expected 100ms accumulated, got %v", stats.TotalDuration)
	}
	if stats.Avg() != 50*time.Millisecond {
		t.Fatalf("expected 50ms average, got %v", stats.Avg())
	}

	if other := m.RequestStats("/api/tickets", "GET", 200); other.Count != 1 {
		t.Fatalf("routes not kept separate: %+v", other)
	}
}

func TestMetrics_CountsErrorsByCode(t *testing.T) {
	m := NewMetrics()

	m.RecordError("/api/tickets/:id", "PUT", "FORBIDDEN")
	m.RecordError("/api/tickets/:id", "PUT", "FORBIDDEN")
	m.RecordError("/api/track/:ticketId", "GET", "NOT_FOUND")

	if got := m.ErrorCount("/api/tickets/:id", "PUT", "FORBIDDEN"); got != 2 {
		t.Fatalf("expected 2 forbidden errors, got %d", got)
	}
	if got := m.ErrorCount("/api/track/:ticketId", "GET", "NOT_FOUND"); got != 1 {
		t.Fatalf("expected 1 not-found error, got %d", got)
	}
	if got := m.ErrorCount("/api/tickets", "POST", "STORAGE_ERROR"); got != 0 {
		t.Fatalf("expected 0 for unrecorded code, got %d", got)
	}
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	m.RecordRequest("/api/tickets", "POST", 200, time.Millisecond)
	m.RecordError("/api/tickets", "POST", "STORAGE_ERROR")
	if stats := m.RequestStats("/api/tickets", "POST", 200); stats.Count != 0 {
		t.Fatalf("nil metrics returned stats: %+v", stats)
	}
	if got := m.ErrorCount("/api/tickets", "POST", "STORAGE_ERROR"); got != 0 {
		t.Fatalf("nil metrics returned error count %d", got)
	}
}
