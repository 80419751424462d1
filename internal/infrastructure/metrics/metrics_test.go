package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.Transition("APPROVED", "workflow")
	m.Transition("APPROVED", "workflow")
	m.Transition("REJECTED", "admin_override")
	m.Failure("decide", "forbidden")

	if got := testutil.ToFloat64(m.transitions.WithLabelValues("APPROVED", "workflow")); got != 2 {
		t.Fatalf("approved/workflow = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("REJECTED", "admin_override")); got != 1 {
		t.Fatalf("rejected/admin_override = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.failures.WithLabelValues("decide", "forbidden")); got != 1 {
		t.Fatalf("failures = %v, want 1", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.Transition("APPROVED", "workflow")
	m.Failure("submit", "conflict")
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Transition("SUBMITTED", "workflow")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(string(body), `workorder_transitions_total{action="SUBMITTED",type="workflow"} 1`) {
		t.Fatalf("counter missing from scrape:\n%s", body)
	}
}
