package observability

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akademus/akademus-api/internal/platform/logger"
)

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics()
	m.ApiInflightInc()
	m.ObserveAPI("GET", "/courses", "200", 12*time.Millisecond)
	m.ObserveAPI("GET", "/courses", "200", 30*time.Millisecond)
	m.ApiInflightDec()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		`akademus_http_requests_total{method="GET",route="/courses",status="200"} 2`,
		`akademus_http_request_duration_seconds_count{method="GET",route="/courses"} 2`,
		`akademus_http_inflight_requests 0`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	if err := m.RegisterDB(nil, "x"); err != nil {
		t.Fatalf("RegisterDB: %v", err)
	}
}

func TestInitOTelDisabled(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.Nop(), OtelConfig{Enabled: false})
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
