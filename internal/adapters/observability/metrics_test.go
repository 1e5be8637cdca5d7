package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"code_reviewer/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/api/review", "POST", 200, 12*time.Millisecond)
	observability.ObserveProvider("primary", "openai", "ok", 300*time.Millisecond)
	observability.ObserveReview("partial")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"reviewer_http_requests_total",
		`reviewer_provider_requests_total{outcome="ok",provider="primary",service="openai"}`,
		`reviewer_reviews_total{result="partial"}`,
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestNewLogger_Level(t *testing.T) {
	if l := observability.NewLogger("prod", "warn"); l.GetLevel().String() != "warn" {
		t.Fatalf("level = %s, want warn", l.GetLevel())
	}
	if l := observability.NewLogger("dev", "bogus"); l.GetLevel().String() != "info" {
		t.Fatalf("level = %s, want info", l.GetLevel())
	}
}
