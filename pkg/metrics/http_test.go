package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPMetrics_Observe(t *testing.T) {
	m := NewHTTPMetrics("api")

	m.IncInFlight()
	m.Observe("GET", "/catalog/items", 200, 42*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)
	m.DecInFlight()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `http_requests_total{method="GET",route="/catalog/items",service="api",status="200"} 1`) {
		t.Errorf("expected request counter in output, got:\n%s", body)
	}
	if !strings.Contains(body, `route="unmatched"`) {
		t.Error("expected empty route to be normalized")
	}
}

func TestHTTPMetrics_NilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/", 200, time.Second)
	m.IncInFlight()
	m.DecInFlight()
}
