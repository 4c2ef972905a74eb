package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	if cfg.Namespace != "pharmconsult" {
		t.Errorf("expected namespace pharmconsult, got %q", cfg.Namespace)
	}
	if !cfg.metricsOn() {
		t.Error("expected metrics enabled by default")
	}
	cfg.MetricsEnabled = BoolPtr(false)
	if cfg.metricsOn() {
		t.Error("expected metrics disabled")
	}
}

func TestRecordConsultation(t *testing.T) {
	p := NewProvider(Config{})

	p.RecordConsultation("UTI", "PROCEED")
	p.RecordConsultation("UTI", "PROCEED")
	p.RecordConsultation("Herpes Zoster", "REFER")

	if got := testutil.ToFloat64(p.consultations.WithLabelValues("UTI", "PROCEED")); got != 2 {
		t.Errorf("expected 2 UTI consultations, got %v", got)
	}
	if got := testutil.ToFloat64(p.consultations.WithLabelValues("Herpes Zoster", "REFER")); got != 1 {
		t.Errorf("expected 1 zoster referral, got %v", got)
	}
}

func TestRecordEligibility(t *testing.T) {
	p := NewProvider(Config{})
	p.RecordEligibility("uti", "conservative")

	if got := testutil.ToFloat64(p.eligibility.WithLabelValues("uti", "conservative")); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestRecordAuditFailure(t *testing.T) {
	p := NewProvider(Config{})
	p.RecordAuditFailure()

	if got := testutil.ToFloat64(p.auditFailures); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestMetricsMiddleware_RecordsRoute(t *testing.T) {
	p := NewProvider(Config{})
	e := echo.New()
	e.Use(p.MetricsMiddleware())
	e.GET("/api/v1/services", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.POST("/api/v1/consultations", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "bad")
	})

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/services"},
		{http.MethodPost, "/api/v1/consultations"},
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))
	}

	if n := testutil.CollectAndCount(p.requestDuration); n != 2 {
		t.Errorf("expected 2 labelled series, got %d", n)
	}
	if got := testutil.ToFloat64(p.activeRequests); got != 0 {
		t.Errorf("expected no active requests after completion, got %v", got)
	}
}

func TestMetricsMiddleware_Disabled(t *testing.T) {
	p := NewProvider(Config{MetricsEnabled: BoolPtr(false)})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	wantErr := errors.New("boom")
	err := p.MetricsMiddleware()(func(c echo.Context) error { return wantErr })(c)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected handler error to pass through, got %v", err)
	}
	if n := testutil.CollectAndCount(p.requestDuration); n != 0 {
		t.Errorf("expected no series when disabled, got %d", n)
	}
}

func TestPrometheusHandler_Exposition(t *testing.T) {
	p := NewProvider(Config{})
	p.RecordConsultation("OC Resupply", "PROCEED")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := p.PrometheusHandler()(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `pharmconsult_consultations_total{disposition="PROCEED",service="OC Resupply"} 1`) {
		t.Errorf("expected consultation counter in output, got:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("expected runtime collector output")
	}
}
