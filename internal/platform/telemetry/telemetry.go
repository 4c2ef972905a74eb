// Package telemetry exposes Prometheus metrics for the HTTP server and for
// consultation outcomes. Labels never carry patient data.
package telemetry

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds telemetry configuration.
type Config struct {
	Namespace      string
	MetricsEnabled *bool // nil = use default (true)
}

func (c *Config) metricsOn() bool {
	if c.MetricsEnabled == nil {
		return true
	}
	return *c.MetricsEnabled
}

func (c *Config) applyDefaults() {
	if c.Namespace == "" {
		c.Namespace = "pharmconsult"
	}
}

// BoolPtr is a helper that returns a pointer to a bool value.
func BoolPtr(b bool) *bool {
	return &b
}

// Provider owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Provider struct {
	cfg      Config
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
	consultations   *prometheus.CounterVec
	eligibility     *prometheus.CounterVec
	auditFailures   prometheus.Counter
}

// NewProvider creates the provider and registers every collector.
func NewProvider(cfg Config) *Provider {
	cfg.applyDefaults()
	ns := cfg.Namespace

	p := &Provider{
		cfg:      cfg,
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status_code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "http_active_requests",
			Help:      "Number of HTTP requests currently being served",
		}),
		consultations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "consultations_total",
			Help:      "Completed consultations by service and disposition",
		}, []string{"service", "disposition"}),
		eligibility: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "eligibility_checks_total",
			Help:      "Eligibility flag outcomes by flag and status",
		}, []string{"flag", "status"}),
		auditFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "audit_write_failures_total",
			Help:      "Audit trail rows that could not be written",
		}),
	}

	p.registry.MustRegister(
		p.requestDuration,
		p.activeRequests,
		p.consultations,
		p.eligibility,
		p.auditFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Registry returns the provider's registry.
func (p *Provider) Registry() *prometheus.Registry {
	return p.registry
}

// RecordEligibility counts one flag outcome, e.g. ("uti", "conservative").
func (p *Provider) RecordEligibility(flag, status string) {
	p.eligibility.WithLabelValues(flag, status).Inc()
}

// RecordConsultation counts one completed consultation.
func (p *Provider) RecordConsultation(service, disposition string) {
	p.consultations.WithLabelValues(service, disposition).Inc()
}

// RecordAuditFailure counts an audit row that was dropped.
func (p *Provider) RecordAuditFailure() {
	p.auditFailures.Inc()
}

// MetricsMiddleware returns an Echo middleware that records HTTP server metrics.
func (p *Provider) MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !p.cfg.metricsOn() {
				return next(c)
			}

			p.activeRequests.Inc()
			defer p.activeRequests.Dec()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok && !c.Response().Committed {
				status = he.Code
			}
			// Route pattern, not the raw path, to bound label cardinality.
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			p.requestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// PrometheusHandler serves the registry in Prometheus text exposition format.
func (p *Provider) PrometheusHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
}
