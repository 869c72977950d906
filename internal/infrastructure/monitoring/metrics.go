package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Boundary metrics
	CapturesTotal *prometheus.CounterVec
	ResetsTotal   *prometheus.CounterVec
	ReloadsTotal  *prometheus.CounterVec

	// Render metrics
	RendersTotal   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec

	// Application metrics
	AppsActive prometheus.Gauge
	AppsTotal  prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renderguard_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "renderguard_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		CapturesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renderguard_boundary_captures_total",
				Help: "Total number of render faults captured by boundaries",
			},
			[]string{"app"},
		),
		ResetsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renderguard_boundary_resets_total",
				Help: "Total number of manual boundary resets",
			},
			[]string{"app"},
		),
		ReloadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renderguard_boundary_reloads_total",
				Help: "Total number of host reloads requested from boundaries",
			},
			[]string{"app"},
		),

		RendersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "renderguard_renders_total",
				Help: "Total number of render passes by outcome",
			},
			[]string{"app", "outcome"},
		),
		RenderDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "renderguard_render_duration_seconds",
				Help:    "Render pass duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"app"},
		),

		AppsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "renderguard_apps_active",
				Help: "Number of currently running apps",
			},
		),
		AppsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "renderguard_apps_spawned_total",
				Help: "Total number of apps spawned",
			},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "renderguard_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "renderguard_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordCapture records a boundary fault capture
func (m *Metrics) RecordCapture(app string) {
	m.CapturesTotal.WithLabelValues(app).Inc()
}

// RecordReset records a manual boundary reset
func (m *Metrics) RecordReset(app string) {
	m.ResetsTotal.WithLabelValues(app).Inc()
}

// RecordReload records a host reload request
func (m *Metrics) RecordReload(app string) {
	m.ReloadsTotal.WithLabelValues(app).Inc()
}

// RecordRender records one render pass
func (m *Metrics) RecordRender(app, outcome string, duration time.Duration) {
	m.RendersTotal.WithLabelValues(app, outcome).Inc()
	m.RenderDuration.WithLabelValues(app).Observe(duration.Seconds())
}

// SetAppsActive updates the active apps gauge
func (m *Metrics) SetAppsActive(n int) {
	m.AppsActive.Set(float64(n))
}

// IncAppsTotal increments the spawned apps counter
func (m *Metrics) IncAppsTotal() {
	m.AppsTotal.Inc()
}

// IncWSConnections increments the WebSocket connections gauge
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements the WebSocket connections gauge
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// UpdateUptime refreshes the uptime gauge
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}
