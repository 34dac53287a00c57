package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the API server. Each instance
// owns its registry so several servers can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Failures        *prometheus.CounterVec
	SeriesPoints    prometheus.Counter
	ActiveStreams   prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "relativity_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relativity_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and method",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"route", "method"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "relativity_calculation_failures_total",
			Help: "Total number of failed calculations by error code",
		}, []string{"code"}),
		SeriesPoints: f.NewCounter(prometheus.CounterOpts{
			Name: "relativity_series_points_total",
			Help: "Total number of trajectory points computed",
		}),
		ActiveStreams: f.NewGauge(prometheus.GaugeOpts{
			Name: "relativity_series_streams_active",
			Help: "Number of open trajectory websocket streams",
		}),
	}
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// IncrementFailure counts a calculation error by its code
func (m *Metrics) IncrementFailure(code string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(code).Inc()
}

// AddSeriesPoints counts computed trajectory points
func (m *Metrics) AddSeriesPoints(n int) {
	if m == nil {
		return
	}
	m.SeriesPoints.Add(float64(n))
}

// StreamOpened marks a websocket stream as open and returns the func that
// closes it
func (m *Metrics) StreamOpened() func() {
	if m == nil {
		return func() {}
	}
	m.ActiveStreams.Inc()
	return m.ActiveStreams.Dec
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
