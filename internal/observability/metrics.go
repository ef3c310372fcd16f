// Package observability provides the structured logger and the Prometheus
// metrics for the tracker engine and its HTTP surface.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains Prometheus metrics for goal recalculation, daily totals
// updates, HTTP requests and realtime clients. It satisfies tracker.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	recalculationsTotal   *prometheus.CounterVec
	recalculationDuration prometheus.Histogram
	totalsUpdatesTotal    *prometheus.CounterVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	realtimeClients prometheus.Gauge
}

// NewMetrics creates the metrics and registers them on registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.recalculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_goal_recalculations_total",
			Help: "Total number of goal cumulative recalculations",
		},
		[]string{"status"}, // status: ok, no_goal, error
	)

	m.recalculationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "tracker_goal_recalculation_duration_seconds",
			Help: "Time taken to recalculate a goal's cumulative figures",
			// 1ms to ~1s
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
	)

	m.totalsUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_daily_totals_updates_total",
			Help: "Total number of daily entry totals updates",
		},
		[]string{"status"},
	)

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.realtimeClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_realtime_clients",
			Help: "Number of connected websocket clients",
		},
	)
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.recalculationsTotal.Describe(ch)
	m.recalculationDuration.Describe(ch)
	m.totalsUpdatesTotal.Describe(ch)
	m.httpRequestsTotal.Describe(ch)
	m.httpRequestDuration.Describe(ch)
	m.realtimeClients.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.recalculationsTotal.Collect(ch)
	m.recalculationDuration.Collect(ch)
	m.totalsUpdatesTotal.Collect(ch)
	m.httpRequestsTotal.Collect(ch)
	m.httpRequestDuration.Collect(ch)
	m.realtimeClients.Collect(ch)
}

// RecalculationDone records one goal recalculation.
func (m *Metrics) RecalculationDone(status string, elapsed time.Duration) {
	m.recalculationsTotal.WithLabelValues(status).Inc()
	m.recalculationDuration.Observe(elapsed.Seconds())
}

// TotalsUpdated records one daily totals update.
func (m *Metrics) TotalsUpdated(status string) {
	m.totalsUpdatesTotal.WithLabelValues(status).Inc()
}

// ObserveRequest records a finished HTTP request. route is the matched
// pattern, not the raw path, to keep cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ClientConnected increments the realtime client gauge.
func (m *Metrics) ClientConnected() { m.realtimeClients.Inc() }

// ClientDisconnected decrements the realtime client gauge.
func (m *Metrics) ClientDisconnected() { m.realtimeClients.Dec() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
