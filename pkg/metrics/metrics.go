package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Fetch cycle metrics
	FetchCyclesTotal   *prometheus.CounterVec
	FetchCycleDuration prometheus.Histogram
	FetchCyclesSkipped prometheus.Counter

	// Row normalization metrics
	RowsProcessed prometheus.Counter
	RowsDropped   prometheus.Counter
	FieldFallback *prometheus.CounterVec

	// Snapshot metrics
	SnapshotRecords   prometheus.Gauge
	SnapshotTimestamp prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		FetchCyclesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feed_fetch_cycles_total",
				Help: "Total number of feed fetch cycles",
			},
			[]string{"status"},
		),

		FetchCycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "feed_fetch_cycle_duration_seconds",
				Help:    "Feed fetch cycle duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),

		FetchCyclesSkipped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "feed_fetch_cycles_skipped_total",
				Help: "Ticks skipped because a fetch was still in flight",
			},
		),

		RowsProcessed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "feed_rows_processed_total",
				Help: "Total number of rows normalized into records",
			},
		),

		RowsDropped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "feed_rows_dropped_total",
				Help: "Rows dropped for having no usable content",
			},
		),

		FieldFallback: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feed_field_fallbacks_total",
				Help: "Malformed fields degraded to a safe default",
			},
			[]string{"field"},
		),

		SnapshotRecords: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "snapshot_records",
				Help: "Number of records in the published snapshot",
			},
		),

		SnapshotTimestamp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "snapshot_last_updated_timestamp_seconds",
				Help: "Unix time of the last successful snapshot publish",
			},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Fetch cycle outcome
func (m *Metrics) RecordFetchCycle(status string, duration time.Duration) {
	m.FetchCyclesTotal.WithLabelValues(status).Inc()
	m.FetchCycleDuration.Observe(duration.Seconds())
}

// Skipped tick due to an in-flight fetch
func (m *Metrics) RecordFetchSkipped() {
	m.FetchCyclesSkipped.Inc()
}

// Row normalization outcomes
func (m *Metrics) RecordRowsProcessed(count int) {
	m.RowsProcessed.Add(float64(count))
}

func (m *Metrics) RecordRowDropped() {
	m.RowsDropped.Inc()
}

func (m *Metrics) RecordFieldFallback(field string) {
	m.FieldFallback.WithLabelValues(field).Inc()
}

// Snapshot publish
func (m *Metrics) RecordSnapshot(records int, fetchedAt time.Time) {
	m.SnapshotRecords.Set(float64(records))
	m.SnapshotTimestamp.Set(float64(fetchedAt.Unix()))
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
