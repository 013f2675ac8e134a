// Package metrics provides Prometheus metrics for the cellpulse report service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the cellpulse service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	batchBuckets     []float64
	registry         prometheus.Registerer

	// Report metrics
	reportsGenerated     *prometheus.CounterVec
	reportErrors         *prometheus.CounterVec
	reportLatency        *prometheus.HistogramVec
	recordsClassified    *prometheus.CounterVec
	notApplicableRecords *prometheus.CounterVec
	overlayExcluded      prometheus.Counter
	conflictsDetected    prometheus.Counter
	sentinelNotices      prometheus.Counter

	// Batch metrics
	batchSize     prometheus.Histogram
	batchInFlight prometheus.Gauge

	// Ingestion metrics
	ingestRows   *prometheus.CounterVec
	ingestErrors *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cellpulse",
		subsystem:        "reports",
		histogramBuckets: prometheus.DefBuckets,
		batchBuckets:     []float64{1, 2, 4, 8, 16, 32, 64, 128},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.reportsGenerated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generated_total",
		Help:      "Total number of report bundles generated by kind",
	}, []string{"kind"})

	m.reportErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total number of failed report requests by kind and reason",
	}, []string{"kind", "reason"})

	m.reportLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_duration_milliseconds",
		Help:      "Report assembly latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"kind"})

	m.recordsClassified = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_classified_total",
		Help:      "Total number of records classified by report kind",
	}, []string{"kind"})

	m.notApplicableRecords = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_not_applicable_total",
		Help:      "Total number of records with an undefined percentage",
	}, []string{"kind"})

	m.overlayExcluded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overlay_excluded_total",
		Help:      "Total number of entities left out of the strategic overlay",
	})

	m.conflictsDetected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "conflicts_total",
		Help:      "Total number of combined reports with a strategic conflict",
	})

	m.sentinelNotices = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sentinel_notices_total",
		Help:      "Total number of staff views where the sentinel ranked first",
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_size",
		Help:      "Number of requests per batch call",
		Buckets:   m.batchBuckets,
	})

	m.batchInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_in_flight",
		Help:      "Number of batch items currently being built",
	})

	m.ingestRows = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "rows_total",
		Help:      "Total number of spreadsheet rows ingested by sheet kind",
	}, []string{"sheet"})

	m.ingestErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "errors_total",
		Help:      "Total number of rejected spreadsheets by sheet kind",
	}, []string{"sheet"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Heap memory in use in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordReportGenerated increments the generated counter for kind.
func RecordReportGenerated(kind string) {
	globalManager.reportsGenerated.WithLabelValues(kind).Inc()
}

// RecordReportError increments the error counter for kind and reason.
func RecordReportError(kind, reason string) {
	globalManager.reportErrors.WithLabelValues(kind, reason).Inc()
}

// RecordReportLatency records report assembly latency in milliseconds.
func RecordReportLatency(kind string, latencyMs float64) {
	globalManager.reportLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordRecordsClassified adds n classified records for kind.
func RecordRecordsClassified(kind string, n int) {
	globalManager.recordsClassified.WithLabelValues(kind).Add(float64(n))
}

// RecordNotApplicable adds n records whose percentage is undefined.
func RecordNotApplicable(kind string, n int) {
	globalManager.notApplicableRecords.WithLabelValues(kind).Add(float64(n))
}

// RecordOverlayExcluded adds n entities excluded from the strategic overlay.
func RecordOverlayExcluded(n int) {
	globalManager.overlayExcluded.Add(float64(n))
}

// RecordConflict increments the strategic conflict counter.
func RecordConflict() {
	globalManager.conflictsDetected.Inc()
}

// RecordSentinelNotices adds n sentinel notices.
func RecordSentinelNotices(n int) {
	globalManager.sentinelNotices.Add(float64(n))
}

// RecordBatchSize observes the size of a batch call.
func RecordBatchSize(n int) {
	globalManager.batchSize.Observe(float64(n))
}

// AddBatchInFlight moves the in-flight batch gauge by delta.
func AddBatchInFlight(delta int) {
	globalManager.batchInFlight.Add(float64(delta))
}

// RecordIngestRows adds n ingested rows for a sheet kind.
func RecordIngestRows(sheet string, n int) {
	globalManager.ingestRows.WithLabelValues(sheet).Add(float64(n))
}

// RecordIngestError increments the rejected spreadsheet counter.
func RecordIngestError(sheet string) {
	globalManager.ingestErrors.WithLabelValues(sheet).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
