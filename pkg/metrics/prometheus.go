// Package metrics provides Prometheus metrics for the World Cup dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exposed by the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Startup pipeline
	fetchDuration     prometheus.Histogram
	fetchErrors       *prometheus.CounterVec
	datasetFinals     prometheus.Gauge
	datasetCountries  prometheus.Gauge
	droppedRows       *prometheus.CounterVec
	legacyRewrites    prometheus.Counter
	datasetLoadedUnix prometheus.Gauge

	// Query outcomes
	queries *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by package-level recorders

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // avoids default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wcdash",
		subsystem:        "dashboard",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_fetch_duration_milliseconds",
		Help:        "Time spent fetching and parsing the source document",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "startup_errors_total",
		Help:        "Startup failures by kind (fetch, not_found, schema, duplicate_year)",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.datasetFinals = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "finals",
		Help:        "Number of finals in the loaded dataset",
		ConstLabels: m.constLabels,
	})

	m.datasetCountries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "winning_countries",
		Help:        "Number of distinct countries with at least one win",
		ConstLabels: m.constLabels,
	})

	m.droppedRows = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dropped_rows_total",
		Help:        "Source rows dropped during normalization by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.legacyRewrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "legacy_name_rewrites_total",
		Help:        "Country names rewritten from a legacy spelling",
		ConstLabels: m.constLabels,
	})

	m.datasetLoadedUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_loaded_timestamp_seconds",
		Help:        "Unix time at which the dataset was built",
		ConstLabels: m.constLabels,
	})

	m.queries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queries_total",
		Help:        "Lookups served by kind (country, year) and status (empty, no_data, found)",
		ConstLabels: m.constLabels,
	}, []string{"kind", "status"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_errors_total",
		Help:        "HTTP responses with status >= 400 by endpoint and error type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})
}

// RecordFetchDuration observes the source fetch time in milliseconds.
func RecordFetchDuration(ms float64) {
	globalManager.fetchDuration.Observe(ms)
}

// RecordStartupError counts a fatal startup failure of the given kind.
func RecordStartupError(kind string) {
	globalManager.fetchErrors.WithLabelValues(kind).Inc()
}

// UpdateDataset publishes the size of the loaded dataset.
func UpdateDataset(finals, countries int, loadedUnix int64) {
	globalManager.datasetFinals.Set(float64(finals))
	globalManager.datasetCountries.Set(float64(countries))
	globalManager.datasetLoadedUnix.Set(float64(loadedUnix))
}

// RecordDroppedRow counts a row discarded during normalization.
func RecordDroppedRow(reason string) {
	globalManager.droppedRows.WithLabelValues(reason).Inc()
}

// RecordLegacyRewrite counts one legacy country name rewrite.
func RecordLegacyRewrite() {
	globalManager.legacyRewrites.Inc()
}

// RecordQuery counts a lookup outcome.
func RecordQuery(kind, status string) {
	globalManager.queries.WithLabelValues(kind, status).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordHTTPError records an error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
