// Package metrics provides Prometheus metrics for the statusfolio service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Log simulator
	logTicks       prometheus.Counter
	logEvictions   prometheus.Counter
	logBufferSize  prometheus.Gauge
	logTickLatency prometheus.Histogram
	tickerRunning  prometheus.Gauge

	// Radar projector
	radarProjections prometheus.Counter
	radarErrors      prometheus.Counter
	radarAxes        prometheus.Histogram

	// Snapshot stream
	streamSubscribers prometheus.Gauge
	streamPublished   prometheus.Counter
	streamDropped     prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "statusfolio",
		subsystem:        "site",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.logTicks = auto.NewCounter(m.counterOpts(
		"log_ticks_total", "Total number of log entries generated by the simulator"))
	m.logEvictions = auto.NewCounter(m.counterOpts(
		"log_evictions_total", "Total number of log entries evicted from the rolling buffer"))
	m.logBufferSize = auto.NewGauge(m.gaugeOpts(
		"log_buffer_size", "Current number of entries in the rolling log buffer"))
	m.logTickLatency = auto.NewHistogram(m.histogramOpts(
		"log_tick_latency_milliseconds", "Time spent generating and publishing one log entry", m.histogramBuckets))
	m.tickerRunning = auto.NewGauge(m.gaugeOpts(
		"log_ticker_running", "1 while the log ticker is running"))

	m.radarProjections = auto.NewCounter(m.counterOpts(
		"radar_projections_total", "Total number of radar charts projected"))
	m.radarErrors = auto.NewCounter(m.counterOpts(
		"radar_errors_total", "Total number of rejected radar projections"))
	m.radarAxes = auto.NewHistogram(m.histogramOpts(
		"radar_axes", "Number of skills per projected radar chart", []float64{1, 3, 5, 8, 12, 16, 32}))

	m.streamSubscribers = auto.NewGauge(m.gaugeOpts(
		"stream_subscribers", "Current number of log stream subscribers"))
	m.streamPublished = auto.NewCounter(m.counterOpts(
		"stream_published_total", "Total number of snapshots published to the log stream"))
	m.streamDropped = auto.NewCounter(m.counterOpts(
		"stream_dropped_total", "Total number of snapshots dropped for slow subscribers"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordLogTick counts one generated entry and the entries it evicted.
func (m *Manager) RecordLogTick(evicted int, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.logTicks.Inc()
	if evicted > 0 {
		m.logEvictions.Add(float64(evicted))
	}
	m.logTickLatency.Observe(latencyMs)
}

// UpdateLogBufferSize sets the rolling buffer size.
func (m *Manager) UpdateLogBufferSize(size int) {
	if !m.enabled {
		return
	}
	m.logBufferSize.Set(float64(size))
}

// UpdateTickerRunning flips the ticker running gauge.
func (m *Manager) UpdateTickerRunning(running bool) {
	if !m.enabled {
		return
	}
	if running {
		m.tickerRunning.Set(1)
		return
	}
	m.tickerRunning.Set(0)
}

// RecordRadarProjection counts a successful projection of k axes.
func (m *Manager) RecordRadarProjection(k int) {
	if !m.enabled {
		return
	}
	m.radarProjections.Inc()
	m.radarAxes.Observe(float64(k))
}

// RecordRadarError counts a rejected projection.
func (m *Manager) RecordRadarError() {
	if !m.enabled {
		return
	}
	m.radarErrors.Inc()
}

// UpdateStreamSubscribers sets the subscriber gauge.
func (m *Manager) UpdateStreamSubscribers(count int) {
	if !m.enabled {
		return
	}
	m.streamSubscribers.Set(float64(count))
}

// RecordStreamPublish counts a published snapshot and the deliveries it dropped.
func (m *Manager) RecordStreamPublish(dropped int) {
	if !m.enabled {
		return
	}
	m.streamPublished.Inc()
	if dropped > 0 {
		m.streamDropped.Add(float64(dropped))
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if !m.enabled {
		return
	}
	m.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemGCPauseTime.Observe(pauseMs)
}

// Package-level helpers record on the global manager.

// RecordLogTick counts one generated entry and the entries it evicted.
func RecordLogTick(evicted int, latencyMs float64) { globalManager.RecordLogTick(evicted, latencyMs) }

// UpdateLogBufferSize sets the rolling buffer size.
func UpdateLogBufferSize(size int) { globalManager.UpdateLogBufferSize(size) }

// UpdateTickerRunning flips the ticker running gauge.
func UpdateTickerRunning(running bool) { globalManager.UpdateTickerRunning(running) }

// RecordRadarProjection counts a successful projection of k axes.
func RecordRadarProjection(k int) { globalManager.RecordRadarProjection(k) }

// RecordRadarError counts a rejected projection.
func RecordRadarError() { globalManager.RecordRadarError() }

// UpdateStreamSubscribers sets the subscriber gauge.
func UpdateStreamSubscribers(count int) { globalManager.UpdateStreamSubscribers(count) }

// RecordStreamPublish counts a published snapshot and the deliveries it dropped.
func RecordStreamPublish(dropped int) { globalManager.RecordStreamPublish(dropped) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
