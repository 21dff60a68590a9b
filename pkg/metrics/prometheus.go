// Package metrics provides Prometheus metrics for the activities service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the activities service.
type Manager struct {
	namespace        string
	subsystem        string
	metricPrefix     string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Roster Metrics - What really matters for a signup service
	signupsTotal             prometheus.Counter
	unregistrationsTotal     prometheus.Counter
	signupConflictsTotal     prometheus.Counter
	unregisterConflictsTotal prometheus.Counter
	activityLookupMisses     prometheus.Counter

	// Catalog Metrics - Current shape of the registry
	activitiesTotal   prometheus.Gauge
	participantsTotal prometheus.Gauge
	rosterSize        *prometheus.GaugeVec
	rosterUtilization *prometheus.GaugeVec

	// Registry Metrics - In-memory store performance
	registryUpdateLatency prometheus.Histogram
	registryQueryLatency  prometheus.Histogram

	// Audit Trail Metrics - Roster change feed health
	auditRecordedTotal    prometheus.Counter
	auditDroppedTotal     prometheus.Counter
	auditTrailSize        prometheus.Gauge
	auditTrailCapacity    prometheus.Gauge
	auditTrailUtilization prometheus.Gauge
	auditHistorySize      prometheus.Gauge
	auditRecordLatency    prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics - Detailed error tracking
	errorsByComponent *prometheus.CounterVec
	errorsByType      *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec
	errorLatency      *prometheus.HistogramVec

	// System Performance Metrics
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
		namespace:        "mergington",
		subsystem:        "activities",
		metricPrefix:     "",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// metricName applies the optional prefix to a metric name.
func (m *Manager) metricName(name string) string {
	if m.metricPrefix == "" {
		return name
	}

	return m.metricPrefix + "_" + name
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.signupsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("signups_total"),
		Help:      "Total number of successful activity signups",
	})

	m.unregistrationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("unregistrations_total"),
		Help:      "Total number of successful activity unregistrations",
	})

	m.signupConflictsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("signup_conflicts_total"),
		Help:      "Total number of signups rejected because the student was already on the roster",
	})

	m.unregisterConflictsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("unregister_conflicts_total"),
		Help:      "Total number of unregistrations rejected because the student was not on the roster",
	})

	m.activityLookupMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("activity_lookup_misses_total"),
		Help:      "Total number of requests that named an unknown activity",
	})

	m.activitiesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("activities_total"),
		Help:      "Number of activities in the catalog",
	})

	m.participantsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("participants_total"),
		Help:      "Number of roster entries across all activities",
	})

	m.rosterSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("roster_size"),
		Help:      "Current roster size per activity",
	}, []string{"activity"})

	m.rosterUtilization = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("roster_utilization"),
		Help:      "Roster size divided by max participants per activity",
	}, []string{"activity"})

	m.registryUpdateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("registry_update_latency_milliseconds"),
		Help:      "Histogram of registry mutation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.registryQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("registry_query_latency_milliseconds"),
		Help:      "Histogram of registry read latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.auditRecordedTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("audit_changes_recorded_total"),
		Help:      "Total number of roster changes accepted by the audit trail",
	})

	m.auditDroppedTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("audit_changes_dropped_total"),
		Help:      "Total number of roster changes dropped because the audit trail was full or closed",
	})

	m.auditTrailSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("audit_trail_size"),
		Help:      "Current number of roster changes waiting in the audit trail",
	})

	m.auditTrailCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("audit_trail_capacity"),
		Help:      "Configured capacity of the audit trail",
	})

	m.auditTrailUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("audit_trail_utilization"),
		Help:      "Audit trail size divided by its capacity",
	})

	m.auditHistorySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("audit_history_size"),
		Help:      "Number of roster changes retained in the audit history ring",
	})

	m.auditRecordLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("audit_record_latency_milliseconds"),
		Help:      "Histogram of audit trail record latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("http_requests_total"),
		Help:      "Total number of HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("http_request_duration_milliseconds"),
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("errors_by_component_total"),
		Help:      "Total errors by component and error type",
	}, []string{"component", "error_type"})

	m.errorsByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("errors_by_type_total"),
		Help:      "Total errors by error type and severity",
	}, []string{"error_type", "severity"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("errors_by_endpoint_total"),
		Help:      "Total errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("error_latency_milliseconds"),
		Help:      "Histogram of latency for requests that ended in an error",
		Buckets:   m.histogramBuckets,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("system_memory_usage_bytes"),
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("system_goroutine_count"),
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      m.metricName("system_gc_pause_milliseconds"),
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers delegating to the global manager.

// RecordSignup increments the successful signup counter.
func RecordSignup() {
	globalManager.signupsTotal.Inc()
}

// RecordUnregistration increments the successful unregistration counter.
func RecordUnregistration() {
	globalManager.unregistrationsTotal.Inc()
}

// RecordSignupConflict counts a duplicate-signup rejection.
func RecordSignupConflict() {
	globalManager.signupConflictsTotal.Inc()
}

// RecordUnregisterConflict counts an unregister-of-nonmember rejection.
func RecordUnregisterConflict() {
	globalManager.unregisterConflictsTotal.Inc()
}

// RecordActivityLookupMiss counts a request naming an unknown activity.
func RecordActivityLookupMiss() {
	globalManager.activityLookupMisses.Inc()
}

// UpdateActivityCount sets the catalog size gauge.
func UpdateActivityCount(count int) {
	globalManager.activitiesTotal.Set(float64(count))
}

// UpdateParticipantsTotal sets the total roster entries gauge.
func UpdateParticipantsTotal(count int) {
	globalManager.participantsTotal.Set(float64(count))
}

// UpdateRosterSize sets the roster size gauge for one activity.
func UpdateRosterSize(activity string, size int) {
	globalManager.rosterSize.WithLabelValues(activity).Set(float64(size))
}

// UpdateRosterUtilization sets the roster utilization gauge for one activity.
func UpdateRosterUtilization(activity string, utilization float64) {
	globalManager.rosterUtilization.WithLabelValues(activity).Set(utilization)
}

// RecordRegistryUpdateLatency observes a registry mutation latency.
func RecordRegistryUpdateLatency(latencyMs float64) {
	globalManager.registryUpdateLatency.Observe(latencyMs)
}

// RecordRegistryQueryLatency observes a registry read latency.
func RecordRegistryQueryLatency(latencyMs float64) {
	globalManager.registryQueryLatency.Observe(latencyMs)
}

// RecordAuditChangeRecorded counts a change accepted by the audit trail.
func RecordAuditChangeRecorded() {
	globalManager.auditRecordedTotal.Inc()
}

// RecordAuditChangeDropped counts a change the audit trail could not accept.
func RecordAuditChangeDropped() {
	globalManager.auditDroppedTotal.Inc()
}

// UpdateAuditTrailSize sets the audit trail backlog gauge.
func UpdateAuditTrailSize(size int) {
	globalManager.auditTrailSize.Set(float64(size))
}

// UpdateAuditTrailCapacity sets the audit trail capacity gauge.
func UpdateAuditTrailCapacity(capacity int) {
	globalManager.auditTrailCapacity.Set(float64(capacity))
}

// UpdateAuditTrailUtilization sets the audit trail utilization gauge.
func UpdateAuditTrailUtilization(utilization float64) {
	globalManager.auditTrailUtilization.Set(utilization)
}

// UpdateAuditHistorySize sets the audit history ring gauge.
func UpdateAuditHistorySize(size int) {
	globalManager.auditHistorySize.Set(float64(size))
}

// RecordAuditRecordLatency observes how long the trail took to accept a change.
func RecordAuditRecordLatency(latencyMs float64) {
	globalManager.auditRecordLatency.Observe(latencyMs)
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes the duration of one HTTP request.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent counts an error attributed to a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an error surfaced on an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency observes the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes an average GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry backing the global
// manager, for serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
