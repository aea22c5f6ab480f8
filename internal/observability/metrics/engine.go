// Package metrics provides evaluation-run metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Histogram bucket configuration constants.
const (
	// BucketStart1ms is the starting bucket for 1ms histograms (1ms to ~1s range).
	BucketStart1ms = 0.001
	// BucketFactor2 is the exponential growth factor for histogram buckets.
	BucketFactor2 = 2
	// BucketCount12 defines 12 exponential buckets.
	BucketCount12 = 12
)

// EngineMetrics contains Prometheus metrics for evaluation pipeline runs.
type EngineMetrics struct {
	registry *prometheus.Registry

	// Run metrics
	runsTotal          *prometheus.CounterVec
	runDurationSeconds *prometheus.HistogramVec

	// Footprint metrics
	footprintsBuiltTotal    prometheus.Counter
	footprintFallbacksTotal prometheus.Counter
	roomsSkippedTotal       prometheus.Counter

	// Assignment metrics
	furnishingsAssignedTotal   prometheus.Counter
	furnishingsUnassignedTotal prometheus.Counter

	// Check metrics
	checkResultsTotal *prometheus.CounterVec
}

// NewEngineMetrics creates and registers new evaluation pipeline metrics.
func NewEngineMetrics(registry *prometheus.Registry) (*EngineMetrics, error) {
	m := &EngineMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *EngineMetrics) initMetrics() {
	m.runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schoolcheck_runs_total",
			Help: "Total number of evaluation runs",
		},
		[]string{"status"}, // success, error
	)

	m.runDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schoolcheck_run_duration_seconds",
			Help:    "Time taken for one evaluation run",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount12),
		},
		[]string{"stage"}, // footprints, assignment, evaluation, total
	)

	m.footprintsBuiltTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schoolcheck_footprints_built_total",
			Help: "Total number of room footprints built",
		},
	)

	m.footprintFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schoolcheck_footprint_fallbacks_total",
			Help: "Total number of footprints that fell back to the convex hull",
		},
	)

	m.roomsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schoolcheck_rooms_skipped_total",
			Help: "Total number of spaces skipped for missing or degenerate geometry",
		},
	)

	m.furnishingsAssignedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schoolcheck_furnishings_assigned_total",
			Help: "Total number of furnishings assigned to a room",
		},
	)

	m.furnishingsUnassignedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schoolcheck_furnishings_unassigned_total",
			Help: "Total number of furnishings no room claimed",
		},
	)

	m.checkResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schoolcheck_check_results_total",
			Help: "Total number of rule check results by status",
		},
		[]string{"status"}, // OK, NOT_OK, NO_SOURCE, NOT_REQUIRED
	)
}

// Describe implements the Collector interface.
func (m *EngineMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.runsTotal.Describe(ch)
	m.runDurationSeconds.Describe(ch)
	m.footprintsBuiltTotal.Describe(ch)
	m.footprintFallbacksTotal.Describe(ch)
	m.roomsSkippedTotal.Describe(ch)
	m.furnishingsAssignedTotal.Describe(ch)
	m.furnishingsUnassignedTotal.Describe(ch)
	m.checkResultsTotal.Describe(ch)
}

// Collect implements the Collector interface.
func (m *EngineMetrics) Collect(ch chan<- prometheus.Metric) {
	m.runsTotal.Collect(ch)
	m.runDurationSeconds.Collect(ch)
	m.footprintsBuiltTotal.Collect(ch)
	m.footprintFallbacksTotal.Collect(ch)
	m.roomsSkippedTotal.Collect(ch)
	m.furnishingsAssignedTotal.Collect(ch)
	m.furnishingsUnassignedTotal.Collect(ch)
	m.checkResultsTotal.Collect(ch)
}

// RecordRun records a completed evaluation run with its outcome.
func (m *EngineMetrics) RecordRun(status string) {
	m.runsTotal.WithLabelValues(status).Inc()
}

// RecordStageDuration records the wall time of one pipeline stage.
func (m *EngineMetrics) RecordStageDuration(stage string, seconds float64) {
	m.runDurationSeconds.WithLabelValues(stage).Observe(seconds)
}

// RecordFootprintBuilt records one successfully built room footprint.
func (m *EngineMetrics) RecordFootprintBuilt() {
	m.footprintsBuiltTotal.Inc()
}

// RecordFootprintFallback records a footprint built through the hull fallback.
func (m *EngineMetrics) RecordFootprintFallback() {
	m.footprintFallbacksTotal.Inc()
}

// RecordRoomSkipped records a space skipped for missing geometry.
func (m *EngineMetrics) RecordRoomSkipped() {
	m.roomsSkippedTotal.Inc()
}

// RecordAssignments records the assignment split of one run.
func (m *EngineMetrics) RecordAssignments(assigned, unassigned int) {
	m.furnishingsAssignedTotal.Add(float64(assigned))
	m.furnishingsUnassignedTotal.Add(float64(unassigned))
}

// RecordCheckResult records one rule check outcome.
func (m *EngineMetrics) RecordCheckResult(status string) {
	m.checkResultsTotal.WithLabelValues(status).Inc()
}
