// Package defaultrolemetrics records the operational metrics of the
// defaultrole module.
package defaultrolemetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultRoleMetrics is implemented by the prometheus recorder below and by
// NoOpMetrics for tests.
type DefaultRoleMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)

	// RecordAssignmentOutcome tracks setrole results. Outcome is one of
	// "persisted_and_granted", "persisted_grant_failed", "store_failed".
	RecordAssignmentOutcome(ctx context.Context, outcome string)

	// RecordJoinReconciliation tracks join handling. Outcome is one of
	// "granted", "no_mapping", "lookup_failed", "grant_failed".
	RecordJoinReconciliation(ctx context.Context, outcome string)
}

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDurations *prometheus.HistogramVec
	assignmentOutcomes *prometheus.CounterVec
	joinOutcomes       *prometheus.CounterVec
}

// NewPrometheusMetrics registers the module's collectors on the given
// registry and returns the recorder.
func NewPrometheusMetrics(reg prometheus.Registerer) DefaultRoleMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "defaultrole_operation_attempts_total",
			Help: "Service operations started.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "defaultrole_operation_failures_total",
			Help: "Service operations that returned an error.",
		}, []string{"operation"}),
		operationDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "defaultrole_operation_duration_seconds",
			Help:    "Service operation duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		assignmentOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "defaultrole_assignment_outcomes_total",
			Help: "setrole outcomes, split so a persisted mapping with a failed immediate grant stays visible.",
		}, []string{"outcome"}),
		joinOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "defaultrole_join_reconciliations_total",
			Help: "Member-join reconciliation outcomes.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		m.operationAttempts,
		m.operationFailures,
		m.operationDurations,
		m.assignmentOutcomes,
		m.joinOutcomes,
	)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operationFailures.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation string, d time.Duration) {
	m.operationDurations.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordAssignmentOutcome(_ context.Context, outcome string) {
	m.assignmentOutcomes.WithLabelValues(outcome).Inc()
}

func (m *prometheusMetrics) RecordJoinReconciliation(_ context.Context, outcome string) {
	m.joinOutcomes.WithLabelValues(outcome).Inc()
}

// NoOpMetrics satisfies DefaultRoleMetrics without recording anything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordAssignmentOutcome(context.Context, string)               {}
func (NoOpMetrics) RecordJoinReconciliation(context.Context, string)              {}
