// Package metrics exposes Prometheus collectors for routing decisions and
// backend health.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeGated      = "gated"
	OutcomeKnowledge  = "knowledge"
	OutcomeGenerative = "generative"
	OutcomeFailure    = "backend_failure"
	OutcomeCommand    = "command"
)

var (
	// routedEventsTotal counts inbound events by how they were answered.
	routedEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heroguide_routed_events_total",
			Help: "Total number of inbound events by routing outcome",
		},
		[]string{"outcome"},
	)

	// backendErrorsTotal counts generative and media backend failures.
	backendErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heroguide_backend_errors_total",
			Help: "Total number of backend failures by operation and reason",
		},
		[]string{"op", "reason"},
	)

	backendDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "heroguide_backend_duration_seconds",
			Help:    "Duration of backend calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	trackedSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "heroguide_tracked_sessions",
			Help: "Number of user sessions currently held in memory",
		},
	)

	knowledgeEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "heroguide_knowledge_entries",
			Help: "Number of heroes in the knowledge base",
		},
	)
)

func init() {
	prometheus.MustRegister(
		routedEventsTotal,
		backendErrorsTotal,
		backendDurationSeconds,
		trackedSessions,
		knowledgeEntries,
	)
}

func ObserveRoute(outcome string) {
	routedEventsTotal.WithLabelValues(outcome).Inc()
}

func ObserveBackendError(op, reason string) {
	backendErrorsTotal.WithLabelValues(op, reason).Inc()
}

func ObserveBackendDuration(op string, d time.Duration) {
	backendDurationSeconds.WithLabelValues(op).Observe(d.Seconds())
}

func SetSessions(n int) {
	trackedSessions.Set(float64(n))
}

func SetKnowledgeEntries(n int) {
	knowledgeEntries.Set(float64(n))
}
