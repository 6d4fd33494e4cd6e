// Package metrics provides Prometheus metrics for Daybreak: counters
// and gauges for check-ins, derived-value recomputation, rollovers, and
// pattern detection.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Check-Ins ──────────────────────────────────────────────────────────────

// CheckInsRecorded tracks recorded check-ins by kind.
var CheckInsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "daybreak",
	Name:      "checkins_recorded_total",
	Help:      "Total check-ins recorded.",
}, []string{"kind"})

// CheckInsRejected tracks check-ins rejected at the ingestion boundary.
var CheckInsRejected = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "daybreak",
	Name:      "checkins_rejected_total",
	Help:      "Total check-ins rejected as malformed.",
})

// ─── Progress Engine ────────────────────────────────────────────────────────

// SummariesComputed tracks derived-summary recomputations.
var SummariesComputed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "daybreak",
	Name:      "summaries_computed_total",
	Help:      "Total progress summary recomputations.",
})

// SummaryLatency tracks summary computation duration in seconds.
var SummaryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "daybreak",
	Name:      "summary_latency_seconds",
	Help:      "Progress summary computation duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
})

// PatternsFlagged tracks surfaced pattern warnings by metric type.
var PatternsFlagged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "daybreak",
	Name:      "patterns_flagged_total",
	Help:      "Total concerning patterns surfaced.",
}, []string{"metric"})

// ─── Rollover ───────────────────────────────────────────────────────────────

// RolloversFired tracks local-midnight rollover callbacks.
var RolloversFired = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "daybreak",
	Name:      "rollovers_fired_total",
	Help:      "Total local-midnight rollover callbacks fired.",
})

// SessionsActive tracks attached rollover sessions.
var SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "daybreak",
	Name:      "rollover_sessions_active",
	Help:      "Number of attached rollover sessions.",
})
