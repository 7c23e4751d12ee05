// Package metrics provides Prometheus metrics for LifeForge.
// Counters and histograms for the API surface, auth, and the coach.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests tracks API requests by route and status class.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lifeforge",
	Name:      "http_requests_total",
	Help:      "Total HTTP requests.",
}, []string{"route", "status"})

// ─── Auth ───────────────────────────────────────────────────────────────────

// Logins tracks login attempts by outcome.
var Logins = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lifeforge",
	Name:      "logins_total",
	Help:      "Total login attempts.",
}, []string{"outcome"})

// SessionsPurged tracks expired sessions removed by the health loop.
var SessionsPurged = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lifeforge",
	Name:      "sessions_purged_total",
	Help:      "Total expired sessions purged.",
})

// ─── Journal ────────────────────────────────────────────────────────────────

// LogUpserts tracks daily-log writes.
var LogUpserts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lifeforge",
	Name:      "daily_log_upserts_total",
	Help:      "Total daily log upserts.",
})

// ─── Coach ──────────────────────────────────────────────────────────────────

// CoachRequests tracks coach chat calls by mode.
var CoachRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lifeforge",
	Name:      "coach_requests_total",
	Help:      "Total coach chat requests.",
}, []string{"mode"})

// CoachLatency tracks coach backend round-trip duration in seconds.
var CoachLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "lifeforge",
	Name:      "coach_latency_seconds",
	Help:      "Coach backend round-trip duration in seconds.",
	Buckets:   prometheus.DefBuckets,
})
