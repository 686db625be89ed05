package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentsProcessed counts payments that reached a terminal status.
	PaymentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_processed_total",
		Help: "Payments that reached a terminal status.",
	}, []string{"status"})

	// FxAttempts counts individual FX quote attempts by outcome.
	FxAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fx_quote_attempts_total",
		Help: "FX quote attempts by outcome.",
	}, []string{"outcome"})

	// FxAttemptDuration observes wall-clock duration of each FX attempt.
	FxAttemptDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fx_quote_attempt_duration_seconds",
		Help:    "Wall-clock duration of individual FX quote attempts.",
		Buckets: prometheus.DefBuckets,
	})
)
