package game

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hitback_sessions_created_total", Help: "Game sessions created"},
	)
	roundsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hitback_rounds_started_total", Help: "Rounds started"},
	)
	betsPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hitback_bets_placed_total", Help: "Tokens wagered"},
	)
	audioResolveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hitback_audio_resolve_failures_total", Help: "Audio preview lookups that failed or timed out"},
	)
	sessionsSwept = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hitback_sessions_swept_total", Help: "Idle sessions removed by cleanup"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(sessionsCreated, roundsStarted, betsPlaced, audioResolveFailures, sessionsSwept)
}
