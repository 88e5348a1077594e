package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GamesResolved counts games transitioned to final, per league
	GamesResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickem_games_resolved_total",
		Help: "Number of games resolved to a final outcome",
	}, []string{"league"})

	// PicksGraded counts pick grading writes, per league
	PicksGraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickem_picks_graded_total",
		Help: "Number of picks graded against resolved games",
	}, []string{"league"})

	// GameErrors counts isolated per-game failures inside a run
	GameErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickem_game_errors_total",
		Help: "Number of per-game failures isolated during resolution runs",
	}, []string{"league"})

	// RunFailures counts run-level failures (config or feed)
	RunFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickem_resolution_run_failures_total",
		Help: "Number of resolution runs aborted by a feed or configuration failure",
	}, []string{"league"})

	// QuotaRemaining reports the score feed's last observed request quota
	QuotaRemaining = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pickem_score_feed_quota_remaining",
		Help: "Remaining request quota reported by the score feed provider",
	}, []string{"league"})
)
