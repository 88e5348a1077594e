package services

import (
	"context"
	"fmt"
	"time"

	"pickem-engine-go/logging"
	"pickem-engine-go/metrics"
	"pickem-engine-go/models"
)

// ResolutionService is the per-league batch driver. One invocation pulls the
// league's unresolved games and the provider's score feed, resolves every
// matchable game, grades its picks, and finally asks the advancer whether the
// active week can move forward.
//
// Feed and configuration failures abort the run; failures on an individual
// game are isolated so the rest of the batch still settles. All writes go
// through conditional updates, which makes overlapping runs safe: the losing
// writer observes the conflict and skips.
type ResolutionService struct {
	gameStore    GameStore
	feed         ScoreFeed
	matcher      *ScoreMatcher
	grader       *PickGrader
	advancer     *SeasonAdvancer
	events       *EventPublisher // nil disables event publishing
	season       int
	lookbackDays int
	logger       *logging.Logger
}

// NewResolutionService creates a new resolution orchestrator
func NewResolutionService(
	gameStore GameStore,
	feed ScoreFeed,
	matcher *ScoreMatcher,
	grader *PickGrader,
	advancer *SeasonAdvancer,
	events *EventPublisher,
	season int,
	lookbackDays int,
) *ResolutionService {
	return &ResolutionService{
		gameStore:    gameStore,
		feed:         feed,
		matcher:      matcher,
		grader:       grader,
		advancer:     advancer,
		events:       events,
		season:       season,
		lookbackDays: lookbackDays,
		logger:       logging.WithPrefix("resolver"),
	}
}

// ResolvePendingGames runs one resolution batch for the league and returns
// the run summary. Running it twice in immediate succession is idempotent:
// the second run finds nothing left to resolve.
func (s *ResolutionService) ResolvePendingGames(ctx context.Context, league models.League) (*models.ResolutionSummary, error) {
	start := time.Now()
	summary := &models.ResolutionSummary{League: league}

	windowStart := start.AddDate(0, 0, -s.lookbackDays)
	games, err := s.gameStore.FindUnresolved(ctx, league, windowStart, start)
	if err != nil {
		metrics.RunFailures.WithLabelValues(string(league)).Inc()
		return nil, fmt.Errorf("failed to load unresolved games for %s: %w", league, err)
	}

	if len(games) == 0 {
		s.logger.Debugf("%s: no unresolved games in window", league)
		return summary, nil
	}

	// The feed fetch is the run's only blocking I/O. Its failure aborts the
	// whole run; per-game writes already completed in an earlier loop stand.
	records, quota, err := s.feed.FetchScores(ctx, league, s.lookbackDays)
	if err != nil {
		metrics.RunFailures.WithLabelValues(string(league)).Inc()
		return nil, fmt.Errorf("score feed fetch failed for %s: %w", league, err)
	}
	summary.QuotaRemaining = quota
	if quota != nil {
		metrics.QuotaRemaining.WithLabelValues(string(league)).Set(float64(*quota))
	}

	s.logger.Infof("%s: processing %d unresolved games against %d score records", league, len(games), len(records))

	for _, game := range games {
		resolved, picksGraded, err := s.resolveGame(ctx, game, records)
		if resolved {
			summary.GamesResolved++
			summary.PicksGraded += picksGraded
			metrics.GamesResolved.WithLabelValues(string(league)).Inc()
			metrics.PicksGraded.WithLabelValues(string(league)).Add(float64(picksGraded))
		} else if err == nil {
			summary.UnresolvedRemaining++
		}
		if err != nil {
			// Isolate the failure; the remaining games still get processed
			s.logger.Errorf("%s: failure on game %s (%s): %v", league, game.ID, game.Matchup(), err)
			summary.GameErrors++
			metrics.GameErrors.WithLabelValues(string(league)).Inc()
		}
	}

	if summary.GamesResolved > 0 {
		advanced, err := s.advancer.MaybeAdvance(ctx, league, s.season)
		if err != nil {
			s.logger.Errorf("%s: week advancement failed: %v", league, err)
		} else {
			summary.WeekAdvanced = advanced
		}
	}

	s.logger.Infof("%s: run complete in %v - %d resolved, %d picks graded, %d unresolved, %d errors, week advanced: %t",
		league, time.Since(start), summary.GamesResolved, summary.PicksGraded,
		summary.UnresolvedRemaining, summary.GameErrors, summary.WeekAdvanced)

	return summary, nil
}

// resolveGame handles one game: match, calculate, conditional outcome write,
// then grading. Returns resolved=false when the game is simply not yet
// resolvable (no completed record, lost write race).
func (s *ResolutionService) resolveGame(ctx context.Context, game *models.Game, records []models.ExternalScoreRecord) (bool, int, error) {
	matched, ok := s.matcher.Match(game, records)
	if !ok {
		return false, 0, nil
	}

	outcome := ComputeOutcome(game, matched.HomeScore, matched.AwayScore, time.Now())

	won, err := s.gameStore.ResolveGame(ctx, game.ID, outcome)
	if err != nil {
		return false, 0, err
	}
	if !won {
		// A concurrent run resolved this game first; it owns the grading too
		s.logger.Debugf("Game %s already resolved by a concurrent run, skipping grading", game.ID)
		return false, 0, nil
	}

	s.logger.Infof("Resolved game %s (%s) final %d-%d", game.ID, game.Matchup(), matched.AwayScore, matched.HomeScore)

	// Grade against the outcome just written
	game.Status = models.GameStatusFinal
	game.HomeScore = &outcome.HomeScore
	game.AwayScore = &outcome.AwayScore
	game.CoveredBy = outcome.CoveredBy
	game.WentOver = outcome.WentOver
	game.ResolvedAt = &outcome.ResolvedAt

	picksGraded, err := s.grader.GradeGame(ctx, game)
	if err != nil {
		// The game outcome stands; ungraded picks are retried next run
		return true, picksGraded, fmt.Errorf("grading failed: %w", err)
	}

	s.events.PublishGameResolved(ctx, game, outcome)

	return true, picksGraded, nil
}
