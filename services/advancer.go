package services

import (
	"context"
	"fmt"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"
)

// SeasonAdvancer moves a league's current-week pointer forward once every
// game in the active week has reached a terminal status. The pointer lives in
// a single store row and only moves through a conditional update, so
// overlapping runs cannot double-advance it.
type SeasonAdvancer struct {
	gameStore   GameStore
	seasonStore SeasonStore
	logger      *logging.Logger
}

// NewSeasonAdvancer creates a new season advancer
func NewSeasonAdvancer(gameStore GameStore, seasonStore SeasonStore) *SeasonAdvancer {
	return &SeasonAdvancer{
		gameStore:   gameStore,
		seasonStore: seasonStore,
		logger:      logging.WithPrefix("advancer"),
	}
}

// MaybeAdvance advances the week pointer by one if the active week is fully
// settled. Leagues without a week concept are skipped entirely. Reaching the
// final week is a no-op, not an error.
func (a *SeasonAdvancer) MaybeAdvance(ctx context.Context, league models.League, season int) (bool, error) {
	if !league.HasWeeks() {
		return false, nil
	}

	state, err := a.seasonStore.Get(ctx, league, season)
	if err != nil {
		return false, fmt.Errorf("failed to load season state for %s %d: %w", league, season, err)
	}
	if state == nil {
		a.logger.Warnf("No season state for %s %d, skipping advancement", league, season)
		return false, nil
	}

	if state.AtFinalWeek() {
		a.logger.Debugf("%s %d already at final week %d", league, season, state.CurrentWeek)
		return false, nil
	}

	pending, err := a.gameStore.CountPendingInWeek(ctx, league, season, state.CurrentWeek)
	if err != nil {
		return false, fmt.Errorf("failed to count pending games for %s week %d: %w", league, state.CurrentWeek, err)
	}
	if pending > 0 {
		a.logger.Debugf("%s %d week %d has %d pending games, not advancing", league, season, state.CurrentWeek, pending)
		return false, nil
	}

	advanced, err := a.seasonStore.AdvanceWeek(ctx, league, season, state.CurrentWeek)
	if err != nil {
		return false, fmt.Errorf("failed to advance week for %s %d: %w", league, season, err)
	}
	if !advanced {
		// A concurrent run advanced the pointer first
		a.logger.Debugf("%s %d week pointer already moved past %d", league, season, state.CurrentWeek)
		return false, nil
	}

	a.logger.Infof("%s %d advanced to week %d", league, season, state.CurrentWeek+1)
	return true, nil
}
