package services

import (
	"time"

	"pickem-engine-go/models"
)

// Outcome calculation is pure and league-agnostic. Every orchestrator goes
// through these functions so no league can grow divergent grading rules.

// CoverResult determines which side covered the spread. The margin uses the
// home team's handicap directly: margin = (home + spread) - away. Exact
// equality produces a push, so half-point spreads can never push while
// integer spreads can.
func CoverResult(homeScore, awayScore int, homeSpread float64) models.Side {
	margin := float64(homeScore) + homeSpread - float64(awayScore)
	switch {
	case margin > 0:
		return models.SideHome
	case margin < 0:
		return models.SideAway
	default:
		return models.SidePush
	}
}

// TotalResult determines whether the combined score went over the line.
// A push (total exactly on the line) returns nil, which is distinct from
// "no line configured" only because callers check the line's presence first.
func TotalResult(homeScore, awayScore int, line float64) *bool {
	total := float64(homeScore + awayScore)
	switch {
	case total > line:
		return boolPtr(true)
	case total < line:
		return boolPtr(false)
	default:
		return nil
	}
}

// ComputeOutcome assembles the complete outcome for a game from its final
// scores. Markets the game never had configured stay nil in the outcome.
func ComputeOutcome(game *models.Game, homeScore, awayScore int, now time.Time) models.GameOutcome {
	outcome := models.GameOutcome{
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		ResolvedAt: now,
	}

	if game.HasSpread() {
		covered := CoverResult(homeScore, awayScore, *game.HomeSpread)
		outcome.CoveredBy = &covered
	}

	if game.HasOverUnder() {
		outcome.WentOver = TotalResult(homeScore, awayScore, *game.OverUnderLine)
	}

	return outcome
}

func boolPtr(b bool) *bool {
	return &b
}
