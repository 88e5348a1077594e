package services

import (
	"context"
	"time"

	"pickem-engine-go/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameStore defines the game persistence operations the resolver needs
type GameStore interface {
	FindUnresolved(ctx context.Context, league models.League, windowStart, now time.Time) ([]*models.Game, error)
	CountPendingInWeek(ctx context.Context, league models.League, season, week int) (int64, error)
	ResolveGame(ctx context.Context, gameID string, outcome models.GameOutcome) (bool, error)
}

// PickStore defines the pick persistence operations the grader needs
type PickStore interface {
	FindUngradedByGame(ctx context.Context, gameID string) ([]*models.Pick, error)
	GradePick(ctx context.Context, pickID primitive.ObjectID, grade models.PickGrade) (bool, error)
}

// SeasonStore defines the season-state operations the advancer needs
type SeasonStore interface {
	Get(ctx context.Context, league models.League, season int) (*models.SeasonState, error)
	AdvanceWeek(ctx context.Context, league models.League, season, expectedWeek int) (bool, error)
}

// ScoreFeed fetches final score records for a league from the external
// provider. quotaRemaining is nil when the provider does not report one.
type ScoreFeed interface {
	FetchScores(ctx context.Context, league models.League, lookbackDays int) (records []models.ExternalScoreRecord, quotaRemaining *int, err error)
}
