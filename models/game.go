package models

import (
	"fmt"
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinal      GameStatus = "final"
	GameStatusCancelled  GameStatus = "cancelled"
)

// Side identifies which side of a spread outcome prevailed
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SidePush Side = "push"
)

// Game represents a single scheduled contest with its betting lines and,
// once resolved, its final outcome.
//
// The outcome fields (HomeScore, AwayScore, CoveredBy, WentOver, ResolvedAt)
// are all-or-nothing: a game is either fully unresolved (all nil) or fully
// resolved (all set in a single write). Partial states are never persisted.
type Game struct {
	ID         string    `json:"id" bson:"id"`
	ExternalID string    `json:"external_id" bson:"external_id"` // Provider key, may be absent or stale
	League     League    `json:"league" bson:"league"`
	Season     int       `json:"season" bson:"season"`
	Week       *int      `json:"week,omitempty" bson:"week,omitempty"` // nil for leagues without weeks
	Kickoff    time.Time `json:"kickoff" bson:"kickoff"`
	Home       string    `json:"home" bson:"home"` // Display name, e.g. "Kansas City Chiefs"
	Away       string    `json:"away" bson:"away"`
	HomeCode   string    `json:"home_code" bson:"home_code"` // Short code, e.g. "KC"
	AwayCode   string    `json:"away_code" bson:"away_code"`

	// Market data, set by the game catalog before kickoff. Never mutated here.
	HomeSpread    *float64 `json:"home_spread,omitempty" bson:"home_spread,omitempty"` // Negative = home favored
	OverUnderLine *float64 `json:"over_under_line,omitempty" bson:"over_under_line,omitempty"`

	Status GameStatus `json:"status" bson:"status"`
	Locked bool       `json:"locked" bson:"locked"`

	// Outcome fields, nil until resolved. WentOver nil with a configured line
	// means the total pushed; without a line it means no total market existed.
	HomeScore  *int       `json:"home_score,omitempty" bson:"home_score,omitempty"`
	AwayScore  *int       `json:"away_score,omitempty" bson:"away_score,omitempty"`
	CoveredBy  *Side      `json:"covered_by,omitempty" bson:"covered_by,omitempty"`
	WentOver   *bool      `json:"went_over,omitempty" bson:"went_over,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}

// IsFinal returns true if the game has been resolved
func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal
}

// IsResolvable returns true if the game is still awaiting an outcome
func (g *Game) IsResolvable() bool {
	return g.Status == GameStatusScheduled || g.Status == GameStatusInProgress
}

// HasSpread returns true if a point spread was configured for the game
func (g *Game) HasSpread() bool {
	return g.HomeSpread != nil
}

// HasOverUnder returns true if a total line was configured for the game
func (g *Game) HasOverUnder() bool {
	return g.OverUnderLine != nil
}

// Matchup returns a short display string like "DET @ KC"
func (g *Game) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayCode, g.HomeCode)
}

// GameOutcome carries the complete set of outcome fields written to a game
// in a single resolution update.
type GameOutcome struct {
	HomeScore  int
	AwayScore  int
	CoveredBy  *Side // nil when no spread was configured
	WentOver   *bool
	ResolvedAt time.Time
}

// Total returns the combined final score
func (o GameOutcome) Total() int {
	return o.HomeScore + o.AwayScore
}
