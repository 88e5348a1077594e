package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TotalSide identifies the side of an over/under pick
type TotalSide string

const (
	TotalOver  TotalSide = "over"
	TotalUnder TotalSide = "under"
)

// Pick represents one user's prediction on one game. The spread and total
// markets are tracked independently: either side may be nil if the user
// skipped that market.
//
// Correct and OverUnderCorrect are tri-state: nil before grading, nil after
// grading when the market pushed, and a definitive boolean otherwise.
// GradedAt distinguishes the two nil cases: a pick with GradedAt set and
// Correct nil was a push, not an ungraded pick.
type Pick struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GameID        string             `bson:"game_id" json:"game_id"`
	UserID        int                `bson:"user_id" json:"user_id"`
	TeamPicked    *Side              `bson:"team_picked,omitempty" json:"team_picked,omitempty"` // home or away
	OverUnderPick *TotalSide         `bson:"over_under_pick,omitempty" json:"over_under_pick,omitempty"`

	Correct          *bool      `bson:"correct,omitempty" json:"correct,omitempty"`
	OverUnderCorrect *bool      `bson:"over_under_correct,omitempty" json:"over_under_correct,omitempty"`
	GradedAt         *time.Time `bson:"graded_at,omitempty" json:"graded_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// IsGraded returns true once the grader has processed this pick
func (p *Pick) IsGraded() bool {
	return p.GradedAt != nil
}

// HasSpreadPick returns true if the user picked a side against the spread
func (p *Pick) HasSpreadPick() bool {
	return p.TeamPicked != nil
}

// HasOverUnderPick returns true if the user picked a side of the total
func (p *Pick) HasOverUnderPick() bool {
	return p.OverUnderPick != nil
}

// PickGrade carries the grading fields written to a pick in a single update.
type PickGrade struct {
	Correct          *bool
	OverUnderCorrect *bool
	GradedAt         time.Time
}
