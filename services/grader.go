package services

import (
	"context"
	"fmt"
	"time"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"
)

// PickGrader grades every outstanding pick on a newly resolved game. The
// spread and over/under markets are graded independently; a pick can win one
// and push or lose the other.
type PickGrader struct {
	pickStore PickStore
	logger    *logging.Logger
}

// NewPickGrader creates a new pick grader
func NewPickGrader(pickStore PickStore) *PickGrader {
	return &PickGrader{
		pickStore: pickStore,
		logger:    logging.WithPrefix("grader"),
	}
}

// GradeGame grades all ungraded picks for a resolved game and returns how
// many picks were actually written. Picks already graded by a concurrent run
// are skipped via the store's conditional write.
func (g *PickGrader) GradeGame(ctx context.Context, game *models.Game) (int, error) {
	if !game.IsFinal() {
		return 0, fmt.Errorf("game %s is not final", game.ID)
	}

	picks, err := g.pickStore.FindUngradedByGame(ctx, game.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to get ungraded picks for game %s: %w", game.ID, err)
	}

	if len(picks) == 0 {
		g.logger.Debugf("No ungraded picks for game %s", game.ID)
		return 0, nil
	}

	now := time.Now()
	graded := 0
	for _, pick := range picks {
		grade := g.Grade(pick, game, now)

		written, err := g.pickStore.GradePick(ctx, pick.ID, grade)
		if err != nil {
			return graded, fmt.Errorf("failed to persist grade for pick %s: %w", pick.ID.Hex(), err)
		}
		if !written {
			// A concurrent run graded this pick first
			g.logger.Debugf("Pick %s already graded, skipping", pick.ID.Hex())
			continue
		}
		graded++
	}

	g.logger.Infof("Graded %d/%d picks for game %s (%s)", graded, len(picks), game.ID, game.Matchup())
	return graded, nil
}

// Grade computes both grading fields for one pick against the game's
// outcome. Pushes produce nil; markets the pick never entered stay nil.
func (g *PickGrader) Grade(pick *models.Pick, game *models.Game, now time.Time) models.PickGrade {
	grade := models.PickGrade{GradedAt: now}

	if pick.HasSpreadPick() && game.CoveredBy != nil {
		if *game.CoveredBy != models.SidePush {
			grade.Correct = boolPtr(*pick.TeamPicked == *game.CoveredBy)
		}
	}

	if pick.HasOverUnderPick() && game.HasOverUnder() {
		// WentOver nil with a configured line means the total pushed
		if game.WentOver != nil {
			pickedOver := *pick.OverUnderPick == models.TotalOver
			grade.OverUnderCorrect = boolPtr(pickedOver == *game.WentOver)
		}
	}

	return grade
}
