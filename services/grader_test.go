package services

import (
	"context"
	"testing"
	"time"

	"pickem-engine-go/models"
)

func finalGame() *models.Game {
	covered := models.SideHome
	over := true
	score1, score2 := 30, 20
	resolvedAt := time.Now()
	return &models.Game{
		ID:            "game-1",
		League:        models.LeagueNFL,
		Status:        models.GameStatusFinal,
		HomeSpread:    floatPtr(-6.5),
		OverUnderLine: floatPtr(44.5),
		HomeScore:     &score1,
		AwayScore:     &score2,
		CoveredBy:     &covered,
		WentOver:      &over,
		ResolvedAt:    &resolvedAt,
	}
}

func TestGradeSpreadAndTotal(t *testing.T) {
	grader := NewPickGrader(newFakePickStore())
	now := time.Now()

	tests := []struct {
		name       string
		pick       *models.Pick
		game       func() *models.Game
		wantSpread *bool
		wantTotal  *bool
	}{
		{
			"correct on both markets",
			&models.Pick{TeamPicked: sidePtr(models.SideHome), OverUnderPick: totalPtr(models.TotalOver)},
			finalGame,
			boolPtr(true), boolPtr(true),
		},
		{
			"wrong on both markets",
			&models.Pick{TeamPicked: sidePtr(models.SideAway), OverUnderPick: totalPtr(models.TotalUnder)},
			finalGame,
			boolPtr(false), boolPtr(false),
		},
		{
			"markets graded independently",
			&models.Pick{TeamPicked: sidePtr(models.SideAway), OverUnderPick: totalPtr(models.TotalOver)},
			finalGame,
			boolPtr(false), boolPtr(true),
		},
		{
			"total only pick leaves spread untouched",
			&models.Pick{OverUnderPick: totalPtr(models.TotalOver)},
			finalGame,
			nil, boolPtr(true),
		},
		{
			"spread only pick leaves total untouched",
			&models.Pick{TeamPicked: sidePtr(models.SideHome)},
			finalGame,
			boolPtr(true), nil,
		},
		{
			"spread push yields no decision",
			&models.Pick{TeamPicked: sidePtr(models.SideHome), OverUnderPick: totalPtr(models.TotalOver)},
			func() *models.Game {
				g := finalGame()
				push := models.SidePush
				g.CoveredBy = &push
				return g
			},
			nil, boolPtr(true),
		},
		{
			"total push yields no decision",
			&models.Pick{TeamPicked: sidePtr(models.SideHome), OverUnderPick: totalPtr(models.TotalUnder)},
			func() *models.Game {
				g := finalGame()
				g.WentOver = nil // total landed on the line
				return g
			},
			boolPtr(true), nil,
		},
		{
			"total pick without configured line stays ungraded",
			&models.Pick{OverUnderPick: totalPtr(models.TotalOver)},
			func() *models.Game {
				g := finalGame()
				g.OverUnderLine = nil
				g.WentOver = nil
				return g
			},
			nil, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade := grader.Grade(tt.pick, tt.game(), now)

			if !boolPtrEqual(grade.Correct, tt.wantSpread) {
				t.Errorf("Correct = %v, want %v", fmtBoolPtr(grade.Correct), fmtBoolPtr(tt.wantSpread))
			}
			if !boolPtrEqual(grade.OverUnderCorrect, tt.wantTotal) {
				t.Errorf("OverUnderCorrect = %v, want %v", fmtBoolPtr(grade.OverUnderCorrect), fmtBoolPtr(tt.wantTotal))
			}
			if !grade.GradedAt.Equal(now) {
				t.Errorf("GradedAt = %v, want %v", grade.GradedAt, now)
			}
		})
	}
}

func TestGradeGamePersistsAllPicks(t *testing.T) {
	game := finalGame()
	picks := []*models.Pick{
		{GameID: game.ID, UserID: 1, TeamPicked: sidePtr(models.SideHome)},
		{GameID: game.ID, UserID: 2, TeamPicked: sidePtr(models.SideAway), OverUnderPick: totalPtr(models.TotalUnder)},
		{GameID: "other-game", UserID: 3, TeamPicked: sidePtr(models.SideHome)},
	}
	store := newFakePickStore(picks...)
	grader := NewPickGrader(store)

	graded, err := grader.GradeGame(context.Background(), game)
	if err != nil {
		t.Fatalf("GradeGame: %v", err)
	}
	if graded != 2 {
		t.Errorf("graded %d picks, want 2", graded)
	}

	if got := store.get(picks[0].ID); got.Correct == nil || !*got.Correct {
		t.Errorf("user 1 Correct = %v, want true", fmtBoolPtr(got.Correct))
	}
	if got := store.get(picks[1].ID); got.Correct == nil || *got.Correct {
		t.Errorf("user 2 Correct = %v, want false", fmtBoolPtr(got.Correct))
	}
	if got := store.get(picks[2].ID); got.IsGraded() {
		t.Error("pick on an unrelated game must not be graded")
	}
}

func TestGradeGameNeverRegrades(t *testing.T) {
	game := finalGame()
	gradedAt := time.Now().Add(-time.Hour)
	wasCorrect := false
	picks := []*models.Pick{
		{GameID: game.ID, UserID: 1, TeamPicked: sidePtr(models.SideHome), Correct: &wasCorrect, GradedAt: &gradedAt},
		{GameID: game.ID, UserID: 2, TeamPicked: sidePtr(models.SideHome)},
	}
	store := newFakePickStore(picks...)
	grader := NewPickGrader(store)

	graded, err := grader.GradeGame(context.Background(), game)
	if err != nil {
		t.Fatalf("GradeGame: %v", err)
	}
	if graded != 1 {
		t.Errorf("graded %d picks, want 1", graded)
	}

	// The previously graded pick keeps its original grade even though the
	// new outcome disagrees with it
	if got := store.get(picks[0].ID); got.Correct == nil || *got.Correct {
		t.Errorf("already graded pick was overwritten: Correct = %v", fmtBoolPtr(got.Correct))
	}
	if !store.get(picks[0].ID).GradedAt.Equal(gradedAt) {
		t.Error("already graded pick's GradedAt changed")
	}
}

func TestGradeGameRejectsNonFinalGame(t *testing.T) {
	game := finalGame()
	game.Status = models.GameStatusInProgress
	grader := NewPickGrader(newFakePickStore())

	if _, err := grader.GradeGame(context.Background(), game); err == nil {
		t.Error("expected error grading a non-final game")
	}
}

func TestGradedPushDistinctFromUngraded(t *testing.T) {
	game := finalGame()
	push := models.SidePush
	game.CoveredBy = &push

	pick := &models.Pick{GameID: game.ID, UserID: 1, TeamPicked: sidePtr(models.SideHome)}
	store := newFakePickStore(pick)
	grader := NewPickGrader(store)

	if _, err := grader.GradeGame(context.Background(), game); err != nil {
		t.Fatalf("GradeGame: %v", err)
	}

	got := store.get(pick.ID)
	if got.Correct != nil {
		t.Errorf("pushed pick Correct = %v, want nil", fmtBoolPtr(got.Correct))
	}
	if !got.IsGraded() {
		t.Error("pushed pick must still be marked graded so it is never re-graded")
	}
}

func boolPtrEqual(a, b *bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func fmtBoolPtr(b *bool) interface{} {
	if b == nil {
		return nil
	}
	return *b
}
