package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"pickem-engine-go/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func sidePtr(s models.Side) *models.Side { return &s }

func totalPtr(s models.TotalSide) *models.TotalSide { return &s }

// fakeGameStore is an in-memory GameStore with the same conditional-write
// semantics as the mongo repository.
type fakeGameStore struct {
	mu       sync.Mutex
	games    map[string]*models.Game
	findErr  error
	writeErr map[string]error // per-game ResolveGame failures
}

func newFakeGameStore(games ...*models.Game) *fakeGameStore {
	store := &fakeGameStore{
		games:    make(map[string]*models.Game),
		writeErr: make(map[string]error),
	}
	for _, g := range games {
		store.games[g.ID] = g
	}
	return store
}

func (s *fakeGameStore) FindUnresolved(ctx context.Context, league models.League, windowStart, now time.Time) ([]*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}

	var games []*models.Game
	for _, g := range s.games {
		if g.League != league || !g.IsResolvable() {
			continue
		}
		if g.Kickoff.Before(windowStart) || g.Kickoff.After(now) {
			continue
		}
		copied := *g
		games = append(games, &copied)
	}
	return games, nil
}

func (s *fakeGameStore) CountPendingInWeek(ctx context.Context, league models.League, season, week int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, g := range s.games {
		if g.League == league && g.Season == season && g.Week != nil && *g.Week == week && g.IsResolvable() {
			count++
		}
	}
	return count, nil
}

func (s *fakeGameStore) ResolveGame(ctx context.Context, gameID string, outcome models.GameOutcome) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeErr[gameID]; err != nil {
		return false, err
	}

	game, ok := s.games[gameID]
	if !ok || !game.IsResolvable() {
		return false, nil
	}

	game.Status = models.GameStatusFinal
	game.HomeScore = &outcome.HomeScore
	game.AwayScore = &outcome.AwayScore
	game.CoveredBy = outcome.CoveredBy
	game.WentOver = outcome.WentOver
	game.ResolvedAt = &outcome.ResolvedAt
	return true, nil
}

func (s *fakeGameStore) get(id string) *models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games[id]
}

// fakePickStore is an in-memory PickStore with the grader's once-only
// conditional-write semantics.
type fakePickStore struct {
	mu       sync.Mutex
	picks    map[primitive.ObjectID]*models.Pick
	findErr  map[string]error // per-game FindUngradedByGame failures
	gradeErr error
}

func newFakePickStore(picks ...*models.Pick) *fakePickStore {
	store := &fakePickStore{
		picks:   make(map[primitive.ObjectID]*models.Pick),
		findErr: make(map[string]error),
	}
	for _, p := range picks {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		store.picks[p.ID] = p
	}
	return store
}

func (s *fakePickStore) FindUngradedByGame(ctx context.Context, gameID string) ([]*models.Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.findErr[gameID]; err != nil {
		return nil, err
	}

	var picks []*models.Pick
	for _, p := range s.picks {
		if p.GameID == gameID && !p.IsGraded() {
			copied := *p
			picks = append(picks, &copied)
		}
	}
	return picks, nil
}

func (s *fakePickStore) GradePick(ctx context.Context, pickID primitive.ObjectID, grade models.PickGrade) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gradeErr != nil {
		return false, s.gradeErr
	}

	pick, ok := s.picks[pickID]
	if !ok || pick.IsGraded() {
		return false, nil
	}

	pick.Correct = grade.Correct
	pick.OverUnderCorrect = grade.OverUnderCorrect
	gradedAt := grade.GradedAt
	pick.GradedAt = &gradedAt
	return true, nil
}

func (s *fakePickStore) get(id primitive.ObjectID) *models.Pick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.picks[id]
}

// fakeSeasonStore is an in-memory SeasonStore with conditional advancement
type fakeSeasonStore struct {
	mu    sync.Mutex
	state *models.SeasonState
}

func (s *fakeSeasonStore) Get(ctx context.Context, league models.League, season int) (*models.SeasonState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil || s.state.League != league || s.state.Season != season {
		return nil, nil
	}
	copied := *s.state
	return &copied, nil
}

func (s *fakeSeasonStore) AdvanceWeek(ctx context.Context, league models.League, season, expectedWeek int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil || s.state.League != league || s.state.Season != season {
		return false, nil
	}
	if s.state.CurrentWeek != expectedWeek || s.state.CurrentWeek >= s.state.MaxWeek {
		return false, nil
	}
	s.state.CurrentWeek++
	return true, nil
}

// fakeScoreFeed returns canned records or a canned error
type fakeScoreFeed struct {
	records []models.ExternalScoreRecord
	quota   *int
	err     error
	calls   int
}

func (f *fakeScoreFeed) FetchScores(ctx context.Context, league models.League, lookbackDays int) ([]models.ExternalScoreRecord, *int, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.records, f.quota, nil
}

var errStoreDown = errors.New("store unavailable")
