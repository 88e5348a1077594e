package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pickem-engine-go/models"

	"github.com/gorilla/mux"
)

type stubResolver struct {
	summary *models.ResolutionSummary
	err     error
	league  models.League
}

func (s *stubResolver) ResolvePendingGames(ctx context.Context, league models.League) (*models.ResolutionSummary, error) {
	s.league = league
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func newRouter(h *ResolutionHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/leagues/{league}/resolve", h.TriggerResolve).Methods("POST")
	r.HandleFunc("/api/health", h.Health).Methods("GET")
	return r
}

func TestTriggerResolve(t *testing.T) {
	quota := 42
	resolver := &stubResolver{summary: &models.ResolutionSummary{
		League:         models.LeagueNFL,
		GamesResolved:  3,
		PicksGraded:    17,
		WeekAdvanced:   true,
		QuotaRemaining: &quota,
	}}
	router := newRouter(NewResolutionHandler(resolver))

	req := httptest.NewRequest(http.MethodPost, "/api/leagues/nfl/resolve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resolver.league != models.LeagueNFL {
		t.Errorf("resolver called with league %q, want nfl", resolver.league)
	}

	var summary models.ResolutionSummary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if summary.GamesResolved != 3 || summary.PicksGraded != 17 {
		t.Errorf("summary = %+v, want 3 resolved and 17 graded", summary)
	}
	if summary.QuotaRemaining == nil || *summary.QuotaRemaining != 42 {
		t.Errorf("QuotaRemaining = %v, want 42", summary.QuotaRemaining)
	}
}

func TestTriggerResolveUnknownLeague(t *testing.T) {
	router := newRouter(NewResolutionHandler(&stubResolver{}))

	req := httptest.NewRequest(http.MethodPost, "/api/leagues/cricket/resolve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTriggerResolveRunFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("score feed returned status 503")}
	router := newRouter(NewResolutionHandler(resolver))

	req := httptest.NewRequest(http.MethodPost, "/api/leagues/nfl/resolve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newRouter(NewResolutionHandler(&stubResolver{}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
