package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"
)

const quotaRemainingHeader = "X-Requests-Remaining"

// OddsAPIScoreFeed fetches final scores from The Odds API. The scores
// endpoint is queried per league sport key with a daysFrom lookback, and the
// provider reports its remaining request quota in a response header.
type OddsAPIScoreFeed struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *logging.Logger
}

// NewOddsAPIScoreFeed creates a new score feed client
func NewOddsAPIScoreFeed(baseURL, apiKey string, timeout time.Duration) *OddsAPIScoreFeed {
	return &OddsAPIScoreFeed{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logging.WithPrefix("scorefeed"),
	}
}

// Provider payload structures. Scores arrive as strings and may be null for
// games that have not started.
type oddsAPIScore struct {
	ID        string             `json:"id"`
	SportKey  string             `json:"sport_key"`
	HomeTeam  string             `json:"home_team"`
	AwayTeam  string             `json:"away_team"`
	Completed bool               `json:"completed"`
	Scores    []oddsAPITeamScore `json:"scores"`
}

type oddsAPITeamScore struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

// FetchScores queries the provider for the league's recent scores. Any
// non-success response or malformed payload is a run-level feed failure.
// Individual score entries that fail validation are dropped, which downgrades
// their game to a match failure rather than inventing a value.
func (f *OddsAPIScoreFeed) FetchScores(ctx context.Context, league models.League, lookbackDays int) ([]models.ExternalScoreRecord, *int, error) {
	url := fmt.Sprintf("%s/v4/sports/%s/scores/?daysFrom=%d&apiKey=%s",
		f.baseURL, league.SportKey(), lookbackDays, f.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build score feed request: %w", err)
	}

	f.logger.Debugf("Fetching %s scores (daysFrom=%d)", league, lookbackDays)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("score feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("score feed returned status %d for %s", resp.StatusCode, league)
	}

	quota := parseQuota(resp.Header.Get(quotaRemainingHeader))

	var payload []oddsAPIScore
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, quota, fmt.Errorf("failed to decode score feed response: %w", err)
	}

	records := make([]models.ExternalScoreRecord, 0, len(payload))
	for _, raw := range payload {
		if raw.ID == "" {
			f.logger.Warnf("Dropping score record with empty id (%s vs %s)", raw.AwayTeam, raw.HomeTeam)
			continue
		}

		record := models.ExternalScoreRecord{
			ID:        raw.ID,
			HomeTeam:  raw.HomeTeam,
			AwayTeam:  raw.AwayTeam,
			Completed: raw.Completed,
		}

		for _, s := range raw.Scores {
			score, err := strconv.Atoi(s.Score)
			if err != nil || s.Name == "" {
				f.logger.Warnf("Record %s: dropping invalid score entry (name=%q, score=%q)", raw.ID, s.Name, s.Score)
				continue
			}
			record.Scores = append(record.Scores, models.TeamScore{Name: s.Name, Score: score})
		}

		records = append(records, record)
	}

	f.logger.Debugf("Received %d score records for %s", len(records), league)
	return records, quota, nil
}

func parseQuota(value string) *int {
	if value == "" {
		return nil
	}
	quota, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &quota
}
