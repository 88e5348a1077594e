package services

import (
	"context"
	"encoding/json"
	"time"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"

	"github.com/redis/go-redis/v9"
)

// ResolutionEvent is the payload published for each resolved game, consumed
// by downstream notification tooling outside this service.
type ResolutionEvent struct {
	GameID     string        `json:"game_id"`
	League     models.League `json:"league"`
	Season     int           `json:"season"`
	Week       *int          `json:"week,omitempty"`
	Home       string        `json:"home"`
	Away       string        `json:"away"`
	HomeScore  int           `json:"home_score"`
	AwayScore  int           `json:"away_score"`
	CoveredBy  *models.Side  `json:"covered_by,omitempty"`
	WentOver   *bool         `json:"went_over,omitempty"`
	ResolvedAt time.Time     `json:"resolved_at"`
}

// EventPublisher announces resolved games on a redis channel. Publishing is
// best effort: failures are logged and never affect grading or resolution.
type EventPublisher struct {
	client  *redis.Client
	channel string
	logger  *logging.Logger
}

// NewEventPublisher creates a publisher on the given redis address and channel
func NewEventPublisher(addr, channel string) *EventPublisher {
	return &EventPublisher{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		channel: channel,
		logger:  logging.WithPrefix("events"),
	}
}

// PublishGameResolved emits a resolution event for the game. Safe to call on
// a nil publisher, which disables event publishing entirely.
func (p *EventPublisher) PublishGameResolved(ctx context.Context, game *models.Game, outcome models.GameOutcome) {
	if p == nil {
		return
	}

	event := ResolutionEvent{
		GameID:     game.ID,
		League:     game.League,
		Season:     game.Season,
		Week:       game.Week,
		Home:       game.Home,
		Away:       game.Away,
		HomeScore:  outcome.HomeScore,
		AwayScore:  outcome.AwayScore,
		CoveredBy:  outcome.CoveredBy,
		WentOver:   outcome.WentOver,
		ResolvedAt: outcome.ResolvedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Errorf("Failed to marshal resolution event for game %s: %v", game.ID, err)
		return
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.logger.Warnf("Failed to publish resolution event for game %s: %v", game.ID, err)
	}
}

// Close releases the redis connection
func (p *EventPublisher) Close() error {
	if p == nil {
		return nil
	}
	return p.client.Close()
}
