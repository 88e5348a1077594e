package services

import (
	"strings"

	"pickem-engine-go/logging"
	"pickem-engine-go/models"
)

// MatchedScore is the result of pairing a game with a completed score record
type MatchedScore struct {
	Record    *models.ExternalScoreRecord
	HomeScore int
	AwayScore int
}

// ScoreMatcher reconciles internally stored games with the external score
// feed. The provider's id is authoritative when present; team names and short
// codes serve as a fallback for games whose external id is missing or stale.
type ScoreMatcher struct {
	logger *logging.Logger
}

// NewScoreMatcher creates a new score matcher
func NewScoreMatcher() *ScoreMatcher {
	return &ScoreMatcher{
		logger: logging.WithPrefix("matcher"),
	}
}

// Match pairs a game with a completed record from the feed. A false return
// means the game is not yet resolvable this run: either no completed record
// matched, or a matched record was missing per-team scores. Neither case is
// an error; the game is retried on the next run.
func (m *ScoreMatcher) Match(game *models.Game, records []models.ExternalScoreRecord) (*MatchedScore, bool) {
	record := m.findRecord(game, records)
	if record == nil {
		return nil, false
	}

	if !record.Completed {
		m.logger.Debugf("Game %s (%s): matched record %s not completed yet", game.ID, game.Matchup(), record.ID)
		return nil, false
	}

	// Score entries carry the provider's own team names, so the record's
	// fields are the reliable lookup key; the catalog identifiers only cover
	// providers that name entries differently from the record header.
	homeScore, homeOK := record.ScoreFor(record.HomeTeam, game.Home, game.HomeCode)
	awayScore, awayOK := record.ScoreFor(record.AwayTeam, game.Away, game.AwayCode)
	if !homeOK || !awayOK {
		// Data-quality gap in the provider payload; never guess a score
		m.logger.Warnf("Game %s (%s): record %s missing per-team scores (home found: %t, away found: %t)",
			game.ID, game.Matchup(), record.ID, homeOK, awayOK)
		return nil, false
	}

	return &MatchedScore{
		Record:    record,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}, true
}

func (m *ScoreMatcher) findRecord(game *models.Game, records []models.ExternalScoreRecord) *models.ExternalScoreRecord {
	// Primary: provider-assigned id
	if game.ExternalID != "" {
		for i := range records {
			if records[i].ID == game.ExternalID {
				return &records[i]
			}
		}
	}

	// Fallback: team identity. The provider may report either the display
	// name or the short code, so both are accepted on both sides.
	for i := range records {
		if m.teamsMatch(game, &records[i]) {
			if game.ExternalID != "" {
				m.logger.Debugf("Game %s (%s): stale external id %s, matched record %s by team names",
					game.ID, game.Matchup(), game.ExternalID, records[i].ID)
			}
			return &records[i]
		}
	}

	return nil
}

func (m *ScoreMatcher) teamsMatch(game *models.Game, record *models.ExternalScoreRecord) bool {
	return identifiesTeam(record.HomeTeam, game.Home, game.HomeCode) &&
		identifiesTeam(record.AwayTeam, game.Away, game.AwayCode)
}

func identifiesTeam(reported, name, code string) bool {
	if reported == "" {
		return false
	}
	return strings.EqualFold(reported, name) || strings.EqualFold(reported, code)
}
