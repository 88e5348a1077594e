package models

import "strings"

// ExternalScoreRecord is the validated form of one entry in the score feed
// payload. It is ephemeral: records are matched against games during a
// resolution run and never persisted.
type ExternalScoreRecord struct {
	ID        string
	HomeTeam  string
	AwayTeam  string
	Completed bool
	Scores    []TeamScore
}

// TeamScore is a single team's final score as reported by the feed
type TeamScore struct {
	Name  string
	Score int
}

// ScoreFor looks up the score entry whose team name matches any of the given
// identifiers, case-insensitively. Callers pass the record's own team field
// first, since score entries are named in the provider's form, with the
// catalog's display name and short code as fallbacks.
func (r *ExternalScoreRecord) ScoreFor(names ...string) (int, bool) {
	for _, s := range r.Scores {
		for _, name := range names {
			if name != "" && strings.EqualFold(s.Name, name) {
				return s.Score, true
			}
		}
	}
	return 0, false
}
