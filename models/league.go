package models

import "fmt"

// League identifies a supported sports league
type League string

const (
	LeagueNFL   League = "nfl"
	LeagueNCAAF League = "ncaaf"
	LeagueNBA   League = "nba"
)

// AllLeagues lists every league the resolver knows how to process
var AllLeagues = []League{LeagueNFL, LeagueNCAAF, LeagueNBA}

// ParseLeague validates a league identifier from config or a request path
func ParseLeague(s string) (League, error) {
	switch League(s) {
	case LeagueNFL, LeagueNCAAF, LeagueNBA:
		return League(s), nil
	}
	return "", fmt.Errorf("unknown league: %q", s)
}

// SportKey returns the score feed's sport key for the league
func (l League) SportKey() string {
	switch l {
	case LeagueNFL:
		return "americanfootball_nfl"
	case LeagueNCAAF:
		return "americanfootball_ncaaf"
	case LeagueNBA:
		return "basketball_nba"
	default:
		return ""
	}
}

// HasWeeks returns true if the league's season is organized into weeks.
// The NBA plays a continuous schedule, so the week pointer does not apply.
func (l League) HasWeeks() bool {
	switch l {
	case LeagueNFL, LeagueNCAAF:
		return true
	default:
		return false
	}
}

// MaxWeek returns the final regular-season week for the league, or 0 if the
// league has no week concept
func (l League) MaxWeek() int {
	switch l {
	case LeagueNFL:
		return 18
	case LeagueNCAAF:
		return 15
	default:
		return 0
	}
}
