package models

import "time"

// SeasonState tracks the active week for a league's season. CurrentWeek only
// ever increases, and only through a conditional update guarded on the
// expected current value, so concurrent resolver runs cannot double-advance.
type SeasonState struct {
	League      League    `bson:"league" json:"league"`
	Season      int       `bson:"season" json:"season"`
	CurrentWeek int       `bson:"current_week" json:"current_week"`
	MaxWeek     int       `bson:"max_week" json:"max_week"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// AtFinalWeek returns true if the season pointer cannot advance further
func (s *SeasonState) AtFinalWeek() bool {
	return s.CurrentWeek >= s.MaxWeek
}
