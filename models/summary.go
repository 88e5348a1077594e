package models

// ResolutionSummary reports the aggregate result of one resolver run for one
// league. Per-game failures are folded into counts; they never abort a run.
type ResolutionSummary struct {
	League              League `json:"league"`
	GamesResolved       int    `json:"games_resolved"`
	PicksGraded         int    `json:"picks_graded"`
	UnresolvedRemaining int    `json:"unresolved_remaining"`
	GameErrors          int    `json:"game_errors"`
	WeekAdvanced        bool   `json:"week_advanced"`
	QuotaRemaining      *int   `json:"quota_remaining,omitempty"` // From the feed's rate-limit header, when reported
}
