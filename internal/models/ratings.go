package models

// TeamRating is one team's externally computed performance rating (EPA)
// at one event, broken into scoring phases. Callers pass *TeamRating and
// use nil for "no usable rating". An absent rating is a distinct state
// from a team rated zero and the two must never be conflated.
type TeamRating struct {
	TeamNumber int     `json:"team_number"`
	EventKey   string  `json:"event_key"`
	Total      float64 `json:"total"`
	Auto       float64 `json:"auto"`
	Teleop     float64 `json:"teleop"`
	Endgame    float64 `json:"endgame"`
}

// AllianceSummary aggregates the valid ratings of one alliance.
// When no valid ratings exist every field is exactly 0.0.
type AllianceSummary struct {
	AvgTotal   float64 `json:"avg_total"`
	AvgAuto    float64 `json:"avg_auto"`
	AvgTeleop  float64 `json:"avg_teleop"`
	AvgEndgame float64 `json:"avg_endgame"`
	SumTotal   float64 `json:"sum_total"`
	MaxTotal   float64 `json:"max_total"`
}
