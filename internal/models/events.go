package models

import (
	"strconv"
	"strings"
)

// Event is a raw competition event record from the match data service.
// Week is a pointer because the upstream API reports null for
// championship and offseason events.
type Event struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	EventType int    `json:"event_type"`
	Week      *int   `json:"week"`
	Year      int    `json:"year"`
}

// EventWeek returns the event's week, treating null as 0.
func (e *Event) EventWeek() int {
	if e.Week == nil || *e.Week < 0 {
		return 0
	}
	return *e.Week
}

// Alliance is one side of a match as reported upstream. Score is -1
// until the match has been played.
type Alliance struct {
	Score    int      `json:"score"`
	TeamKeys []string `json:"team_keys"`
}

// TeamNumbers parses the alliance's "frc####" team keys into numbers,
// skipping any key that does not parse.
func (a *Alliance) TeamNumbers() []int {
	nums := make([]int, 0, len(a.TeamKeys))
	for _, key := range a.TeamKeys {
		n, err := strconv.Atoi(strings.TrimPrefix(key, "frc"))
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

// Match is a raw match record from the match data service.
type Match struct {
	Key       string `json:"key"`
	CompLevel string `json:"comp_level"`
	Alliances struct {
		Red  Alliance `json:"red"`
		Blue Alliance `json:"blue"`
	} `json:"alliances"`
}

// Completed reports whether both alliances have a recorded score.
func (m *Match) Completed() bool {
	return m.Alliances.Red.Score >= 0 && m.Alliances.Blue.Score >= 0
}
