package models

import "time"

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

type Event struct {
	ID           string      `json:"_id"`
	EventName    string      `json:"eventName"`
	Image        string      `json:"image,omitempty"`
	EntryFee     float64     `json:"entryFee"`
	PrizePool    float64     `json:"prizePool"`
	StartDate    string      `json:"startDate,omitempty"`
	EndDate      string      `json:"endDate"`
	EndTime      string      `json:"endTime,omitempty"`
	Rules        string      `json:"rules,omitempty"`
	Status       EventStatus `json:"status,omitempty"`
	Participants []string    `json:"participants,omitempty"`
}

// EndsAt parses EndDate, which the server sends either as a date or as an
// RFC 3339 style timestamp without zone.
func (e Event) EndsAt() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, e.EndDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EventInput is the create/update payload.
type EventInput struct {
	EventName string  `json:"eventName"`
	Image     string  `json:"image,omitempty"`
	EntryFee  float64 `json:"entryFee"`
	PrizePool float64 `json:"prizePool"`
	EndDate   string  `json:"endDate"`
	EndTime   string  `json:"endTime,omitempty"`
	Rules     string  `json:"rules,omitempty"`
}

type Participant struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name"`
	UserName string `json:"userName"`
	Image    string `json:"image,omitempty"`
}

type ParticipantStats struct {
	TotalPosts int `json:"totalPosts"`
	TotalLikes int `json:"totalLikes"`
}

type LeaderboardEntry struct {
	Participant Participant      `json:"participant"`
	Stats       ParticipantStats `json:"stats"`
}

// Points is the score shown on the leaderboard: ten per like.
func (e LeaderboardEntry) Points() int {
	return e.Stats.TotalLikes * 10
}

type Leaderboard struct {
	Event       *Event             `json:"event,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
