package models

import "time"

type Post struct {
	ID          string    `json:"_id"`
	Description string    `json:"description,omitempty"`
	Preview     string    `json:"preview,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	EventID     string    `json:"eventId,omitempty"`
	Likes       int       `json:"likes,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type PostInput struct {
	Description string `json:"description"`
	Preview     string `json:"preview,omitempty"`
	EventID     string `json:"eventId,omitempty"`
}

type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

type CommentsCount struct {
	Count int `json:"count"`
}

// ReportAction is what a moderator does with a reported post.
type ReportAction string

const (
	ReportRemove ReportAction = "remove"
	ReportWarn   ReportAction = "warn"
)

type Reporter struct {
	ID       string `json:"_id,omitempty"`
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Report struct {
	ID        string    `json:"_id"`
	Post      Post      `json:"post"`
	Reporter  Reporter  `json:"reporter"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type ReportPage struct {
	Reports    []Report   `json:"reports"`
	Pagination Pagination `json:"pagination"`
}

type ReportDecision struct {
	Action ReportAction `json:"action"`
	Reason string       `json:"reason"`
}
