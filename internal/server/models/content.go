package models

import "time"

const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
)

type Event struct {
	ID           string   `json:"_id"`
	EventName    string   `json:"eventName"`
	Image        string   `json:"image,omitempty"`
	EntryFee     float64  `json:"entryFee"`
	PrizePool    float64  `json:"prizePool"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate"`
	EndTime      string   `json:"endTime,omitempty"`
	Rules        string   `json:"rules,omitempty"`
	Status       string   `json:"status"`
	Participants []string `json:"participants"`
}

type User struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	Image     string    `json:"profilePicture,omitempty"`
	IsActive  bool      `json:"isActive"`
	BanReason string    `json:"banReason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	EventID     string    `json:"eventId,omitempty"`
	Description string    `json:"description"`
	Preview     string    `json:"preview,omitempty"`
	Likes       int       `json:"likes"`
	Comments    int       `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	ReportPending = "pending"
	ReportRemoved = "removed"
	ReportWarned  = "warned"
)

type Report struct {
	ID         string    `json:"_id"`
	PostID     string    `json:"-"`
	ReporterID string    `json:"-"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Transaction struct {
	ID            string    `json:"_id"`
	TransactionID string    `json:"transactionID"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Time          time.Time `json:"time"`
	UserID        string    `json:"userID"`
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
}
