package models

import (
	"net/url"
	"strconv"
	"time"
)

type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

type Transaction struct {
	ID            string          `json:"_id,omitempty"`
	TransactionID string          `json:"transactionID"`
	Title         string          `json:"title"`
	Type          TransactionType `json:"type"`
	Amount        float64         `json:"amount"`
	Time          time.Time       `json:"time"`
	UserID        string          `json:"userID"`
	User          *User           `json:"user,omitempty"`
}

// SignedAmount is positive for credits and negative for debits.
func (t Transaction) SignedAmount() float64 {
	if t.Type == Debit {
		return -t.Amount
	}
	return t.Amount
}

// TransactionFilter narrows the transaction list. Zero fields are omitted
// from the query.
type TransactionFilter struct {
	Page      int
	Limit     int
	Type      TransactionType
	StartDate string
	EndDate   string
	Search    string
}

// Query renders the non-empty fields as URL parameters.
func (f TransactionFilter) Query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}
