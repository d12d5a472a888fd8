package models

import (
	"errors"
	"fmt"
)

// ErrRejected is returned when the server answered 2xx but reported
// success=false in the body.
var ErrRejected = errors.New("request rejected by server")

// Envelope is the status wrapper most admin endpoints put around their
// payload. Success is nil when the endpoint does not send the field.
type Envelope struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err converts an explicit success=false into ErrRejected.
func (e Envelope) Err() error {
	if e.Success != nil && !*e.Success {
		if e.Message == "" {
			return ErrRejected
		}
		return fmt.Errorf("%w: %s", ErrRejected, e.Message)
	}
	return nil
}

// Pagination is the paging block returned by list endpoints.
type Pagination struct {
	Page        int  `json:"page,omitempty"`
	Limit       int  `json:"limit,omitempty"`
	Total       int  `json:"total,omitempty"`
	TotalPages  int  `json:"totalPages,omitempty"`
	HasNextPage bool `json:"hasNextPage"`
}
