package models

import "time"

// RefreshToken is a server-side record of an issued refresh token. A token
// is valid only while its record exists; rotation deletes the old record.
type RefreshToken struct {
	ID        string
	AdminID   string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
