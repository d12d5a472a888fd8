package services

import "errors"

var (
	// ErrInvalidInput wraps every validation failure; the message after the
	// colon is safe to show to the caller.
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	// ErrInvalidState means the record exists but cannot make the requested
	// transition, e.g. starting an event that is already running.
	ErrInvalidState = errors.New("invalid state")
)
