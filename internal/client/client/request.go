package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Request describes one API call. It is never mutated by the Client, so the
// same value can be re-sent after a token refresh.
type Request struct {
	Method string
	// Path is relative to the base URL; a leading "/" is optional and may
	// carry its own query string.
	Path  string
	Query url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Header holds per-call overrides of the default headers.
	Header http.Header
	// OverrideAuth lets Header["Authorization"] replace the session token.
	// Without it the session token always wins.
	OverrideAuth bool
}

// Response is a fully read successful reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("decode response: empty body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// retryState tracks the single-retry protocol of one logical request.
type retryState int

const (
	stateInitial retryState = iota
	stateRetried
)

func (s retryState) String() string {
	switch s {
	case stateInitial:
		return "initial"
	case stateRetried:
		return "retried"
	default:
		return fmt.Sprintf("retryState(%d)", int(s))
	}
}

// canRefresh is the only transition out of stateInitial.
func (s retryState) canRefresh(status int) bool {
	return s == stateInitial && status == http.StatusUnauthorized
}

// attempt is a single send of a Request.
type attempt struct {
	state retryState
	// bearer is the access token attached to this send; empty sends none.
	bearer string
}
