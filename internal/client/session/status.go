package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Status summarises the stored session without contacting the server.
type Status struct {
	LoggedIn        bool
	HasRefreshToken bool
	Subject         string
	ExpiresAt       time.Time
}

// Expired reports whether the access token carries an exp claim in the past.
func (st Status) Expired(now time.Time) bool {
	return !st.ExpiresAt.IsZero() && now.After(st.ExpiresAt)
}

// Status inspects the stored tokens. The access token is decoded as a JWT
// without verifying its signature; opaque tokens simply yield no expiry.
func (s *Store) Status(ctx context.Context) (Status, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return Status{}, err
	}

	st := Status{
		LoggedIn:        c.AccessToken != "",
		HasRefreshToken: c.RefreshToken != "",
	}
	if !st.LoggedIn {
		return st, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.AccessToken, claims); err != nil {
		return st, nil
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		st.ExpiresAt = exp.Time
	}
	if sub, err := claims.GetSubject(); err == nil {
		st.Subject = sub
	}
	return st, nil
}
