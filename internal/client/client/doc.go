// Package client is the session-aware HTTP client every admin console
// operation goes through.
//
// # Overview
//
// A Client sends JSON requests to the configured platform API base URL and:
//  1. attaches the fixed default headers (Content-Type, Accept, Platform)
//     plus a per-send X-Request-ID;
//  2. reads the access token from the TokenStore before every send and,
//     when one exists, sets "Authorization: Bearer <token>"; a missing token
//     is not an error, so pre-login calls still go out;
//  3. on the first 401 of a request, exchanges the stored refresh token at
//     POST /admin/refresh-token and re-issues the request exactly once with
//     the new token.
//
// # Retry state
//
// Every call starts in stateInitial. A 401 in stateInitial moves it to
// stateRetried and runs the refresh; a 401 in stateRetried is returned to
// the caller as-is. Concurrent refreshes for the same refresh token are
// coalesced, but each request still gets its own single retry.
//
// # Error Handling
//
// HTTP failures are returned as *StatusError, network failures (timeout,
// DNS, refused connection) as *TransportError. Both match sentinel errors
// with errors.Is: ErrUnauthorized, ErrForbidden, ErrNotFound, ErrUnavailable,
// ErrTimeout.
//
// When the refresh endpoint itself answers 401 or 403 the stored access
// token is cleared and the original 401 is returned. Other refresh failures
// leave storage untouched.
package client
