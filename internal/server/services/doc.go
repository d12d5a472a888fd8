// Package services contains the development backend's business logic:
// administrator authentication with rotating refresh tokens, the password
// reset flow, and the event, post, user and transaction operations the
// admin console drives.
package services
