// Package common contains shared constants and sentinel errors used across
// the admin console components.
package common

// Outbound header names attached by the API client.
const (
	AuthorizationHeaderName = "Authorization"
	PlatformHeaderName      = "Platform"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Storage keys of the persisted admin session.
const (
	AccessTokenKey  = "adminToken"
	RefreshTokenKey = "refreshToken"
	AdminDataKey    = "adminData"
)

// RefreshTokenPath is the API path used to exchange a refresh token for a
// new access token.
const RefreshTokenPath = "/admin/refresh-token"
