// Package common contains shared constants and sentinel errors used across
// TrustCart client components.
package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the bearer token
	// on outbound API requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName tags every outbound request with a correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// TokenMetadataKey is the local storage key of the persisted auth token.
	TokenMetadataKey = "token"

	// LastEmailMetadataKey remembers the email of the last successful login.
	LastEmailMetadataKey = "last_email"
)
