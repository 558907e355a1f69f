// Package common contains shared constants and small helpers used across
// DocVault components.
package common

const (
	// TokenHeaderName is the HTTP header that carries the session token on
	// authenticated API calls.
	TokenHeaderName = "token"

	// RequestIDHeaderName carries a per-request id used to correlate client
	// log lines with server-side logs.
	RequestIDHeaderName = "X-Request-Id"
)
