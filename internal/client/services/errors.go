package services

import "errors"

var (
	// ErrAuthRequired is returned before any network call when the session
	// holds no token.
	ErrAuthRequired         = errors.New("authentication required")
	ErrInProgress           = errors.New("operation already in progress")
	ErrAlreadyAuthenticated = errors.New("already authenticated, log out first")
)
