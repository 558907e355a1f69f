package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
	ErrResponseTooLarge  = errors.New("response too large")
)

// RemoteError is a failed API call. Status is the HTTP status code, or 0 when
// no response was received. Message is what the user should see: the
// server-supplied message when there was one, otherwise a per-call fallback.
type RemoteError struct {
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrUnavailable:
		return e.Status == 0
	}
	return false
}

// mapError converts a transport failure into a RemoteError with the given
// fallback message. A RemoteError built while reading the response is kept.
func mapError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}
	return &RemoteError{Message: fallback, Err: err}
}
