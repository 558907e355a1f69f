// Package metadata is a small key/value store in the local SQLite database.
// The client keeps the session token and user id here so that a login
// survives a restart.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
