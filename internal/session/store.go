// Package session persists the mapping from opaque session identifiers to
// signed access tokens. The store's TTL is the authoritative session expiry:
// once an entry lapses it is gone, indistinguishable from one that never
// existed.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates no live session exists for the identifier. The
	// store does not distinguish expired from never-created.
	ErrNotFound = errors.New("session: not found")

	// ErrUnavailable indicates the backing store could not be reached.
	// Callers must treat this as "cannot prove the session valid".
	ErrUnavailable = errors.New("session: store unavailable")
)

// Store is the session-state backend.
type Store interface {
	// Put records token under id with the given time-to-live, overwriting
	// any previous entry for id.
	Put(ctx context.Context, id, token string, ttl time.Duration) error

	// Get returns the token recorded for id, or ErrNotFound.
	Get(ctx context.Context, id string) (string, error)

	// Delete removes the session for id. Deleting an absent session is not
	// an error.
	Delete(ctx context.Context, id string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
