package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the key.
	ErrNotFound = errors.New("store: key not found")

	// ErrUnavailable marks any backend failure: the medium could not be
	// reached, a write was rejected, or stored bytes were unreadable.
	ErrUnavailable = errors.New("store: unavailable")
)

// KV is a string-keyed byte store. Every learner document lives under its
// own key; there are no cross-key transactions.
type KV interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// unavailable wraps a backend error so callers can match ErrUnavailable.
func unavailable(op, key string, err error) error {
	return fmt.Errorf("%s %q: %w: %w", op, key, ErrUnavailable, err)
}
