package storage

import (
	"context"
)

// Storage is a flat key-value store holding encoded values.
// It plays the part browser local storage plays for a client-side app:
// a handful of fixed keys, each holding one JSON document.
type Storage interface {
	// Get returns the value stored under key, or model.ErrEntryNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks the backend is reachable
	Ping(ctx context.Context) error
	// Close releases backend resources
	Close() error
}
