// Package store provides the persistent key-value blob store esmalte keeps
// its state snapshots in.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no value exists for the key.
var ErrNotFound = errors.New("key not found")

// Well-known snapshot keys. Each key holds a whole JSON-serialized snapshot;
// there are no partial updates and no transactions across keys.
const (
	KeySchedules    = "schedules"
	KeyReservations = "reservations"
	KeyTimeRequests = "timeRequests"
	KeyCatalog      = "catalog"
)

// Store is the blob store interface. Writes replace the whole value for a
// key; the last writer wins.
type Store interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
