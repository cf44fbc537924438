// Package storage defines the KeyValue interface, the contract any
// persistence backend must satisfy to hold the buddy list.
//
// WHY AN INTERFACE?
// ─────────────────
// The buddy list is stored the way a host key-value store would hold it:
// one serialized blob under one key. Nothing above this package knows
// whether that blob lives in SQLite, in a JSON file, or in memory:
//
//   - Switching backends = implement the interface, change the driver
//     name in config. Zero changes to the buddy logic or the views.
//
//   - Writing tests = pass the in-memory backend. No disk needed.
package storage

import "context"

// KeyValue is the persistence contract.
type KeyValue interface {
	// GetItem returns the value stored under key. ok is false (and err
	// nil) when nothing has been stored under it yet.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key string, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
