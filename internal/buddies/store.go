// Package buddies owns the buddy list: how it is persisted, validated,
// and mutated by list position.
package buddies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aanand-mishra/timezone-buddy/internal/storage"
	"github.com/aanand-mishra/timezone-buddy/internal/types"
)

// ErrCorrupt means the stored blob could not be decoded. The blob is
// left untouched so it can be repaired by hand, or dropped with `reset`.
var ErrCorrupt = errors.New("stored buddy list is corrupt")

// ItemKey is the key under the namespace that holds the list.
const ItemKey = "buddies"

// Store loads and saves the whole list as one JSON array.
type Store struct {
	kv  storage.KeyValue
	key string
}

// NewStore returns a Store writing to "<namespace>:buddies" in kv.
func NewStore(kv storage.KeyValue, namespace string) *Store {
	key := ItemKey
	if namespace != "" {
		key = namespace + ":" + ItemKey
	}
	return &Store{kv: kv, key: key}
}

// Key is the storage key this Store reads and writes.
func (s *Store) Key() string { return s.key }

// Load returns the persisted list, or an empty list when nothing has
// been saved yet.
func (s *Store) Load(ctx context.Context) ([]types.Buddy, error) {
	raw, ok, err := s.kv.GetItem(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("Load: get %s: %w", s.key, err)
	}

	list := make([]types.Buddy, 0)
	if !ok || raw == "" {
		return list, nil
	}

	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("Load: %w: %v", ErrCorrupt, err)
	}
	if list == nil {
		// A stored "null" decodes to a nil slice.
		list = make([]types.Buddy, 0)
	}
	return list, nil
}

// Save replaces the persisted list with list.
func (s *Store) Save(ctx context.Context, list []types.Buddy) error {
	if list == nil {
		list = []types.Buddy{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("Save: encode: %w", err)
	}
	if err := s.kv.SetItem(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("Save: set %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the stored list, leaving the store as if nothing had
// ever been saved. It also drops a corrupt blob.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.RemoveItem(ctx, s.key); err != nil {
		return fmt.Errorf("Clear: remove %s: %w", s.key, err)
	}
	return nil
}
