// Package favorites keeps the visitor's favorite champions in a durable
// storage slot. Every toggle writes the whole list back synchronously.
package favorites

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/DoyleJ11/lol-portal/internal/storage"
)

// DefaultKey is the slot key favorites are stored under.
const DefaultKey = "lol-favorites"

// StorageError wraps a failed read or write of the favorites slot.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("favorites %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is the favorite set for one slot key. Names keep insertion order.
type Store struct {
	slot   storage.Slot
	key    string
	logger *zap.Logger

	mu    sync.RWMutex
	names []string
}

// Open reads the slot. Absent or unreadable data gives an empty set; the
// problem is logged and never returned.
func Open(ctx context.Context, slot storage.Slot, key string, logger *zap.Logger) *Store {
	s := &Store{slot: slot, key: key, logger: logger}
	names, err := s.read(ctx)
	if err != nil {
		logger.Warn("favorites unreadable, starting empty", zap.String("key", key), zap.Error(err))
		return s
	}
	s.names = names
	return s
}

func (s *Store) read(ctx context.Context) ([]string, error) {
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, &StorageError{Op: "read", Key: s.key, Err: err}
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var names []string
	if err := sonic.Unmarshal(raw, &names); err != nil {
		return nil, &StorageError{Op: "decode", Key: s.key, Err: err}
	}
	return dedupe(names), nil
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func (s *Store) IsFavorite(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.names, name)
}

func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.names)
}

// Toggle flips membership of name and persists the full list. It returns the
// new membership. When the write fails the set is left as it was.
func (s *Store) Toggle(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.names
	var added bool
	if i := slices.Index(prev, name); i == -1 {
		s.names = append(slices.Clone(prev), name)
		added = true
	} else {
		s.names = slices.Delete(slices.Clone(prev), i, i+1)
	}

	if err := s.persist(ctx); err != nil {
		s.names = prev
		return !added, err
	}
	return added, nil
}

func (s *Store) persist(ctx context.Context) error {
	names := s.names
	if names == nil {
		names = []string{}
	}
	raw, err := sonic.Marshal(names)
	if err != nil {
		return &StorageError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.slot.Put(ctx, s.key, raw); err != nil {
		return &StorageError{Op: "write", Key: s.key, Err: err}
	}
	return nil
}
