// Package memory provides an in-memory key-value store. It backs tests,
// examples and short-lived tooling where persistence is not wanted.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cuebook/cuebook/pkg/core"
)

// Store implements core.Store over a mutex-guarded map.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores a value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Remove deletes a key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys lists all stored keys, optionally filtered by a glob pattern, in
// lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.KeysMatching(ctx, "")
}

// KeysMatching lists keys matching a doublestar pattern. An empty pattern
// matches everything.
func (s *Store) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if pattern != "" {
			ok, err := doublestar.Match(pattern, k)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return map[string]any{"keys": s.Len()}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string { return "memory-store" }

var (
	_ core.Store      = (*Store)(nil)
	_ core.Enumerable = (*Store)(nil)
)
