// Package redis provides a Redis-backed key-value store, for sharing one
// note collection between several processes or machines.
package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cuebook/cuebook/pkg/core"
)

// DefaultPrefix namespaces every stored key inside Redis.
const DefaultPrefix = "cuebook:"

// Store implements core.Store on a Redis client.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore connects to Redis and verifies the connection.
func NewStore(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewStoreWithClient(client), nil
}

// NewStoreWithClient creates a store from an existing Redis client.
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client, prefix: DefaultPrefix}
}

func (s *Store) key(logical string) string {
	return s.prefix + logical
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value under key. Values never expire; namespaces live until
// explicitly removed.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes a key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Keys lists all logical keys under the store prefix, in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.KeysMatching(ctx, "")
}

// KeysMatching lists logical keys matching a doublestar pattern. An empty
// pattern matches everything. Enumeration uses SCAN, not KEYS, so it is
// safe against shared deployments.
func (s *Store) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		logical := iter.Val()[len(s.prefix):]
		if pattern != "" {
			match, err := doublestar.Match(pattern, logical)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		keys = append(keys, logical)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Ping verifies the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return map[string]any{
		"prefix": s.prefix,
		"addr":   s.client.Options().Addr,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string { return "redis-store" }

var (
	_ core.Store      = (*Store)(nil)
	_ core.Enumerable = (*Store)(nil)
	_ core.Pinger     = (*Store)(nil)
)
