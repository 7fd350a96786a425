package core

import "context"

// Store defines the contract for the host key-value storage the repository
// persists into. Adhering to this interface keeps the core independent of
// the underlying mechanism (filesystem, Redis, memory, browser storage).
//
// Implementations may fail at any time (host context invalidated, connection
// lost); errors are opaque to the core, which surfaces them wrapped in
// ErrStorageUnavailable.
type Store interface {
	// Get retrieves the value for a key. ok is false when the key is absent;
	// absence is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set persists a value under a key, creating or replacing it.
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
}

// Enumerable is implemented by stores that can list their keys.
// Export and watch reconciliation rely on it.
type Enumerable interface {
	Keys(ctx context.Context) ([]string, error)
}

// Watchable is implemented by stores that can observe external changes to
// their keys (e.g. another process editing the vault directory).
// The pattern is a doublestar glob matched against logical keys.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Pinger is implemented by stores with a meaningful liveness check.
type Pinger interface {
	Ping(ctx context.Context) error
}
