package platform

import (
	"log/slog"

	"github.com/cuebook/cuebook/pkg/core"
)

// options holds the internal configuration assembled by the factory.
type options struct {
	store   core.Store
	logger  *slog.Logger
	adapter string
	config  map[string]any
}

// Option defines a functional option for configuring the factory.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		config:  make(map[string]any),
	}
}

// WithStore injects a custom storage backend (e.g. mock, browser bridge).
// If provided, adapter selection is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name: "fs", "memory" or
// "redis". Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithLogger sets the logger for the repository and its store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSystemDir overrides the hidden directory name used by the fs
// adapter. Defaults to ".cuebook".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithReadOnly enables read-only mode: write operations fail with
// ErrReadOnly and nothing on disk is touched.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithEventBuffer sets the per-subscriber event buffer size.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithSerializedWrites toggles the per-namespace write mutex.
// Enabled by default.
func WithSerializedWrites(enabled bool) Option {
	return func(o *options) {
		o.config["serialized_writes"] = enabled
	}
}
