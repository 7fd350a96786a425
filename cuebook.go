package cuebook

import (
	"log/slog"

	"github.com/cuebook/cuebook/internal/platform"
	"github.com/cuebook/cuebook/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Namespace is a public alias for the per-page note/group dataset.
type Namespace = core.Namespace

// NotePatch is a public alias for partial note updates.
type NotePatch = core.NotePatch

// Position is a public alias for drop positions inside a group.
type Position = core.Position

// Event is a public alias for committed change notifications.
type Event = core.Event

// Repository is a public alias for the note/group repository.
type Repository = core.Repository

// Cascade selects what happens to a deleted group's member notes.
type Cascade = core.Cascade

// SentinelGroup is the reserved group name for ungrouped notes.
const SentinelGroup = core.SentinelGroup

const (
	CascadeDelete   = core.CascadeDelete
	CascadeReassign = core.CascadeReassign
)

// AtStart positions a note at the start of the target group.
func AtStart() Position { return core.AtStart() }

// AtEnd positions a note at the end of the target group.
func AtEnd() Position { return core.AtEnd() }

// Before positions a note directly before another note.
func Before(otherID string) Position { return core.Before(otherID) }

// --- Configuration ---

// Option defines a functional option for configuring cuebook.
type Option = platform.Option

// WithStore injects a custom storage backend.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the storage adapter by name: "fs", "memory" or "redis".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for the repository and its store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSystemDir overrides the fs adapter's hidden directory name.
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithEventBuffer sets the per-subscriber event buffer size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithSerializedWrites toggles the per-namespace write mutex.
func WithSerializedWrites(enabled bool) Option {
	return platform.WithSerializedWrites(enabled)
}

// --- Factory ---

// New creates a repository over the selected storage adapter. The URI is
// adapter-specific: a directory path for "fs", a connection string for
// "redis", ignored for "memory".
func New(uri string, opts ...Option) (*core.Repository, error) {
	return platform.New(uri, opts...)
}
