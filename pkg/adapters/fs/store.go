// Package fs provides a filesystem-backed key-value store. Each logical
// key maps to one file inside the store directory; values are written
// atomically so a crash mid-write never leaves a torn record behind.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cuebook/cuebook/pkg/core"
)

const (
	// DefaultSystemDir is the directory name used when Config.SystemDir is empty.
	DefaultSystemDir = ".cuebook"
	fileExt          = ".json"
)

// Config holds the configuration for the filesystem store.
type Config struct {
	Path      string // store directory; created on Initialize
	SystemDir string // reserved subdirectory for internal files (locks, temp)
	ReadOnly  bool   // reject Set/Remove with core.ErrReadOnly
	Logger    *slog.Logger
}

// Store implements core.Store over one-file-per-key JSON documents.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// NewStore creates a filesystem store rooted at config.Path.
func NewStore(config Config) *Store {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Store{Path: config.Path, config: config}
}

// Initialize creates the store directory structure.
func (s *Store) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(s.Path, s.config.SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create system directory: %w", err)
	}
	return nil
}

// fileForKey maps a logical key to a path inside the store directory.
// The encoding is reversible, so Keys can recover the logical key from a
// directory listing.
func (s *Store) fileForKey(key string) string {
	return filepath.Join(s.Path, url.QueryEscape(key)+fileExt)
}

func keyForFile(name string) (string, bool) {
	if !strings.HasSuffix(name, fileExt) {
		return "", false
	}
	key, err := url.QueryUnescape(strings.TrimSuffix(name, fileExt))
	if err != nil {
		return "", false
	}
	return key, true
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.fileForKey(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set stores a value under key using an atomic temp-file rename.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.config.ReadOnly {
		return fmt.Errorf("%w: store is read-only", core.ErrReadOnly)
	}
	if err := writeFileAtomic(s.fileForKey(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if s.config.Logger != nil {
		s.config.Logger.Debug("key written", "key", key, "bytes", len(value))
	}
	return nil
}

// Remove deletes a key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.config.ReadOnly {
		return fmt.Errorf("%w: store is read-only", core.ErrReadOnly)
	}
	err := os.Remove(s.fileForKey(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists all logical keys in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.KeysMatching(ctx, "")
}

// KeysMatching lists logical keys matching a doublestar pattern. An empty
// pattern matches everything. Files the store did not write (no reversible
// key encoding) are skipped.
func (s *Store) KeysMatching(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list store directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, ok := keyForFile(entry.Name())
		if !ok {
			continue
		}
		if pattern != "" {
			match, err := doublestar.Match(pattern, key)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Ping verifies the store directory is reachable and writable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		return fmt.Errorf("store directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store path is not a directory: %s", s.Path)
	}
	return nil
}

// Watch emits an event whenever another process changes a stored key
// matching pattern. The returned channel closes when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, 64)
	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

var (
	_ core.Store      = (*Store)(nil)
	_ core.Enumerable = (*Store)(nil)
	_ core.Watchable  = (*Store)(nil)
	_ core.Pinger     = (*Store)(nil)
)
