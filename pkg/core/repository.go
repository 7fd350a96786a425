package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuebook/cuebook/pkg/urlkey"
)

// Repository handles the business logic for notes and groups. Every
// operation is scoped to one namespace, addressed by a page URL that is
// normalized into a storage key.
//
// Operations follow mutate-then-commit: all collection logic runs on an
// in-memory copy and the only suspension points are the Store calls. When
// the final write fails the copy is discarded, never compensated, so the
// store is left exactly as the last successful write put it.
//
// Writers to the same namespace are serialized by an in-process keyed
// mutex (see WithSerializedWrites). Two uncoordinated processes still
// resolve as last-write-wins over the full collection.
type Repository struct {
	store           Store
	logger          *slog.Logger
	clock           func() time.Time
	newID           func() string
	serializeWrites bool

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	broker *broker
}

// Option defines a functional option for configuring the repository.
type Option func(*Repository)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithClock overrides the time source used for Created stamps and events.
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) { r.clock = clock }
}

// WithIDGenerator overrides note ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) { r.newID = fn }
}

// WithSerializedWrites toggles the per-namespace write mutex.
// Enabled by default; disable only when the caller already queues intents.
func WithSerializedWrites(enabled bool) Option {
	return func(r *Repository) { r.serializeWrites = enabled }
}

// WithEventBuffer sets the per-subscriber event buffer size.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(r *Repository) {
		if size > 0 {
			r.broker = newBroker(size)
		}
	}
}

// NewRepository creates a repository on top of a key-value store.
func NewRepository(store Store, opts ...Option) *Repository {
	r := &Repository{
		store:           store,
		clock:           time.Now,
		newID:           uuid.NewString,
		serializeWrites: true,
		locks:           make(map[string]*sync.Mutex),
		broker:          newBroker(defaultEventBuffer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// lockNamespace serializes writers for one normalized key.
func (r *Repository) lockNamespace(key string) func() {
	if !r.serializeWrites {
		return func() {}
	}
	r.mu.Lock()
	m, ok := r.locks[key]
	if !ok {
		m = &sync.Mutex{}
		r.locks[key] = m
	}
	r.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// load reads a namespace from the store, migrating and repairing it on the
// way in. Absent keys yield an empty namespace (lazy creation on first write).
func (r *Repository) load(ctx context.Context, key string) (Namespace, error) {
	rawNotes, _, err := r.store.Get(ctx, NotesKey(key))
	if err != nil {
		return Namespace{}, storageErr("load notes", err)
	}
	rawGroups, _, err := r.store.Get(ctx, GroupsKey(key))
	if err != nil {
		return Namespace{}, storageErr("load groups", err)
	}
	rawVersion, hasVersion, err := r.store.Get(ctx, SchemaKey(key))
	if err != nil {
		return Namespace{}, storageErr("load schema version", err)
	}

	version := 0
	if hasVersion {
		if v, err := strconv.Atoi(strings.TrimSpace(rawVersion)); err == nil {
			version = v
		}
	}

	ns, degraded := Migrate([]byte(rawNotes), []byte(rawGroups), version)
	if degraded && r.logger != nil {
		r.logger.Warn("namespace payload unreadable, starting empty", "key", key, "storedVersion", version)
	}
	ns.Key = key
	r.repair(&ns)
	return ns, nil
}

// commit persists the full namespace. Groups land before notes so a
// failure in between never leaves a note referencing an unwritten group.
func (r *Repository) commit(ctx context.Context, ns Namespace) error {
	groupsJSON, err := json.Marshal(ns.Groups)
	if err != nil {
		return fmt.Errorf("marshal groups: %w", err)
	}
	notesJSON, err := json.Marshal(ns.Notes)
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}

	if err := r.store.Set(ctx, GroupsKey(ns.Key), string(groupsJSON)); err != nil {
		return storageErr("write groups", err)
	}
	if err := r.store.Set(ctx, NotesKey(ns.Key), string(notesJSON)); err != nil {
		return storageErr("write notes", err)
	}
	if err := r.store.Set(ctx, SchemaKey(ns.Key), strconv.Itoa(ns.SchemaVersion)); err != nil {
		return storageErr("write schema version", err)
	}

	if r.logger != nil {
		r.logger.Debug("namespace committed", "key", ns.Key, "notes", len(ns.Notes), "groups", len(ns.Groups))
	}
	return nil
}

// repair enforces the namespace invariants in place: unique group names,
// unique note ids, deduplicated tags, and group references that resolve to
// an existing group or the sentinel. Reports whether anything changed.
func (r *Repository) repair(ns *Namespace) bool {
	changed := false

	groups := make([]string, 0, len(ns.Groups))
	seenGroups := make(map[string]struct{}, len(ns.Groups))
	for _, g := range ns.Groups {
		if g == "" || g == SentinelGroup {
			changed = true
			continue
		}
		if _, dup := seenGroups[g]; dup {
			changed = true
			continue
		}
		seenGroups[g] = struct{}{}
		groups = append(groups, g)
	}
	ns.Groups = groups

	seenIDs := make(map[string]struct{}, len(ns.Notes))
	for i := range ns.Notes {
		n := &ns.Notes[i]
		if n.ID == "" {
			n.ID = r.newID()
			changed = true
		} else if _, dup := seenIDs[n.ID]; dup {
			n.ID = r.newID()
			changed = true
		}
		seenIDs[n.ID] = struct{}{}

		if n.Group == "" {
			n.Group = SentinelGroup
			changed = true
		}
		if n.Group != SentinelGroup {
			if _, ok := seenGroups[n.Group]; !ok {
				n.Group = SentinelGroup
				changed = true
			}
		}

		deduped := dedupeStrings(n.Tags)
		if len(deduped) != len(n.Tags) {
			changed = true
		}
		n.Tags = deduped
	}
	return changed
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (r *Repository) event(t EventType, key, noteID, group string) {
	r.broker.publish(Event{
		Type:      t,
		Key:       key,
		NoteID:    noteID,
		Group:     group,
		Timestamp: r.clock().Unix(),
	})
}

// --- Read operations ---

// Namespace loads the full namespace for a page URL.
func (r *Repository) Namespace(ctx context.Context, rawURL string) (Namespace, error) {
	return r.load(ctx, urlkey.Normalize(rawURL))
}

// Notes returns the ordered note list for a page URL.
func (r *Repository) Notes(ctx context.Context, rawURL string) ([]Note, error) {
	ns, err := r.load(ctx, urlkey.Normalize(rawURL))
	if err != nil {
		return nil, err
	}
	return ns.Notes, nil
}

// Groups returns the ordered group list for a page URL.
func (r *Repository) Groups(ctx context.Context, rawURL string) ([]string, error) {
	ns, err := r.load(ctx, urlkey.Normalize(rawURL))
	if err != nil {
		return nil, err
	}
	return ns.Groups, nil
}

// --- Note operations ---

// NotePatch describes a partial note update. Nil fields are left unchanged.
type NotePatch struct {
	Text  *string
	Time  *string
	Group *string
	Tags  []string
}

// SetNotes bulk-replaces the note list. The caller owns ordering; the
// repository still repairs orphaned group references (reassigning them to
// the sentinel) and duplicate ids rather than rejecting the write.
func (r *Repository) SetNotes(ctx context.Context, rawURL string, notes []Note) error {
	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	ns.Notes = make([]Note, 0, len(notes))
	for _, n := range notes {
		ns.Notes = append(ns.Notes, n.Clone())
	}
	r.repair(&ns)
	return r.commit(ctx, ns)
}

// AddNote appends a note. An absent ID is assigned; empty text (after
// trimming) fails with ErrValidation; an unknown group lands in the sentinel.
func (r *Repository) AddNote(ctx context.Context, rawURL string, note Note) (Note, error) {
	note.Text = strings.TrimSpace(note.Text)
	if note.Text == "" {
		return Note{}, fmt.Errorf("%w: note text is empty", ErrValidation)
	}
	if !ValidTime(note.Time) {
		return Note{}, fmt.Errorf("%w: invalid timestamp %q", ErrValidation, note.Time)
	}

	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return Note{}, err
	}

	if note.ID == "" {
		note.ID = r.newID()
	} else {
		for _, existing := range ns.Notes {
			if existing.ID == note.ID {
				return Note{}, fmt.Errorf("%w: note id %q already exists", ErrConflict, note.ID)
			}
		}
	}
	if note.Group == "" || (note.Group != SentinelGroup && !containsString(ns.Groups, note.Group)) {
		note.Group = SentinelGroup
	}
	note.Tags = dedupeStrings(note.Tags)
	if note.Created == 0 {
		note.Created = r.clock().UnixMilli()
	}

	ns.Notes = append(ns.Notes, note)
	if err := r.commit(ctx, ns); err != nil {
		return Note{}, err
	}
	r.event(EventNoteAdded, key, note.ID, note.Group)
	return note, nil
}

// UpdateNote merges patch fields into an existing note.
func (r *Repository) UpdateNote(ctx context.Context, rawURL, id string, patch NotePatch) (Note, error) {
	if patch.Text != nil && strings.TrimSpace(*patch.Text) == "" {
		return Note{}, fmt.Errorf("%w: note text is empty", ErrValidation)
	}
	if patch.Time != nil && !ValidTime(*patch.Time) {
		return Note{}, fmt.Errorf("%w: invalid timestamp %q", ErrValidation, *patch.Time)
	}

	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return Note{}, err
	}

	idx := noteIndex(ns.Notes, id)
	if idx < 0 {
		return Note{}, fmt.Errorf("%w: note %q", ErrNotFound, id)
	}

	n := &ns.Notes[idx]
	if patch.Text != nil {
		n.Text = strings.TrimSpace(*patch.Text)
	}
	if patch.Time != nil {
		n.Time = *patch.Time
	}
	if patch.Group != nil {
		group := *patch.Group
		if group == "" || (group != SentinelGroup && !containsString(ns.Groups, group)) {
			group = SentinelGroup
		}
		n.Group = group
	}
	if patch.Tags != nil {
		n.Tags = dedupeStrings(patch.Tags)
	}

	updated := n.Clone()
	if err := r.commit(ctx, ns); err != nil {
		return Note{}, err
	}
	r.event(EventNoteUpdated, key, updated.ID, updated.Group)
	return updated, nil
}

// DeleteNote removes a note by id. Deleting an absent id is a no-op, not
// an error, so retries are safe. The pre-delete note list is snapshotted
// for a single-step undo.
func (r *Repository) DeleteNote(ctx context.Context, rawURL, id string) error {
	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return err
	}

	idx := noteIndex(ns.Notes, id)
	if idx < 0 {
		return nil
	}

	if err := r.snapshot(ctx, ns); err != nil {
		return err
	}
	group := ns.Notes[idx].Group
	ns.Notes = append(ns.Notes[:idx], ns.Notes[idx+1:]...)
	if err := r.commit(ctx, ns); err != nil {
		return err
	}
	r.event(EventNoteDeleted, key, id, group)
	return nil
}

// AddTag appends a tag to a note, suppressing duplicates.
func (r *Repository) AddTag(ctx context.Context, rawURL, id, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return fmt.Errorf("%w: tag is empty", ErrValidation)
	}

	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	idx := noteIndex(ns.Notes, id)
	if idx < 0 {
		return fmt.Errorf("%w: note %q", ErrNotFound, id)
	}
	if containsString(ns.Notes[idx].Tags, tag) {
		return nil
	}
	ns.Notes[idx].Tags = append(ns.Notes[idx].Tags, tag)
	if err := r.commit(ctx, ns); err != nil {
		return err
	}
	r.event(EventNoteUpdated, key, id, ns.Notes[idx].Group)
	return nil
}

// RemoveTag removes a tag from a note. Removing an absent tag is a no-op.
func (r *Repository) RemoveTag(ctx context.Context, rawURL, id, tag string) error {
	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	idx := noteIndex(ns.Notes, id)
	if idx < 0 {
		return fmt.Errorf("%w: note %q", ErrNotFound, id)
	}
	tags := ns.Notes[idx].Tags
	for i, t := range tags {
		if t == tag {
			ns.Notes[idx].Tags = append(tags[:i], tags[i+1:]...)
			if err := r.commit(ctx, ns); err != nil {
				return err
			}
			r.event(EventNoteUpdated, key, id, ns.Notes[idx].Group)
			return nil
		}
	}
	return nil
}

// ReplaceNamespace overwrites an entire namespace (import path). Invariants
// are repaired, not rejected.
func (r *Repository) ReplaceNamespace(ctx context.Context, rawURL string, ns Namespace) error {
	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	clone := ns.Clone()
	clone.Key = key
	clone.SchemaVersion = CurrentSchemaVersion
	r.repair(&clone)
	if err := r.commit(ctx, clone); err != nil {
		return err
	}
	r.event(EventRestored, key, "", "")
	return nil
}

func noteIndex(notes []Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// --- Capability passthroughs ---

// Watch observes external changes to stored keys if the store supports it.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := r.store.(Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// Keys lists all namespaces present in the store if it supports enumeration.
func (r *Repository) Keys(ctx context.Context) ([]string, error) {
	e, ok := r.store.(Enumerable)
	if !ok {
		return nil, errors.New("store does not support key enumeration")
	}
	keys, err := e.Keys(ctx)
	if err != nil {
		return nil, storageErr("list keys", err)
	}
	seen := make(map[string]struct{})
	var namespaces []string
	for _, k := range keys {
		kind, namespace, ok := SplitKey(k)
		if !ok || kind != KindNotes {
			continue
		}
		if _, dup := seen[namespace]; dup {
			continue
		}
		seen[namespace] = struct{}{}
		namespaces = append(namespaces, namespace)
	}
	return namespaces, nil
}

// Ping checks store liveness if the store supports it.
func (r *Repository) Ping(ctx context.Context) error {
	p, ok := r.store.(Pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}
