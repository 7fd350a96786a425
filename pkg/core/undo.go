package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cuebook/cuebook/pkg/urlkey"
)

// snapshot persists the current note list as the namespace's undo buffer.
// At most one snapshot is retained; each destructive operation overwrites
// the previous one (last destructive op wins).
func (r *Repository) snapshot(ctx context.Context, ns Namespace) error {
	data, err := json.Marshal(ns.Notes)
	if err != nil {
		return fmt.Errorf("marshal undo snapshot: %w", err)
	}
	if err := r.store.Set(ctx, UndoKey(ns.Key), string(data)); err != nil {
		return storageErr("write undo snapshot", err)
	}
	return nil
}

// Undo restores the most recent snapshot and clears it. With no snapshot
// present it reports restored=false and no error ("nothing to undo").
//
// Only the note list is snapshotted. A restore after a cascading group
// delete re-adds groups the restored notes reference, appended at the end
// of the group list, so no reference dangles.
func (r *Repository) Undo(ctx context.Context, rawURL string) (restored bool, err error) {
	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	raw, ok, err := r.store.Get(ctx, UndoKey(key))
	if err != nil {
		return false, storageErr("load undo snapshot", err)
	}
	if !ok || raw == "" || raw == "null" {
		return false, nil
	}

	var notes []Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		// A snapshot we cannot read is a snapshot we cannot restore;
		// drop it so the next destructive op starts clean.
		if r.logger != nil {
			r.logger.Warn("discarding unreadable undo snapshot", "key", key, "error", err)
		}
		if err := r.store.Remove(ctx, UndoKey(key)); err != nil {
			return false, storageErr("clear undo snapshot", err)
		}
		return false, nil
	}

	ns, err := r.load(ctx, key)
	if err != nil {
		return false, err
	}
	ns.Notes = notes
	for _, n := range ns.Notes {
		if n.Group != SentinelGroup && n.Group != "" && !containsString(ns.Groups, n.Group) {
			ns.Groups = append(ns.Groups, n.Group)
		}
	}
	r.repair(&ns)

	if err := r.commit(ctx, ns); err != nil {
		return false, err
	}
	if err := r.store.Remove(ctx, UndoKey(key)); err != nil {
		return true, storageErr("clear undo snapshot", err)
	}
	r.event(EventRestored, key, "", "")
	return true, nil
}
