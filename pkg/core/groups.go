package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/cuebook/cuebook/pkg/urlkey"
)

// Cascade selects what happens to a deleted group's member notes.
type Cascade string

const (
	// CascadeDelete removes the member notes together with the group.
	CascadeDelete Cascade = "delete"
	// CascadeReassign moves the member notes to the sentinel group.
	CascadeReassign Cascade = "reassign"
)

// AddGroup appends a group name. Adding an existing group (or the sentinel,
// which is always implicitly valid) is a no-op, not an error.
func (r *Repository) AddGroup(ctx context.Context, rawURL, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: group name is empty", ErrValidation)
	}
	if name == SentinelGroup {
		return nil
	}

	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	if containsString(ns.Groups, name) {
		return nil
	}
	ns.Groups = append(ns.Groups, name)
	if err := r.commit(ctx, ns); err != nil {
		return err
	}
	r.event(EventGroupAdded, key, "", name)
	return nil
}

// RenameGroup renames a group and cascades the new name to every member
// note. Renaming onto an existing different group fails with ErrConflict;
// the sentinel name is reserved on both sides.
func (r *Repository) RenameGroup(ctx context.Context, rawURL, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: group name is empty", ErrValidation)
	}
	if oldName == SentinelGroup {
		return fmt.Errorf("%w: %q cannot be renamed", ErrValidation, SentinelGroup)
	}
	if newName == SentinelGroup {
		return fmt.Errorf("%w: %q is reserved", ErrConflict, SentinelGroup)
	}
	if oldName == newName {
		return nil
	}

	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	idx := -1
	for i, g := range ns.Groups {
		if g == oldName {
			idx = i
		}
		if g == newName {
			return fmt.Errorf("%w: group %q already exists", ErrConflict, newName)
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: group %q", ErrNotFound, oldName)
	}

	ns.Groups[idx] = newName
	for i := range ns.Notes {
		if ns.Notes[i].Group == oldName {
			ns.Notes[i].Group = newName
		}
	}
	if err := r.commit(ctx, ns); err != nil {
		return err
	}
	r.event(EventGroupRenamed, key, "", newName)
	return nil
}

// DeleteGroup removes a group. Member notes are deleted or reassigned to
// the sentinel according to cascade; no dangling reference survives either
// way. The pre-delete note list is snapshotted for undo.
func (r *Repository) DeleteGroup(ctx context.Context, rawURL, name string, cascade Cascade) error {
	if name == SentinelGroup {
		return fmt.Errorf("%w: %q cannot be deleted", ErrValidation, SentinelGroup)
	}
	if cascade != CascadeDelete && cascade != CascadeReassign {
		return fmt.Errorf("%w: unknown cascade mode %q", ErrValidation, cascade)
	}

	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	idx := -1
	for i, g := range ns.Groups {
		if g == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: group %q", ErrNotFound, name)
	}

	if err := r.snapshot(ctx, ns); err != nil {
		return err
	}

	ns.Groups = append(ns.Groups[:idx], ns.Groups[idx+1:]...)
	switch cascade {
	case CascadeDelete:
		kept := ns.Notes[:0]
		for _, n := range ns.Notes {
			if n.Group != name {
				kept = append(kept, n)
			}
		}
		ns.Notes = kept
	case CascadeReassign:
		for i := range ns.Notes {
			if ns.Notes[i].Group == name {
				ns.Notes[i].Group = SentinelGroup
			}
		}
	}

	if err := r.commit(ctx, ns); err != nil {
		return err
	}
	r.event(EventGroupDeleted, key, "", name)
	return nil
}
