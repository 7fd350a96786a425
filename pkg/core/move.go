package core

import (
	"context"
	"fmt"

	"github.com/cuebook/cuebook/pkg/urlkey"
)

// PositionKind selects where inside a target group a moved note lands.
type PositionKind int

const (
	// PositionStart inserts before the group's first note.
	PositionStart PositionKind = iota
	// PositionEnd inserts after the group's last note.
	PositionEnd
	// PositionBefore inserts directly before another note.
	PositionBefore
)

// Position is a drop target inside a group's display order.
type Position struct {
	Kind    PositionKind
	OtherID string // set for PositionBefore
}

// AtStart positions a note at the start of the target group.
func AtStart() Position { return Position{Kind: PositionStart} }

// AtEnd positions a note at the end of the target group.
func AtEnd() Position { return Position{Kind: PositionEnd} }

// Before positions a note directly before another note.
func Before(otherID string) Position {
	return Position{Kind: PositionBefore, OtherID: otherID}
}

// MoveNote relocates a note across groups and within a group's display
// order in one atomic write. The note list stays a single flat sequence:
// the note is spliced out, its group is updated, and the insertion index is
// computed against the post-removal list, so a move can never duplicate or
// drop a note.
//
// The target group is re-validated at commit time; if it vanished since the
// drag started (concurrent rename or delete), the note lands in the
// sentinel group. Dropping a note onto its own position is a no-op and
// causes no write.
func (r *Repository) MoveNote(ctx context.Context, rawURL, id, targetGroup string, pos Position) error {
	if pos.Kind == PositionBefore && pos.OtherID == id {
		return nil
	}

	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return err
	}

	draggedIdx := noteIndex(ns.Notes, id)
	if draggedIdx < 0 {
		return fmt.Errorf("%w: note %q", ErrNotFound, id)
	}

	if targetGroup == "" || (targetGroup != SentinelGroup && !containsString(ns.Groups, targetGroup)) {
		targetGroup = SentinelGroup
	}

	note := ns.Notes[draggedIdx]
	rest := make([]Note, 0, len(ns.Notes)-1)
	rest = append(rest, ns.Notes[:draggedIdx]...)
	rest = append(rest, ns.Notes[draggedIdx+1:]...)

	insertAt, err := insertionIndex(rest, targetGroup, pos)
	if err != nil {
		return err
	}

	if note.Group == targetGroup && insertAt == draggedIdx {
		return nil
	}

	note.Group = targetGroup
	merged := make([]Note, 0, len(rest)+1)
	merged = append(merged, rest[:insertAt]...)
	merged = append(merged, note)
	merged = append(merged, rest[insertAt:]...)
	ns.Notes = merged

	if err := r.commit(ctx, ns); err != nil {
		return err
	}
	r.event(EventNoteMoved, key, id, targetGroup)
	return nil
}

// insertionIndex resolves a Position into an index in the post-removal list.
func insertionIndex(rest []Note, targetGroup string, pos Position) (int, error) {
	switch pos.Kind {
	case PositionStart:
		for i, n := range rest {
			if n.Group == targetGroup {
				return i, nil
			}
		}
		return len(rest), nil
	case PositionEnd:
		last := -1
		for i, n := range rest {
			if n.Group == targetGroup {
				last = i
			}
		}
		if last < 0 {
			return len(rest), nil
		}
		return last + 1, nil
	case PositionBefore:
		for i, n := range rest {
			if n.ID == pos.OtherID {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: note %q", ErrNotFound, pos.OtherID)
	default:
		return 0, fmt.Errorf("%w: unknown position kind %d", ErrValidation, pos.Kind)
	}
}

// MoveGroup relocates a group before another named group. Moving a group
// relative to itself, or naming an absent group on either side, is a silent
// no-op; so is a move that leaves the order unchanged.
func (r *Repository) MoveGroup(ctx context.Context, rawURL, name, beforeName string) error {
	if name == beforeName {
		return nil
	}

	key := urlkey.Normalize(rawURL)
	unlock := r.lockNamespace(key)
	defer unlock()

	ns, err := r.load(ctx, key)
	if err != nil {
		return err
	}

	from := -1
	for i, g := range ns.Groups {
		if g == name {
			from = i
			break
		}
	}
	if from < 0 {
		return nil
	}

	rest := make([]string, 0, len(ns.Groups)-1)
	rest = append(rest, ns.Groups[:from]...)
	rest = append(rest, ns.Groups[from+1:]...)

	to := -1
	for i, g := range rest {
		if g == beforeName {
			to = i
			break
		}
	}
	if to < 0 {
		return nil
	}
	if to == from {
		return nil
	}

	merged := make([]string, 0, len(rest)+1)
	merged = append(merged, rest[:to]...)
	merged = append(merged, name)
	merged = append(merged, rest[to:]...)
	ns.Groups = merged

	if err := r.commit(ctx, ns); err != nil {
		return err
	}
	r.event(EventGroupMoved, key, "", name)
	return nil
}
