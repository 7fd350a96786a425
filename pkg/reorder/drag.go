// Package reorder translates drag gestures over notes and groups into
// repository move intents.
//
// A Session is an explicit state machine owned by the caller: begin a drag,
// feed it hover updates as the pointer crosses drop targets, then drop or
// cancel. Dropping yields an Intent describing a single move, which the
// caller applies against a repository. The session itself never touches
// storage, so an abandoned drag costs nothing.
package reorder

import (
	"context"
	"errors"

	"github.com/cuebook/cuebook/pkg/core"
)

var (
	// ErrAlreadyDragging is returned when a drag begins while one is active.
	ErrAlreadyDragging = errors.New("reorder: drag already in progress")
	// ErrNotDragging is returned for hover or drop without an active drag.
	ErrNotDragging = errors.New("reorder: no drag in progress")
	// ErrNoTarget is returned for a drop before any hover target was set.
	ErrNoTarget = errors.New("reorder: no drop target")
)

type dragKind int

const (
	dragNone dragKind = iota
	dragNote
	dragGroup
)

type targetKind int

const (
	targetNone targetKind = iota
	targetNote
	targetGroupStart
	targetGroupEnd
	targetBeforeGroup
)

// Session tracks one in-flight drag gesture.
type Session struct {
	kind dragKind

	noteID    string
	groupName string

	target      targetKind
	otherNoteID string
	targetGroup string
}

// NewSession creates an idle drag session.
func NewSession() *Session {
	return &Session{}
}

// Active reports whether a drag is in progress.
func (s *Session) Active() bool {
	return s.kind != dragNone
}

// BeginNote starts dragging a note.
func (s *Session) BeginNote(noteID string) error {
	if s.kind != dragNone {
		return ErrAlreadyDragging
	}
	if noteID == "" {
		return core.ErrValidation
	}
	s.kind = dragNote
	s.noteID = noteID
	return nil
}

// BeginGroup starts dragging a group header.
func (s *Session) BeginGroup(name string) error {
	if s.kind != dragNone {
		return ErrAlreadyDragging
	}
	if name == "" {
		return core.ErrValidation
	}
	s.kind = dragGroup
	s.groupName = name
	return nil
}

// HoverNote marks another note as the current drop target; the dragged
// note would land directly before it, inside that note's group.
func (s *Session) HoverNote(otherID, group string) error {
	if s.kind != dragNote {
		return ErrNotDragging
	}
	s.target = targetNote
	s.otherNoteID = otherID
	s.targetGroup = group
	return nil
}

// HoverGroupStart marks the head of a group as the drop target.
func (s *Session) HoverGroupStart(group string) error {
	if s.kind != dragNote {
		return ErrNotDragging
	}
	s.target = targetGroupStart
	s.otherNoteID = ""
	s.targetGroup = group
	return nil
}

// HoverGroupEnd marks the tail of a group as the drop target.
func (s *Session) HoverGroupEnd(group string) error {
	if s.kind != dragNote {
		return ErrNotDragging
	}
	s.target = targetGroupEnd
	s.otherNoteID = ""
	s.targetGroup = group
	return nil
}

// HoverBeforeGroup marks a group header as the drop slot for a dragged
// group; the dragged group would land directly before it.
func (s *Session) HoverBeforeGroup(group string) error {
	if s.kind != dragGroup {
		return ErrNotDragging
	}
	s.target = targetBeforeGroup
	s.targetGroup = group
	return nil
}

// Cancel abandons the drag and resets the session.
func (s *Session) Cancel() {
	*s = Session{}
}

// Drop finishes the drag and returns the resulting move intent. The
// session resets to idle whether or not the drop resolves to a target.
func (s *Session) Drop() (Intent, error) {
	defer s.Cancel()

	if s.kind == dragNone {
		return Intent{}, ErrNotDragging
	}
	if s.target == targetNone {
		return Intent{}, ErrNoTarget
	}

	switch s.kind {
	case dragNote:
		intent := Intent{NoteID: s.noteID, TargetGroup: s.targetGroup}
		switch s.target {
		case targetNote:
			intent.Position = core.Before(s.otherNoteID)
		case targetGroupStart:
			intent.Position = core.AtStart()
		case targetGroupEnd:
			intent.Position = core.AtEnd()
		default:
			return Intent{}, ErrNoTarget
		}
		return intent, nil
	case dragGroup:
		return Intent{GroupName: s.groupName, BeforeGroup: s.targetGroup}, nil
	default:
		return Intent{}, ErrNotDragging
	}
}

// Intent is one resolved move. Either NoteID or GroupName is set.
type Intent struct {
	NoteID      string
	TargetGroup string
	Position    core.Position

	GroupName   string
	BeforeGroup string
}

// Apply executes the intent against a repository.
func (in Intent) Apply(ctx context.Context, repo *core.Repository, rawURL string) error {
	if in.GroupName != "" {
		return repo.MoveGroup(ctx, rawURL, in.GroupName, in.BeforeGroup)
	}
	return repo.MoveNote(ctx, rawURL, in.NoteID, in.TargetGroup, in.Position)
}
