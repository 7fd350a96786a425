package reorder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cuebook/cuebook/pkg/adapters/memory"
	"github.com/cuebook/cuebook/pkg/core"
	"github.com/cuebook/cuebook/pkg/reorder"
)

const pageURL = "https://www.youtube.com/watch?v=abc"

func seededRepo(t *testing.T) *core.Repository {
	t.Helper()
	repo := core.NewRepository(memory.NewStore())
	ctx := context.Background()
	for _, g := range []string{"A", "B"} {
		if err := repo.AddGroup(ctx, pageURL, g); err != nil {
			t.Fatalf("AddGroup failed: %v", err)
		}
	}
	err := repo.SetNotes(ctx, pageURL, []core.Note{
		{ID: "n1", Text: "1", Group: "A"},
		{ID: "n2", Text: "2", Group: "A"},
		{ID: "n3", Text: "3", Group: "B"},
	})
	if err != nil {
		t.Fatalf("SetNotes failed: %v", err)
	}
	return repo
}

func TestSession_NoteDragOntoNote(t *testing.T) {
	repo := seededRepo(t)
	s := reorder.NewSession()

	if err := s.BeginNote("n3"); err != nil {
		t.Fatalf("BeginNote failed: %v", err)
	}
	if !s.Active() {
		t.Fatal("expected active session")
	}
	// The pointer wanders before settling; only the last hover counts.
	if err := s.HoverGroupEnd("A"); err != nil {
		t.Fatalf("HoverGroupEnd failed: %v", err)
	}
	if err := s.HoverNote("n1", "A"); err != nil {
		t.Fatalf("HoverNote failed: %v", err)
	}

	intent, err := s.Drop()
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if s.Active() {
		t.Error("expected session reset after drop")
	}
	if err := intent.Apply(context.Background(), repo, pageURL); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	notes, _ := repo.Notes(context.Background(), pageURL)
	if notes[0].ID != "n3" || notes[0].Group != "A" {
		t.Errorf("expected n3 first in group A, got %+v", notes)
	}
}

func TestSession_NoteDragToGroupEdges(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	s := reorder.NewSession()
	if err := s.BeginNote("n1"); err != nil {
		t.Fatalf("BeginNote failed: %v", err)
	}
	if err := s.HoverGroupEnd("B"); err != nil {
		t.Fatalf("HoverGroupEnd failed: %v", err)
	}
	intent, err := s.Drop()
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if err := intent.Apply(ctx, repo, pageURL); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	notes, _ := repo.Notes(ctx, pageURL)
	last := notes[len(notes)-1]
	if last.ID != "n1" || last.Group != "B" {
		t.Errorf("expected n1 at end of B, got %+v", notes)
	}
}

func TestSession_GroupDrag(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	s := reorder.NewSession()
	if err := s.BeginGroup("B"); err != nil {
		t.Fatalf("BeginGroup failed: %v", err)
	}
	if err := s.HoverBeforeGroup("A"); err != nil {
		t.Fatalf("HoverBeforeGroup failed: %v", err)
	}
	intent, err := s.Drop()
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if err := intent.Apply(ctx, repo, pageURL); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	groups, _ := repo.Groups(ctx, pageURL)
	if groups[0] != "B" || groups[1] != "A" {
		t.Errorf("expected B before A, got %v", groups)
	}
}

func TestSession_StateErrors(t *testing.T) {
	s := reorder.NewSession()

	if _, err := s.Drop(); !errors.Is(err, reorder.ErrNotDragging) {
		t.Errorf("expected ErrNotDragging, got %v", err)
	}
	if err := s.HoverNote("x", "A"); !errors.Is(err, reorder.ErrNotDragging) {
		t.Errorf("expected ErrNotDragging, got %v", err)
	}

	if err := s.BeginNote("n1"); err != nil {
		t.Fatalf("BeginNote failed: %v", err)
	}
	if err := s.BeginGroup("A"); !errors.Is(err, reorder.ErrAlreadyDragging) {
		t.Errorf("expected ErrAlreadyDragging, got %v", err)
	}
	if _, err := s.Drop(); !errors.Is(err, reorder.ErrNoTarget) {
		t.Errorf("expected ErrNoTarget, got %v", err)
	}
	if s.Active() {
		t.Error("expected reset after failed drop")
	}

	// A group drag only accepts group headers as targets.
	if err := s.BeginGroup("A"); err != nil {
		t.Fatalf("BeginGroup failed: %v", err)
	}
	if err := s.HoverNote("n1", "A"); !errors.Is(err, reorder.ErrNotDragging) {
		t.Errorf("expected ErrNotDragging for note hover during group drag, got %v", err)
	}
	s.Cancel()
	if s.Active() {
		t.Error("expected idle after cancel")
	}
}
