package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cuebook/cuebook/pkg/core"
)

func TestAddGroup(t *testing.T) {
	store := newMemStore()
	repo := newTestRepo(store)
	ctx := context.Background()

	if err := repo.AddGroup(ctx, pageURL, "Chapters"); err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}
	sets := store.sets
	// Duplicate and sentinel adds are silent no-ops.
	if err := repo.AddGroup(ctx, pageURL, "Chapters"); err != nil {
		t.Fatalf("duplicate AddGroup failed: %v", err)
	}
	if err := repo.AddGroup(ctx, pageURL, core.SentinelGroup); err != nil {
		t.Fatalf("sentinel AddGroup failed: %v", err)
	}
	if store.sets != sets {
		t.Errorf("expected no writes for no-op adds")
	}
	if err := repo.AddGroup(ctx, pageURL, "  "); !errors.Is(err, core.ErrValidation) {
		t.Errorf("expected ErrValidation for blank name, got %v", err)
	}

	groups, _ := repo.Groups(ctx, pageURL)
	if len(groups) != 1 || groups[0] != "Chapters" {
		t.Fatalf("unexpected groups %v", groups)
	}
}

func TestRenameGroup_CascadesToNotes(t *testing.T) {
	repo := newTestRepo(newMemStore())
	seedNamespace(t, repo, []string{"Old", "Other"}, []core.Note{
		{ID: "n1", Text: "1", Group: "Old"},
		{ID: "n2", Text: "2", Group: "Other"},
		{ID: "n3", Text: "3", Group: "Old"},
	})
	ctx := context.Background()

	if err := repo.RenameGroup(ctx, pageURL, "Old", "New"); err != nil {
		t.Fatalf("RenameGroup failed: %v", err)
	}

	groups, _ := repo.Groups(ctx, pageURL)
	if groups[0] != "New" || groups[1] != "Other" {
		t.Errorf("unexpected groups after rename: %v", groups)
	}
	notes, _ := repo.Notes(ctx, pageURL)
	for _, n := range notes {
		if n.Group == "Old" {
			t.Errorf("note %s still references old name", n.ID)
		}
	}
	if notes[0].Group != "New" || notes[2].Group != "New" {
		t.Errorf("expected members renamed, got %+v", notes)
	}
	if notes[1].Group != "Other" {
		t.Errorf("expected non-member untouched, got %q", notes[1].Group)
	}
}

func TestRenameGroup_Errors(t *testing.T) {
	repo := newTestRepo(newMemStore())
	seedNamespace(t, repo, []string{"A", "B"}, nil)
	ctx := context.Background()

	if err := repo.RenameGroup(ctx, pageURL, "A", "B"); !errors.Is(err, core.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if err := repo.RenameGroup(ctx, pageURL, "Ghost", "X"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := repo.RenameGroup(ctx, pageURL, core.SentinelGroup, "X"); !errors.Is(err, core.ErrValidation) {
		t.Errorf("expected ErrValidation renaming sentinel, got %v", err)
	}
	if err := repo.RenameGroup(ctx, pageURL, "A", core.SentinelGroup); !errors.Is(err, core.ErrConflict) {
		t.Errorf("expected ErrConflict renaming onto sentinel, got %v", err)
	}
	if err := repo.RenameGroup(ctx, pageURL, "A", "A"); err != nil {
		t.Errorf("same-name rename should be a no-op, got %v", err)
	}
}

func TestDeleteGroup_CascadeDelete(t *testing.T) {
	repo := newTestRepo(newMemStore())
	seedNamespace(t, repo, []string{"Doomed", "Kept"}, []core.Note{
		{ID: "n1", Text: "1", Group: "Doomed"},
		{ID: "n2", Text: "2", Group: "Kept"},
		{ID: "n3", Text: "3", Group: "Doomed"},
	})
	ctx := context.Background()

	if err := repo.DeleteGroup(ctx, pageURL, "Doomed", core.CascadeDelete); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	notes, _ := repo.Notes(ctx, pageURL)
	if len(notes) != 1 || notes[0].ID != "n2" {
		t.Fatalf("expected member notes deleted, got %+v", notes)
	}
	groups, _ := repo.Groups(ctx, pageURL)
	if len(groups) != 1 || groups[0] != "Kept" {
		t.Fatalf("unexpected groups %v", groups)
	}
}

func TestDeleteGroup_CascadeReassign(t *testing.T) {
	repo := newTestRepo(newMemStore())
	seedNamespace(t, repo, []string{"Doomed"}, []core.Note{
		{ID: "n1", Text: "1", Group: "Doomed"},
	})
	ctx := context.Background()

	if err := repo.DeleteGroup(ctx, pageURL, "Doomed", core.CascadeReassign); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	notes, _ := repo.Notes(ctx, pageURL)
	if len(notes) != 1 || notes[0].Group != core.SentinelGroup {
		t.Fatalf("expected note reassigned to sentinel, got %+v", notes)
	}
}

func TestDeleteGroup_Errors(t *testing.T) {
	repo := newTestRepo(newMemStore())
	seedNamespace(t, repo, []string{"A"}, nil)
	ctx := context.Background()

	if err := repo.DeleteGroup(ctx, pageURL, core.SentinelGroup, core.CascadeDelete); !errors.Is(err, core.ErrValidation) {
		t.Errorf("expected ErrValidation deleting sentinel, got %v", err)
	}
	if err := repo.DeleteGroup(ctx, pageURL, "A", core.Cascade("purge")); !errors.Is(err, core.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown cascade, got %v", err)
	}
	if err := repo.DeleteGroup(ctx, pageURL, "Ghost", core.CascadeDelete); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
