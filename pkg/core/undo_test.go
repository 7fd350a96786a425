package core_test

import (
	"context"
	"testing"

	"github.com/cuebook/cuebook/pkg/core"
)

func TestUndo_RestoresDeletedNote(t *testing.T) {
	repo := newTestRepo(newMemStore())
	seedNamespace(t, repo, []string{"A"}, []core.Note{
		{ID: "n1", Text: "1", Group: "A"},
		{ID: "n2", Text: "2", Group: "A"},
		{ID: "n3", Text: "3", Group: core.SentinelGroup},
	})
	ctx := context.Background()

	if err := repo.DeleteNote(ctx, pageURL, "n2"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	assertOrder(t, repo, "n1", "n3")

	restored, err := repo.Undo(ctx, pageURL)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !restored {
		t.Fatal("expected a restore")
	}
	assertOrder(t, repo, "n1", "n2", "n3")
}

func TestUndo_NothingToUndo(t *testing.T) {
	repo := newTestRepo(newMemStore())

	restored, err := repo.Undo(context.Background(), pageURL)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if restored {
		t.Fatal("expected nothing to restore")
	}
}

func TestUndo_LastDestructiveOpWins(t *testing.T) {
	repo := newTestRepo(newMemStore())
	seedNamespace(t, repo, []string{}, []core.Note{
		{ID: "n1", Text: "1"},
		{ID: "n2", Text: "2"},
		{ID: "n3", Text: "3"},
	})
	ctx := context.Background()

	if err := repo.DeleteNote(ctx, pageURL, "n1"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if err := repo.DeleteNote(ctx, pageURL, "n2"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}

	// Only the second delete is reversible: n1 stays gone.
	restored, err := repo.Undo(ctx, pageURL)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !restored {
		t.Fatal("expected a restore")
	}
	assertOrder(t, repo, "n2", "n3")

	// The snapshot is consumed; a second undo finds nothing.
	restored, err = repo.Undo(ctx, pageURL)
	if err != nil {
		t.Fatalf("second Undo failed: %v", err)
	}
	if restored {
		t.Fatal("expected snapshot to be consumed")
	}
}

func TestUndo_GroupDeleteReaddsReferencedGroup(t *testing.T) {
	repo := newTestRepo(newMemStore())
	seedNamespace(t, repo, []string{"Doomed", "Kept"}, []core.Note{
		{ID: "n1", Text: "1", Group: "Doomed"},
		{ID: "n2", Text: "2", Group: "Kept"},
	})
	ctx := context.Background()

	if err := repo.DeleteGroup(ctx, pageURL, "Doomed", core.CascadeDelete); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	restored, err := repo.Undo(ctx, pageURL)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !restored {
		t.Fatal("expected a restore")
	}

	assertOrder(t, repo, "n1", "n2")
	groups, _ := repo.Groups(ctx, pageURL)
	if len(groups) != 2 || groups[0] != "Kept" || groups[1] != "Doomed" {
		t.Fatalf("expected referenced group re-added at the end, got %v", groups)
	}
	notes, _ := repo.Notes(ctx, pageURL)
	if notes[0].Group != "Doomed" {
		t.Errorf("expected restored note to keep its group, got %q", notes[0].Group)
	}
}

func TestUndo_CorruptSnapshotDiscarded(t *testing.T) {
	store := newMemStore()
	repo := newTestRepo(store)
	ctx := context.Background()

	key := core.UndoKey("https://www.youtube.com/watch?v=abc")
	store.data[key] = "{not json"

	restored, err := repo.Undo(ctx, pageURL)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if restored {
		t.Fatal("expected no restore from a corrupt snapshot")
	}
	if _, ok := store.data[key]; ok {
		t.Error("expected corrupt snapshot to be cleared")
	}
}
