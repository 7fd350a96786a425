package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/cuebook/cuebook/pkg/core"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewStore("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	return store, mr
}

func TestNewStore(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewStore("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	if _, err := NewStore("not-a-url"); err == nil {
		t.Error("expected error for malformed url")
	}
}

func TestRoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	key := "notes::https://www.youtube.com/watch?v=abc"

	_, ok, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatal("expected absent key")
	}

	if err := store.Set(ctx, key, `[{"id":"n1"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || v != `[{"id":"n1"}]` {
		t.Errorf("unexpected value %q (ok=%v)", v, ok)
	}

	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := store.Remove(ctx, key); err != nil {
		t.Fatalf("Remove of absent key failed: %v", err)
	}
	_, ok, _ = store.Get(ctx, key)
	if ok {
		t.Error("expected key removed")
	}
}

func TestKeysArePrefixedInsideRedis(t *testing.T) {
	store, mr := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	if err := store.Set(ctx, "notes::a", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !mr.Exists(DefaultPrefix + "notes::a") {
		t.Error("expected prefixed key inside redis")
	}
}

func TestKeysMatching(t *testing.T) {
	store, mr := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	for _, k := range []string{"notes::a", "notes::b", "groups::a"} {
		if err := store.Set(ctx, k, "[]"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	// A key outside the store prefix must stay invisible.
	mr.Set("other-app:notes::x", "[]")

	notes, err := store.KeysMatching(ctx, "notes::*")
	if err != nil {
		t.Fatalf("KeysMatching failed: %v", err)
	}
	if len(notes) != 2 || notes[0] != "notes::a" || notes[1] != "notes::b" {
		t.Errorf("unexpected keys %v", notes)
	}

	all, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 keys, got %v", all)
	}
}

func TestBacksRepository(t *testing.T) {
	store, _ := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	repo := core.NewRepository(store)
	url := "https://www.youtube.com/watch?v=abc"

	note, err := repo.AddNote(ctx, url, core.Note{Text: "works over redis", Time: "0:42"})
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	notes, err := repo.Notes(ctx, url)
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != note.ID {
		t.Errorf("unexpected notes %+v", notes)
	}
}
