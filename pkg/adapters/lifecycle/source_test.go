package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/cuebook/cuebook/pkg/core"
)

func TestSourceBridgesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 1)
	src := NewSource(in)
	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	sent := core.Event{Type: core.EventNoteAdded, Key: "k", NoteID: "n1"}
	in <- sent

	select {
	case got := <-src.Events():
		if got.String() != sent.String() {
			t.Errorf("expected %q, got %q", sent.String(), got.String())
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for bridged event")
	}
}

func TestSourceClosesWithInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event)
	src := NewSource(in)
	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	close(in)

	select {
	case _, ok := <-src.Events():
		if ok {
			t.Error("expected closed output channel")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}
