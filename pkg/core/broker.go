package core

import (
	"context"
	"sync"
)

const defaultEventBuffer = 100

// broker fans committed-change events out to subscribers. Each subscriber
// gets its own buffered channel; a slow consumer drops events rather than
// blocking writers.
type broker struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	size   int
}

func newBroker(size int) *broker {
	return &broker{
		subs: make(map[int]chan Event),
		size: size,
	}
}

func (b *broker) subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, b.size)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

func (b *broker) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *broker) subscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Subscribe returns a channel of events for every committed mutation made
// through this repository. The channel closes when ctx is cancelled.
// External writers are not observed here; see Watch.
func (r *Repository) Subscribe(ctx context.Context) <-chan Event {
	return r.broker.subscribe(ctx)
}
