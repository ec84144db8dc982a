package library

import (
	"context"
	"sync"
)

// broadcaster fans a value out to every subscriber. Channels are buffered
// one deep and emissions are full snapshots, so a slow subscriber simply
// has its pending snapshot replaced by the newest one rather than blocking
// publishers.
type broadcaster[T any] struct {
	mu   sync.Mutex
	subs map[int]chan T
	next int
}

func newBroadcaster[T any]() *broadcaster[T] {
	return &broadcaster[T]{subs: make(map[int]chan T)}
}

// subscribe registers a channel that receives every published snapshot
// until ctx is done.
func (b *broadcaster[T]) subscribe(ctx context.Context) chan T {
	ch := make(chan T, 1)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}()

	return ch
}

// publish delivers a snapshot to all subscribers, replacing any pending
// undelivered snapshot.
func (b *broadcaster[T]) publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		offer(ch, v)
	}
}

// seedOffer delivers the initial snapshot to a fresh subscription. Unlike
// publish it never evicts: a mutation snapshot that landed between
// subscribe and the seed read is newer and must win.
func seedOffer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

// offer pushes v into ch, evicting a stale pending value when the buffer
// is full.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
