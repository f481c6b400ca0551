package broadcast

import (
	"context"
	"sync"
	"time"
)

// MemoryBroadcaster is a process-local Broadcaster. Safe for concurrent use.
type MemoryBroadcaster[T any] struct {
	subs    map[*subscriber[T]]struct{}
	size    int
	closed  bool
	mu      sync.RWMutex
	cleanup sync.WaitGroup
	done    chan struct{}
	now     func() time.Time
}

var _ Broadcaster[int] = (*MemoryBroadcaster[int])(nil)

// NewMemoryBroadcaster creates a broadcaster whose subscribers buffer up to
// bufferSize messages. Values below 1 are raised to 1.
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		subs: make(map[*subscriber[T]]struct{}),
		size: max(bufferSize, 1),
		done: make(chan struct{}),
		now:  time.Now,
	}
}

// Subscribe registers a new subscriber. When ctx is cancelled the subscriber
// is removed and closed. Subscribing to a closed broadcaster returns an
// already-closed subscriber.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](b.size)
	if b.closed {
		_ = sub.Close()
		return sub
	}
	b.subs[sub] = struct{}{}

	if done := ctx.Done(); done != nil {
		b.cleanup.Add(1)
		go func() {
			defer b.cleanup.Done()
			select {
			case <-done:
				b.remove(sub)
			case <-b.done:
			}
		}()
	}

	return sub
}

// Publish sends data to every subscriber. A lagging subscriber loses its
// oldest queued message instead of the new one. Closed subscribers are
// removed asynchronously.
func (b *MemoryBroadcaster[T]) Publish(_ context.Context, topic string, data T) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	msg := Message[T]{Topic: topic, Data: data, At: b.now()}
	for sub := range b.subs {
		if !sub.deliver(msg) {
			go b.remove(sub)
		}
	}
	return nil
}

// Len returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber. Safe to call more than once.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	for sub := range b.subs {
		_ = sub.Close()
	}
	clear(b.subs)
	b.mu.Unlock()

	b.cleanup.Wait()
	return nil
}

func (b *MemoryBroadcaster[T]) remove(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs, sub)
	_ = sub.Close()
}
