// ABOUTME: Typed event bus connecting the judgment session to its observers
// ABOUTME: Synchronous delivery in subscription order; unsubscribe via closure

package eventbus

import "sync"

// Handler is a callback function for events.
type Handler[T any] func(T)

type subscriber[T any] struct {
	id      int
	handler Handler[T]
}

// Bus delivers events of one type to registered handlers. Delivery is
// synchronous and follows subscription order, so observers see a stable
// sequence.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   []subscriber[T]
	nextID int
}

// New creates a new event bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers a handler and returns an unsubscribe function.
func (b *Bus[T]) Subscribe(handler Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber[T]{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all registered handlers. The subscriber list is
// snapshotted first, so handlers may subscribe or unsubscribe freely.
func (b *Bus[T]) Publish(event T) {
	b.mu.RLock()
	snapshot := make([]Handler[T], len(b.subs))
	for i, s := range b.subs {
		snapshot[i] = s.handler
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(event)
	}
}

// Count returns the number of registered handlers.
func (b *Bus[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
