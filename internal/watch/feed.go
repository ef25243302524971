// Package watch provides in-process live subscriptions to the latest value
// of a changing list or aggregate.
package watch

import "sync"

// Feed holds the most recently published value and fans it out to
// subscribers. A subscriber receives the current value on subscribe and then
// every later one; a slow subscriber only ever sees the newest value.
type Feed[T any] struct {
	mu     sync.Mutex
	value  T
	primed bool
	nextID int
	subs   map[int]chan T
}

// NewFeed returns an empty feed.
func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]chan T)}
}

// Publish replaces the current value and notifies subscribers.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.value = v
	f.primed = true
	for _, ch := range f.subs {
		offer(ch, v)
	}
}

// Current returns the last published value and whether one exists.
func (f *Feed[T]) Current() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.primed
}

// Subscribe registers a subscriber. The returned cancel func closes the
// channel and is safe to call more than once.
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan T, 1)
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	if f.primed {
		ch <- f.value
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// offer delivers v, dropping a stale undelivered value first. Callers hold
// f.mu, so there is a single producer per channel.
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
	ch <- v
}
