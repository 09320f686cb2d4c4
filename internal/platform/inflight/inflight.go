// Package inflight counts outstanding backend calls.
//
// Every acquisition returns its own Release; calling it more than once has no
// further effect, so the count can never go negative.
package inflight

import (
	"sync"
	"sync/atomic"
)

// Release gives back one acquisition. It is safe to call repeatedly.
type Release func()

// Tracker is a reference counter with change subscribers. The zero value is
// ready to use.
//
// Changes are applied and delivered one at a time, so subscribers observe
// counts in the order they happened and the last value delivered is the
// current count. Subscribers must not acquire from the tracker they watch.
type Tracker struct {
	count atomic.Int64

	// change serializes a count update with its delivery.
	change sync.Mutex

	mu     sync.Mutex
	nextID int
	subs   map[int]func(int64)
}

// Acquire increments the count and returns the matching release.
func (t *Tracker) Acquire() Release {
	t.add(1)
	var once sync.Once
	return func() {
		once.Do(func() { t.add(-1) })
	}
}

// Track holds one acquisition for the duration of fn.
func (t *Tracker) Track(fn func() error) error {
	release := t.Acquire()
	defer release()
	return fn()
}

// Count reports the number of outstanding acquisitions.
func (t *Tracker) Count() int64 {
	return t.count.Load()
}

// Subscribe registers fn to receive the count after every change. The
// returned function removes the subscription.
func (t *Tracker) Subscribe(fn func(int64)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	t.mu.Lock()
	if t.subs == nil {
		t.subs = make(map[int]func(int64))
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

func (t *Tracker) add(delta int64) {
	t.change.Lock()
	defer t.change.Unlock()
	count := t.count.Add(delta)

	t.mu.Lock()
	subs := make([]func(int64), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()
	for _, fn := range subs {
		fn(count)
	}
}
