// Package observe is a small publish/subscribe primitive for state streams.
//
// A Feed remembers its latest value and replays it to each new subscriber.
// Publish never blocks: when a subscriber's buffer is full its oldest pending
// value is dropped, so a slow reader always ends on the latest state.
package observe

import "sync"

// DefaultBuffer is the per-subscriber buffer used when Subscribe is given n < 1.
const DefaultBuffer = 16

// Feed fans values out to subscribers. The zero value is ready to use.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   map[*Subscription[T]]struct{}
	last   T
	has    bool
	closed bool
}

// Subscription is one reader of a Feed.
type Subscription[T any] struct {
	C    <-chan T
	ch   chan T
	feed *Feed[T]
	once sync.Once
}

// Subscribe registers a reader with a buffer of n values. The latest published
// value, if any, is delivered immediately. Subscribing to a closed feed returns
// an already-closed subscription.
func (f *Feed[T]) Subscribe(n int) *Subscription[T] {
	if n < 1 {
		n = DefaultBuffer
	}
	ch := make(chan T, n)
	s := &Subscription[T]{C: ch, ch: ch, feed: f}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		close(ch)
		return s
	}
	if f.subs == nil {
		f.subs = make(map[*Subscription[T]]struct{})
	}
	f.subs[s] = struct{}{}
	if f.has {
		ch <- f.last
	}
	return s
}

// Publish records v as the latest value and offers it to every subscriber.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.last, f.has = v, true
	for s := range f.subs {
		offer(s.ch, v)
	}
}

// Latest returns the most recently published value.
func (f *Feed[T]) Latest() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.has
}

// Close ends the feed and closes every subscription channel. Further
// publications are ignored.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for s := range f.subs {
		close(s.ch)
	}
	f.subs = nil
}

// Cancel detaches the subscription and closes its channel.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		f := s.feed
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[s]; ok {
			delete(f.subs, s)
			close(s.ch)
		}
	})
}

// offer sends v, evicting the oldest buffered value when ch is full.
// Callers hold the feed lock, so there is a single sender per channel.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
