package screen

import (
	"context"
	"sync"

	"github.com/aretw0/aura/pkg/domain"
)

// Slot holds the current LCE value of a screen.
// Readers never block the writer: a slow watcher only sees the latest value.
type Slot[T any] struct {
	mu       sync.Mutex
	value    domain.LCE[T]
	watchers map[chan domain.LCE[T]]func() bool
	closed   bool
}

func newSlot[T any](initial domain.LCE[T]) *Slot[T] {
	return &Slot[T]{
		value:    initial,
		watchers: make(map[chan domain.LCE[T]]func() bool),
	}
}

// Get returns the current value.
func (s *Slot[T]) Get() domain.LCE[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Watch delivers the current value and every later one until ctx is done or
// the slot is closed, then closes the channel.
func (s *Slot[T]) Watch(ctx context.Context) <-chan domain.LCE[T] {
	ch := make(chan domain.LCE[T], 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	ch <- s.value
	if s.closed {
		close(ch)
		return ch
	}

	s.watchers[ch] = context.AfterFunc(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.watchers[ch]; ok {
			delete(s.watchers, ch)
			close(ch)
		}
	})
	return ch
}

// set replaces the value and returns the previous one. It is a no-op once closed.
func (s *Slot[T]) set(v domain.LCE[T]) (domain.LCE[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.value
	if s.closed {
		return prev, false
	}
	s.value = v
	for ch := range s.watchers {
		offer(ch, v)
	}
	return prev, true
}

func (s *Slot[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for ch, stop := range s.watchers {
		stop()
		close(ch)
	}
	clear(s.watchers)
}

// offer replaces any pending value in ch with v. Only the slot sends on ch,
// under its lock, so the final send always has room.
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
