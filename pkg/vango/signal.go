package vango

import (
	"reflect"
	"sync"
)

// Signal is a reactive value container.
type Signal[T any] struct {
	id uint64

	mu    sync.RWMutex
	value T

	subMu sync.RWMutex
	subs  []Listener

	// equal decides whether a write changed the value.
	// If nil, defaultEquals is used.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		id:    nextID(),
		value: initial,
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update atomically reads and replaces the value.
// The function receives the current value and returns the new one.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	next := fn(old)
	changed := !s.equals(old, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Subscribe registers a listener and returns a function that removes it.
// Subscribing the same listener twice has no effect.
func (s *Signal[T]) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}

	s.subMu.Lock()
	lid := l.ID()
	dup := false
	for _, existing := range s.subs {
		if existing.ID() == lid {
			dup = true
			break
		}
	}
	if !dup {
		s.subs = append(s.subs, l)
	}
	s.subMu.Unlock()

	return func() { s.unsubscribe(lid) }
}

func (s *Signal[T]) unsubscribe(lid uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// notify calls every subscriber outside the locks.
func (s *Signal[T]) notify() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// WithEquals configures a custom equality function and returns the signal.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for comparable values and reflect.DeepEqual otherwise.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if t := reflect.TypeOf(av); t != nil && t.Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(a, b)
}
