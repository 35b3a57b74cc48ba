// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package arena

import (
	"errors"
	"sync"
)

// ErrPoisoned means that a previous operation on the guarded
// value panicked, leaving it in an unknown state.
var ErrPoisoned = errors.New("arena: guard poisoned")

// Guard serializes access to a value (usually an *Arena).
type Guard[T any] struct {
	mu       sync.Mutex
	val      T
	poisoned bool
}

// NewGuard creates a Guard for v.
func NewGuard[T any](v T) *Guard[T] { return &Guard[T]{val: v} }

// Do calls f with the guarded value while holding the lock.
// If f panics, the guard is poisoned and the panic resumes;
// every subsequent call fails with ErrPoisoned.
func (g *Guard[T]) Do(f func(T) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.poisoned {
		return ErrPoisoned
	}
	defer func() {
		if x := recover(); x != nil {
			g.poisoned = true
			panic(x)
		}
	}()
	return f(g.val)
}

// Swap replaces the guarded value and returns the previous one.
func (g *Guard[T]) Swap(v T) (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.poisoned {
		var zero T
		return zero, ErrPoisoned
	}
	prev := g.val
	g.val = v
	return prev, nil
}
