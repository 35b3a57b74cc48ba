// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package arena implements handle-indexed storage for
// resources that are shared by reference.
package arena

import (
	"errors"
	"iter"
	"strconv"
)

var (
	// ErrOutOfBounds means that the handle's slot index is
	// beyond the arena's capacity.
	ErrOutOfBounds = errors.New("arena: handle out of bounds")
	// ErrGeneration means that the slot was freed (and maybe
	// reused) since the handle was issued.
	ErrGeneration = errors.New("arena: stale handle generation")
)

// Handle identifies a value stored in an Arena.
// The zero Handle is never valid.
type Handle struct {
	Index uint32
	Gen   uint32
}

// Nil is the invalid Handle.
var Nil Handle

// IsNil returns whether h is the zero Handle.
func (h Handle) IsNil() bool { return h.Gen == 0 }

// String implements fmt.Stringer.
func (h Handle) String() string {
	return strconv.FormatUint(uint64(h.Index), 10) + "#" + strconv.FormatUint(uint64(h.Gen), 10)
}

type slot[T any] struct {
	val T
	gen uint32
}

// Arena stores values of type T and identifies them
// with generation-checked handles.
// It is not safe for concurrent use (see Guard).
type Arena[T any] struct {
	slots []slot[T]
	used  slotMap
	n     int
}

// New creates an empty arena.
func New[T any]() *Arena[T] { return new(Arena[T]) }

// Allocate stores v in the lowest free slot.
func (a *Arena[T]) Allocate(v T) Handle {
	idx, ok := a.used.search()
	if !ok {
		// Double the capacity, starting at one word.
		nplus := len(a.used.s)
		if nplus == 0 {
			nplus = 1
		}
		idx = a.used.grow(nplus)
		a.slots = append(a.slots, make([]slot[T], nplus*slotMapNBit)...)
	}
	a.used.set(idx)
	s := &a.slots[idx]
	if s.gen == 0 {
		s.gen = 1
	}
	s.val = v
	a.n++
	return Handle{Index: uint32(idx), Gen: s.gen}
}

// check validates h against the current state of a.
func (a *Arena[T]) check(h Handle) error {
	if int(h.Index) >= len(a.slots) {
		return ErrOutOfBounds
	}
	if !a.used.isSet(int(h.Index)) || a.slots[h.Index].gen != h.Gen {
		return ErrGeneration
	}
	return nil
}

// Get returns a pointer to the value identified by h.
// The pointer must not be retained across calls to
// Allocate, which may move the values.
func (a *Arena[T]) Get(h Handle) (*T, error) {
	if err := a.check(h); err != nil {
		return nil, err
	}
	return &a.slots[h.Index].val, nil
}

// Valid returns whether h identifies a live value.
func (a *Arena[T]) Valid(h Handle) bool { return a.check(h) == nil }

// Free removes the value identified by h and returns it.
// The slot's generation is bumped so h (and any copy of it)
// becomes stale.
func (a *Arena[T]) Free(h Handle) (T, error) {
	if err := a.check(h); err != nil {
		var zero T
		return zero, err
	}
	s := &a.slots[h.Index]
	v := s.val
	var zero T
	s.val = zero
	if s.gen++; s.gen == 0 {
		s.gen = 1
	}
	a.used.unset(int(h.Index))
	a.n--
	return v, nil
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.n }

// Cap returns the number of slots.
func (a *Arena[T]) Cap() int { return len(a.slots) }

// All returns an iterator over the live values in slot order.
func (a *Arena[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range a.slots {
			if !a.used.isSet(i) {
				continue
			}
			h := Handle{Index: uint32(i), Gen: a.slots[i].gen}
			if !yield(h, &a.slots[i].val) {
				return
			}
		}
	}
}
