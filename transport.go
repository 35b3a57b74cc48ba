// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package paraforge

import (
	"fmt"
	"unicode/utf8"
)

const (
	// NumSlots is the number of string slots.
	NumSlots = 4
	// MaxString is the capacity of a string slot, in bytes.
	MaxString = 64
)

// Well-known slots.
const (
	// NameSlot holds the name of new resources.
	NameSlot = 0
	// ColorSlot holds the hex color of new materials.
	ColorSlot = 1
)

func checkSlot(slot int) error {
	if slot < 0 || slot >= NumSlots {
		return fmt.Errorf("%w: %d", ErrHandleOutOfBounds, slot)
	}
	return nil
}

// StringTransport resizes the given slot to size bytes and
// returns its contents, which the caller may write to.
// Existing bytes are kept and new ones are zeroed.
// A negative size leaves the slot unchanged.
// The returned slice aliases the slot. It is valid until
// the next call that modifies the slot, and must not be
// accessed while another call on c is running.
func (c *Context) StringTransport(slot, size int) (buf []byte, err error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}
	if size > MaxString {
		return nil, fmt.Errorf("%w: %d", ErrSizeOutOfBounds, size)
	}
	err = c.strs.Do(func(s *[NumSlots][]byte) error {
		if size >= 0 {
			if n := len(s[slot]); size <= n {
				s[slot] = s[slot][:size]
			} else {
				s[slot] = append(s[slot], make([]byte, size-n)...)
			}
		}
		buf = s[slot]
		return nil
	})
	return
}

// WriteString copies str into slot.
func (c *Context) WriteString(slot int, str string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if len(str) > MaxString {
		return fmt.Errorf("%w: %d", ErrSizeOutOfBounds, len(str))
	}
	return c.strs.Do(func(s *[NumSlots][]byte) error {
		s[slot] = append(s[slot][:0], str...)
		return nil
	})
}

// ReadString returns the contents of slot, which must be
// valid UTF-8.
func (c *Context) ReadString(slot int) (str string, err error) {
	if err := checkSlot(slot); err != nil {
		return "", err
	}
	err = c.strs.Do(func(s *[NumSlots][]byte) error {
		if !utf8.Valid(s[slot]) {
			return fmt.Errorf("%w: slot %d", ErrUnicode, slot)
		}
		str = string(s[slot])
		return nil
	})
	return
}
