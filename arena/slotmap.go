// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package arena

import (
	"math/bits"
)

// slotMap is a growable bitmap that tracks which slots
// of an Arena are in use.
type slotMap struct {
	s   []uint32
	rem int
}

const slotMapNBit = 32

// len returns the number of bits in the map.
func (m *slotMap) len() int { return len(m.s) * slotMapNBit }

// grow appends nplus words of unset bits to the map.
// It returns the value of m.len prior to growing.
func (m *slotMap) grow(nplus int) (index int) {
	index = m.len()
	if nplus > 0 {
		m.rem += nplus * slotMapNBit
		m.s = append(m.s, make([]uint32, nplus)...)
	}
	return
}

func (m *slotMap) set(index int) {
	i := index / slotMapNBit
	b := uint32(1) << (index & (slotMapNBit - 1))
	if m.s[i]&b == 0 {
		m.s[i] |= b
		m.rem--
	}
}

func (m *slotMap) unset(index int) {
	i := index / slotMapNBit
	b := uint32(1) << (index & (slotMapNBit - 1))
	if m.s[i]&b != 0 {
		m.s[i] &^= b
		m.rem++
	}
}

func (m *slotMap) isSet(index int) bool {
	i := index / slotMapNBit
	b := uint32(1) << (index & (slotMapNBit - 1))
	return m.s[i]&b != 0
}

// search locates the lowest unset bit.
// It fails only when m.rem is zero.
func (m *slotMap) search() (index int, ok bool) {
	if m.rem == 0 {
		return
	}
	for i, x := range m.s {
		if x == ^uint32(0) {
			continue
		}
		return i*slotMapNBit + bits.TrailingZeros32(^x), true
	}
	return
}
