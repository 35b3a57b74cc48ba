// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package geometry

import (
	"encoding/binary"
	"math"
	"slices"
)

// Packed is an immutable snapshot of a Geometry, ready to
// be stored in a binary buffer.
type Packed struct {
	pos      []float32
	idx      []uint32
	min, max [3]float32
}

// VertexCount returns the number of (deduplicated) vertices.
func (p *Packed) VertexCount() int { return len(p.pos) / 3 }

// IndexCount returns the number of indices (three per
// triangle).
func (p *Packed) IndexCount() int { return len(p.idx) }

// IsEmpty returns whether p has no triangles.
func (p *Packed) IsEmpty() bool { return len(p.idx) == 0 }

// Finite reports whether every position is neither NaN
// nor infinite.
func (p *Packed) Finite() bool {
	for _, x := range p.pos {
		if x != x || math.IsInf(float64(x), 0) {
			return false
		}
	}
	return true
}

// Positions returns a copy of the position buffer
// (x, y, z per vertex).
func (p *Packed) Positions() []float32 { return slices.Clone(p.pos) }

// Indices returns a copy of the index buffer.
func (p *Packed) Indices() []uint32 { return slices.Clone(p.idx) }

// Bounds returns the component-wise minimum and maximum
// of the positions.
func (p *Packed) Bounds() (min, max [3]float32) { return p.min, p.max }

// MaxIndex returns the largest index, or zero if p is
// empty.
func (p *Packed) MaxIndex() uint32 {
	if len(p.idx) == 0 {
		return 0
	}
	return slices.Max(p.idx)
}

// WideIndices returns whether indices need 32 bits.
func (p *Packed) WideIndices() bool { return p.VertexCount() >= 0x10000 }

// AppendPositions appends the position buffer to b as
// little-endian float32 values.
func (p *Packed) AppendPositions(b []byte) []byte {
	for _, x := range p.pos {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(x))
	}
	return b
}

// AppendIndices appends the index buffer to b as
// little-endian uint16 values, or uint32 values if
// WideIndices is true.
func (p *Packed) AppendIndices(b []byte) []byte {
	if p.WideIndices() {
		for _, x := range p.idx {
			b = binary.LittleEndian.AppendUint32(b, x)
		}
	} else {
		for _, x := range p.idx {
			b = binary.LittleEndian.AppendUint16(b, uint16(x))
		}
	}
	return b
}

type cell [3]int64

func cellOf(v [3]float32) cell {
	const size = 2 * Epsilon
	return cell{
		int64(math.Floor(float64(v[0]) / size)),
		int64(math.Floor(float64(v[1]) / size)),
		int64(math.Floor(float64(v[2]) / size)),
	}
}

func near(a, b [3]float32) bool {
	for i := range a {
		if math.Abs(float64(a[i])-float64(b[i])) > Epsilon {
			return false
		}
	}
	return true
}

// Pack creates a Packed from the current state of g.
// Vertices not referenced by any triangle are dropped, and
// vertices that coincide (within Epsilon, after conversion
// to float32) are merged into the first one.
// Triangle order is preserved.
func (g *Geometry) Pack() *Packed {
	p := new(Packed)
	if len(g.tris) == 0 {
		return p
	}

	used := make([]bool, len(g.vtcs))
	for _, t := range g.tris {
		used[t[0]], used[t[1]], used[t[2]] = true, true, true
	}

	const unset = ^uint32(0)
	vmap := make([]uint32, len(g.vtcs))
	grid := make(map[cell][]uint32)
	var vs [][3]float32
	for i, v := range g.vtcs {
		vmap[i] = unset
		if !used[i] {
			continue
		}
		f := [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
		c := cellOf(f)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, j := range grid[cell{c[0] + dx, c[1] + dy, c[2] + dz}] {
						if near(vs[j], f) && (vmap[i] == unset || j < vmap[i]) {
							vmap[i] = j
						}
					}
				}
			}
		}
		if vmap[i] != unset {
			continue
		}
		vmap[i] = uint32(len(vs))
		grid[c] = append(grid[c], vmap[i])
		vs = append(vs, f)
	}

	p.pos = make([]float32, 0, 3*len(vs))
	p.min = vs[0]
	p.max = vs[0]
	for _, v := range vs {
		p.pos = append(p.pos, v[0], v[1], v[2])
		for i := range v {
			p.min[i] = min(p.min[i], v[i])
			p.max[i] = max(p.max[i], v[i])
		}
	}
	p.idx = make([]uint32, 0, 3*len(g.tris))
	for _, t := range g.tris {
		p.idx = append(p.idx, vmap[t[0]], vmap[t[1]], vmap[t[2]])
	}
	return p
}
