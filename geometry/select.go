// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
)

// box is an axis-aligned box widened by Epsilon.
type box struct{ min, max mgl64.Vec3 }

func newBox(x1, y1, z1, x2, y2, z2 float64) (b box) {
	p, q := mgl64.Vec3{x1, y1, z1}, mgl64.Vec3{x2, y2, z2}
	for i := range 3 {
		b.min[i] = min(p[i], q[i]) - Epsilon
		b.max[i] = max(p[i], q[i]) + Epsilon
	}
	return
}

func (b *box) contains(v mgl64.Vec3) bool {
	for i := range 3 {
		if v[i] < b.min[i] || v[i] > b.max[i] {
			return false
		}
	}
	return true
}

func (g *Geometry) inBox(b *box) []uint32 {
	var sel []uint32
	for i, v := range g.vtcs {
		if b.contains(v) {
			sel = append(sel, uint32(i))
		}
	}
	return sel
}

func (g *Geometry) trisIn(vsel []uint32) []uint32 {
	in := make([]bool, len(g.vtcs))
	for _, v := range vsel {
		in[v] = true
	}
	var sel []uint32
	for i, t := range g.tris {
		if in[t[0]] && in[t[1]] && in[t[2]] {
			sel = append(sel, uint32(i))
		}
	}
	return sel
}

// SelectVertices replaces the vertex selection with every
// vertex inside the box with corners (x1, y1, z1) and
// (x2, y2, z2). The corners can be given in any order.
// The triangle selection is not changed.
func (g *Geometry) SelectVertices(x1, y1, z1, x2, y2, z2 float64) {
	b := newBox(x1, y1, z1, x2, y2, z2)
	g.selVtcs = g.inBox(&b)
}

// SelectTriangles replaces the triangle selection with
// every triangle whose three vertices are inside the box.
// The vertex selection is not changed.
func (g *Geometry) SelectTriangles(x1, y1, z1, x2, y2, z2 float64) {
	b := newBox(x1, y1, z1, x2, y2, z2)
	g.selTris = g.trisIn(g.inBox(&b))
}

// Select replaces both selections using the given box.
func (g *Geometry) Select(x1, y1, z1, x2, y2, z2 float64) {
	b := newBox(x1, y1, z1, x2, y2, z2)
	g.selVtcs = g.inBox(&b)
	g.selTris = g.trisIn(g.selVtcs)
}

// SelectAll selects every vertex and every triangle.
func (g *Geometry) SelectAll() {
	g.selVtcs = seq(0, len(g.vtcs))
	g.selTris = seq(0, len(g.tris))
}

// ClearSelection empties both selections.
func (g *Geometry) ClearSelection() {
	g.selVtcs = nil
	g.selTris = nil
}

// SelectedVertices returns the selected vertex indices in
// ascending order.
func (g *Geometry) SelectedVertices() []uint32 { return append([]uint32(nil), g.selVtcs...) }

// SelectedTriangles returns the selected triangle indices
// in ascending order.
func (g *Geometry) SelectedTriangles() []uint32 { return append([]uint32(nil), g.selTris...) }

// seq returns [from, to).
func seq(from, to int) []uint32 {
	if to <= from {
		return nil
	}
	s := make([]uint32, 0, to-from)
	for i := from; i < to; i++ {
		s = append(s, uint32(i))
	}
	return s
}
