// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package geometry

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

type edge [2]uint32

// Extrude sweeps the selected triangles by (dx, dy, dz).
//
// The selection must form a consistently wound manifold
// patch, i.e., every edge is shared by at most two of the
// selected triangles, in opposite directions.
// Each boundary edge of the patch produces two wall
// triangles. If the selection covers the whole Geometry,
// the original triangles are kept (flipped) as the floor
// of a closed solid; otherwise they are moved to the cap.
// Afterwards, the cap is selected.
// It fails with ErrParameterOutOfRange, leaving the
// geometry unchanged, if the offset is zero or if any
// swept vertex would not be Finite.
func (g *Geometry) Extrude(dx, dy, dz float64) error {
	d := mgl64.Vec3{dx, dy, dz}
	if !Finite(dx, dy, dz) || d.Len() == 0 {
		return ErrParameterOutOfRange
	}
	if len(g.selTris) == 0 {
		return nil
	}

	halves := make(map[edge]struct{}, 3*len(g.selTris))
	for _, ti := range g.selTris {
		t := g.tris[ti]
		for i := range 3 {
			e := edge{t[i], t[(i+1)%3]}
			if _, dup := halves[e]; dup {
				return ErrNonManifold
			}
			halves[e] = struct{}{}
			if !finiteVec(g.vtcs[t[i]].Add(d)) {
				return ErrParameterOutOfRange
			}
		}
	}

	var bound []edge
	dups := make(map[uint32]uint32)
	for _, ti := range g.selTris {
		t := g.tris[ti]
		for i := range 3 {
			if _, ok := dups[t[i]]; !ok {
				dups[t[i]] = uint32(len(g.vtcs))
				g.vtcs = append(g.vtcs, g.vtcs[t[i]].Add(d))
			}
			if _, in := halves[edge{t[(i+1)%3], t[i]}]; !in {
				bound = append(bound, edge{t[i], t[(i+1)%3]})
			}
		}
	}

	whole := len(g.selTris) == len(g.tris)
	caps := make([]uint32, 0, len(g.selTris))
	for _, ti := range g.selTris {
		t := g.tris[ti]
		c := [3]uint32{dups[t[0]], dups[t[1]], dups[t[2]]}
		if whole {
			g.tris[ti] = [3]uint32{t[0], t[2], t[1]}
			caps = append(caps, uint32(len(g.tris)))
			g.tris = append(g.tris, c)
		} else {
			g.tris[ti] = c
			caps = append(caps, ti)
		}
	}
	for _, e := range bound {
		a, b := e[0], e[1]
		g.tris = append(g.tris,
			[3]uint32{a, b, dups[b]},
			[3]uint32{a, dups[b], dups[a]})
	}

	g.selTris = caps
	g.selVtcs = g.selVtcs[:0]
	for _, v := range dups {
		g.selVtcs = append(g.selVtcs, v)
	}
	slices.Sort(g.selVtcs)
	return nil
}

// Merge collapses every selected vertex into a single
// vertex at (x, y, z).
// The lowest selected index survives and becomes the
// selection. Triangles that degenerate as a result are
// deleted; triangles that were degenerate beforehand are
// left alone.
// It fails with ErrParameterOutOfRange if (x, y, z) is not
// Finite.
func (g *Geometry) Merge(x, y, z float64) error {
	if !Finite(x, y, z) {
		return ErrParameterOutOfRange
	}
	if len(g.selVtcs) == 0 {
		return nil
	}
	keep := g.selVtcs[0]
	g.vtcs[keep] = mgl64.Vec3{x, y, z}

	vdel := make([]bool, len(g.vtcs))
	for _, v := range g.selVtcs[1:] {
		vdel[v] = true
	}
	tdel := make([]bool, len(g.tris))
	for i := range g.tris {
		t := &g.tris[i]
		changed := false
		for j := range t {
			if vdel[t[j]] {
				t[j] = keep
				changed = true
			}
		}
		tdel[i] = changed && (t[0] == t[1] || t[1] == t[2] || t[2] == t[0])
	}
	g.remove(vdel, tdel)
	g.selVtcs = append(g.selVtcs[:0], keep)
	return nil
}

// FlipNormals reverses the winding of every triangle.
func (g *Geometry) FlipNormals() {
	for i, t := range g.tris {
		g.tris[i] = [3]uint32{t[0], t[2], t[1]}
	}
}

// DoubleSide appends a reversed copy of every triangle.
func (g *Geometry) DoubleSide() {
	n := len(g.tris)
	for _, t := range g.tris[:n] {
		g.tris = append(g.tris, [3]uint32{t[0], t[2], t[1]})
	}
}

// Copy appends a duplicate of every vertex and triangle.
// The duplicate becomes the selection.
func (g *Geometry) Copy() {
	nv, nt := len(g.vtcs), len(g.tris)
	g.vtcs = append(g.vtcs, g.vtcs[:nv]...)
	off := uint32(nv)
	for _, t := range g.tris[:nt] {
		g.tris = append(g.tris, [3]uint32{t[0] + off, t[1] + off, t[2] + off})
	}
	g.selVtcs = seq(nv, len(g.vtcs))
	g.selTris = seq(nt, len(g.tris))
}
