// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// addShape adds vertices and triangles (indexed relative to
// the first new vertex) and selects them.
// If unit is set, axes in the mask are mapped from
// [-1, 1] to [0, 1].
func (g *Geometry) addShape(vtcs []mgl64.Vec3, tris [][3]uint32, unit bool, mask [3]bool) {
	nv, nt := len(g.vtcs), len(g.tris)
	for _, v := range vtcs {
		if unit {
			for i := range 3 {
				if mask[i] {
					v[i] = (v[i] + 1) / 2
				}
			}
		}
		g.vtcs = append(g.vtcs, v)
	}
	off := uint32(nv)
	for _, t := range tris {
		g.tris = append(g.tris, [3]uint32{t[0] + off, t[1] + off, t[2] + off})
	}
	g.selVtcs = seq(nv, len(g.vtcs))
	g.selTris = seq(nt, len(g.tris))
}

var (
	flat  = [3]bool{true, true, false}
	solid = [3]bool{true, true, true}
)

// AddSquare appends a square on the z = 0 plane, facing +z.
// It spans [-1, 1] on x and y, or [0, 1] if unit is set.
func (g *Geometry) AddSquare(unit bool) {
	g.addShape([]mgl64.Vec3{
		{-1, -1, 0},
		{1, -1, 0},
		{-1, 1, 0},
		{1, 1, 0},
	}, [][3]uint32{
		{0, 1, 2},
		{1, 3, 2},
	}, unit, flat)
}

var (
	cubeVtcs = []mgl64.Vec3{
		{-1, 1, -1},
		{-1, 1, 1},
		{-1, -1, -1},
		{-1, -1, 1},
		{1, 1, -1},
		{1, 1, 1},
		{1, -1, -1},
		{1, -1, 1},
	}
	cubeTris = [][3]uint32{
		// +z
		{1, 3, 5},
		{3, 7, 5},
		// +x
		{4, 5, 6},
		{5, 7, 6},
		// -x
		{0, 2, 1},
		{1, 2, 3},
		// +y
		{0, 1, 4},
		{1, 5, 4},
		// -y
		{2, 6, 3},
		{3, 6, 7},
		// -z
		{0, 4, 2},
		{2, 4, 6},
	}
)

// AddCube appends an outward-facing cube spanning [-1, 1]
// on every axis, or [0, 1] if unit is set.
func (g *Geometry) AddCube(unit bool) { g.addShape(cubeVtcs, cubeTris, unit, solid) }

// NewCube creates a Geometry containing a cube spanning
// [-1, 1] on every axis.
// Nothing is selected.
func NewCube() *Geometry {
	g := New()
	g.AddCube(false)
	g.ClearSelection()
	return g
}

func ring(segments int, z float64) []mgl64.Vec3 {
	vtcs := make([]mgl64.Vec3, segments)
	for i := range vtcs {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		vtcs[i] = mgl64.Vec3{c, s, z}
	}
	return vtcs
}

// AddCircle appends a disc of radius 1 on the z = 0 plane,
// facing +z. The first new vertex is the center, followed
// by segments vertices along the rim.
// segments must be at least 3.
func (g *Geometry) AddCircle(segments int, unit bool) error {
	if segments < 3 {
		return ErrParameterOutOfRange
	}
	vtcs := append([]mgl64.Vec3{{}}, ring(segments, 0)...)
	tris := make([][3]uint32, segments)
	for i := range tris {
		j := (i + 1) % segments
		tris[i] = [3]uint32{0, uint32(1 + i), uint32(1 + j)}
	}
	g.addShape(vtcs, tris, unit, flat)
	return nil
}

// AddCylinder appends a closed cylinder of radius 1 whose
// axis spans [-1, 1] on z.
// segments must be at least 3.
func (g *Geometry) AddCylinder(segments int, unit bool) error {
	if segments < 3 {
		return ErrParameterOutOfRange
	}
	n := uint32(segments)
	vtcs := append(ring(segments, -1), ring(segments, 1)...)
	vtcs = append(vtcs, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 1})
	bc, tc := 2*n, 2*n+1
	tris := make([][3]uint32, 0, 4*n)
	for i := range n {
		j := (i + 1) % n
		tris = append(tris,
			[3]uint32{i, j, n + j},
			[3]uint32{i, n + j, n + i},
			[3]uint32{bc, j, i},
			[3]uint32{tc, n + i, n + j})
	}
	g.addShape(vtcs, tris, unit, solid)
	return nil
}
