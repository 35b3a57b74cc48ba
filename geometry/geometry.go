// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package geometry implements an editable triangle mesh
// with selection-scoped operations.
package geometry

import (
	"errors"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used by selection boxes and
// by vertex deduplication in Pack.
const Epsilon = 1e-6

var (
	// ErrVtxOutOfBounds means that a vertex index does not
	// refer to an existing vertex.
	ErrVtxOutOfBounds = errors.New("geometry: vertex index out of bounds")
	// ErrTriOutOfBounds means that a triangle index does not
	// refer to an existing triangle.
	ErrTriOutOfBounds = errors.New("geometry: triangle index out of bounds")
	// ErrNonManifold is returned by Extrude when the selected
	// triangles share a directed edge.
	ErrNonManifold = errors.New("geometry: selection is not a manifold patch")
	// ErrParameterOutOfRange means that an argument (or the
	// result of applying it) is not a usable value, such as
	// a NaN or infinite coordinate.
	ErrParameterOutOfRange = errors.New("geometry: parameter out of range")
)

// Finite reports whether every value is neither NaN nor
// infinite and fits in a float32.
func Finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.Abs(x) > math.MaxFloat32 {
			return false
		}
	}
	return true
}

func finiteVec(v mgl64.Vec3) bool { return Finite(v[0], v[1], v[2]) }

// Geometry is an editable triangle mesh.
// Vertices and triangles are identified by their position
// in the respective lists; deletions compact the lists
// and renumber every reference (selections included).
//
// The zero value is an empty Geometry ready for use.
type Geometry struct {
	vtcs    []mgl64.Vec3
	tris    [][3]uint32
	selVtcs []uint32
	selTris []uint32
}

// New creates an empty Geometry.
func New() *Geometry { return new(Geometry) }

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.vtcs) }

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int { return len(g.tris) }

// CreateVertex appends a vertex and returns its index.
// It fails with ErrParameterOutOfRange if any coordinate
// is not Finite.
func (g *Geometry) CreateVertex(x, y, z float64) (uint32, error) {
	if !Finite(x, y, z) {
		return 0, ErrParameterOutOfRange
	}
	g.vtcs = append(g.vtcs, mgl64.Vec3{x, y, z})
	return uint32(len(g.vtcs) - 1), nil
}

// CreateTriangle appends a triangle and returns its index.
// It fails with ErrVtxOutOfBounds if any index does not
// refer to an existing vertex.
func (g *Geometry) CreateTriangle(a, b, c uint32) (uint32, error) {
	if err := g.checkTri(a, b, c); err != nil {
		return 0, err
	}
	g.tris = append(g.tris, [3]uint32{a, b, c})
	return uint32(len(g.tris) - 1), nil
}

func (g *Geometry) checkTri(vtcs ...uint32) error {
	for _, v := range vtcs {
		if int(v) >= len(g.vtcs) {
			return ErrVtxOutOfBounds
		}
	}
	return nil
}

// Vertex returns the position of vertex i.
func (g *Geometry) Vertex(i uint32) (mgl64.Vec3, error) {
	if int(i) >= len(g.vtcs) {
		return mgl64.Vec3{}, ErrVtxOutOfBounds
	}
	return g.vtcs[i], nil
}

// SetVertex moves vertex i.
func (g *Geometry) SetVertex(i uint32, x, y, z float64) error {
	if int(i) >= len(g.vtcs) {
		return ErrVtxOutOfBounds
	}
	if !Finite(x, y, z) {
		return ErrParameterOutOfRange
	}
	g.vtcs[i] = mgl64.Vec3{x, y, z}
	return nil
}

// Triangle returns the vertex indices of triangle i.
func (g *Geometry) Triangle(i uint32) ([3]uint32, error) {
	if int(i) >= len(g.tris) {
		return [3]uint32{}, ErrTriOutOfBounds
	}
	return g.tris[i], nil
}

// SetTriangle replaces the vertex indices of triangle i.
func (g *Geometry) SetTriangle(i, a, b, c uint32) error {
	if int(i) >= len(g.tris) {
		return ErrTriOutOfBounds
	}
	if err := g.checkTri(a, b, c); err != nil {
		return err
	}
	g.tris[i] = [3]uint32{a, b, c}
	return nil
}

// DeleteVertex removes vertex i along with every triangle
// that references it.
func (g *Geometry) DeleteVertex(i uint32) error {
	if int(i) >= len(g.vtcs) {
		return ErrVtxOutOfBounds
	}
	vdel := make([]bool, len(g.vtcs))
	vdel[i] = true
	g.remove(vdel, nil)
	return nil
}

// DeleteTriangle removes triangle i.
// Its vertices are kept.
func (g *Geometry) DeleteTriangle(i uint32) error {
	if int(i) >= len(g.tris) {
		return ErrTriOutOfBounds
	}
	tdel := make([]bool, len(g.tris))
	tdel[i] = true
	g.remove(nil, tdel)
	return nil
}

// DeleteVertices removes every selected vertex (and the
// triangles referencing them), then clears the selection.
func (g *Geometry) DeleteVertices() {
	if len(g.selVtcs) > 0 {
		vdel := make([]bool, len(g.vtcs))
		for _, v := range g.selVtcs {
			vdel[v] = true
		}
		g.remove(vdel, nil)
	}
	g.ClearSelection()
}

// DeleteTriangles removes every selected triangle, then
// clears the selection.
func (g *Geometry) DeleteTriangles() {
	if len(g.selTris) > 0 {
		tdel := make([]bool, len(g.tris))
		for _, t := range g.selTris {
			tdel[t] = true
		}
		g.remove(nil, tdel)
	}
	g.ClearSelection()
}

// DeleteStrayVertices removes every vertex that is not
// referenced by any triangle.
func (g *Geometry) DeleteStrayVertices() {
	vdel := make([]bool, len(g.vtcs))
	for i := range vdel {
		vdel[i] = true
	}
	for _, t := range g.tris {
		for _, v := range t {
			vdel[v] = false
		}
	}
	if slices.Contains(vdel, true) {
		g.remove(vdel, nil)
	}
}

// remove deletes the marked vertices and triangles,
// compacting both lists. A triangle that references a
// deleted vertex is deleted as well.
// Either slice may be nil.
func (g *Geometry) remove(vdel, tdel []bool) {
	const gone = ^uint32(0)

	vmap := make([]uint32, len(g.vtcs))
	n := uint32(0)
	for i := range g.vtcs {
		if vdel != nil && vdel[i] {
			vmap[i] = gone
			continue
		}
		vmap[i] = n
		g.vtcs[n] = g.vtcs[i]
		n++
	}
	g.vtcs = g.vtcs[:n]

	tmap := make([]uint32, len(g.tris))
	n = 0
	for i, t := range g.tris {
		if (tdel != nil && tdel[i]) || vmap[t[0]] == gone || vmap[t[1]] == gone || vmap[t[2]] == gone {
			tmap[i] = gone
			continue
		}
		tmap[i] = n
		g.tris[n] = [3]uint32{vmap[t[0]], vmap[t[1]], vmap[t[2]]}
		n++
	}
	g.tris = g.tris[:n]

	g.selVtcs = remap(g.selVtcs, vmap)
	g.selTris = remap(g.selTris, tmap)
}

// remap renumbers the (sorted) indices in sel, dropping
// those whose mapping is ^0.
// Renumbering preserves order.
func remap(sel, m []uint32) []uint32 {
	out := sel[:0]
	for _, i := range sel {
		if j := m[i]; j != ^uint32(0) {
			out = append(out, j)
		}
	}
	return out
}
