// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package geometry

import (
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertex(t *testing.T, g *Geometry, x, y, z float64) uint32 {
	t.Helper()
	i, err := g.CreateVertex(x, y, z)
	require.NoError(t, err)
	return i
}

// quad creates the unit square of two triangles on z = 0.
func quad(t *testing.T) *Geometry {
	g := New()
	vertex(t, g, 0, 0, 0)
	vertex(t, g, 1, 0, 0)
	vertex(t, g, 0, 1, 0)
	vertex(t, g, 1, 1, 0)
	_, err := g.CreateTriangle(0, 1, 2)
	require.NoError(t, err)
	_, err = g.CreateTriangle(1, 3, 2)
	require.NoError(t, err)
	return g
}

func TestCreate(t *testing.T) {
	g := New()
	for i := range 5 {
		assert.Equal(t, uint32(i), vertex(t, g, float64(i), 0, 0))
	}
	assert.Equal(t, 5, g.VertexCount())

	ti, err := g.CreateTriangle(0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), ti)

	_, err = g.CreateTriangle(0, 1, 5)
	assert.ErrorIs(t, err, ErrVtxOutOfBounds)
	assert.Equal(t, 5, g.VertexCount())
	assert.Equal(t, 1, g.TriangleCount())
}

func TestGetSet(t *testing.T) {
	g := quad(t)
	require.NoError(t, g.SetVertex(3, 2, 2, 2))
	v, err := g.Vertex(3)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, v)
	_, err = g.Vertex(4)
	assert.ErrorIs(t, err, ErrVtxOutOfBounds)
	assert.ErrorIs(t, g.SetVertex(4, 0, 0, 0), ErrVtxOutOfBounds)

	require.NoError(t, g.SetTriangle(1, 3, 2, 1))
	tri, err := g.Triangle(1)
	require.NoError(t, err)
	assert.Equal(t, [3]uint32{3, 2, 1}, tri)
	_, err = g.Triangle(2)
	assert.ErrorIs(t, err, ErrTriOutOfBounds)
	assert.ErrorIs(t, g.SetTriangle(2, 0, 1, 2), ErrTriOutOfBounds)
	assert.ErrorIs(t, g.SetTriangle(0, 0, 1, 9), ErrVtxOutOfBounds)
}

func TestDeleteVertex(t *testing.T) {
	g := quad(t)
	g.SelectAll()
	require.NoError(t, g.DeleteVertex(0))
	assert.Equal(t, 3, g.VertexCount())
	require.Equal(t, 1, g.TriangleCount())
	tri, _ := g.Triangle(0)
	assert.Equal(t, [3]uint32{0, 2, 1}, tri)
	assert.Equal(t, []uint32{0, 1, 2}, g.SelectedVertices())
	assert.Equal(t, []uint32{0}, g.SelectedTriangles())
	v, _ := g.Vertex(0)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, v)

	assert.ErrorIs(t, g.DeleteVertex(3), ErrVtxOutOfBounds)
}

func TestDeleteTriangle(t *testing.T) {
	g := quad(t)
	require.NoError(t, g.DeleteTriangle(0))
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 1, g.TriangleCount())
	assert.ErrorIs(t, g.DeleteTriangle(1), ErrTriOutOfBounds)

	g.DeleteStrayVertices()
	assert.Equal(t, 3, g.VertexCount())
	tri, _ := g.Triangle(0)
	assert.Equal(t, [3]uint32{0, 2, 1}, tri)
}

func TestSelect(t *testing.T) {
	g := quad(t)
	// Corners in any order, widened by Epsilon.
	g.Select(1, 1+Epsilon/2, 0, -Epsilon/2, 0.5, 0)
	assert.Equal(t, []uint32{2, 3}, g.SelectedVertices())
	assert.Empty(t, g.SelectedTriangles())

	g.SelectTriangles(0, 0, 0, 1, 1, 0)
	assert.Equal(t, []uint32{0, 1}, g.SelectedTriangles())
	assert.Equal(t, []uint32{2, 3}, g.SelectedVertices())

	g.SelectVertices(0.5, -1, -1, 2, 2, 1)
	assert.Equal(t, []uint32{1, 3}, g.SelectedVertices())

	g.Select(0, 0, 0.1, 1, 1, 1)
	assert.Empty(t, g.SelectedVertices())
	assert.Empty(t, g.SelectedTriangles())

	g.SelectAll()
	g.ClearSelection()
	assert.Empty(t, g.SelectedVertices())
	assert.Empty(t, g.SelectedTriangles())
}

func TestDeleteSelection(t *testing.T) {
	g := quad(t)
	g.SelectVertices(1, 1, 0, 1, 1, 0)
	g.DeleteVertices()
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 1, g.TriangleCount())
	assert.Empty(t, g.SelectedVertices())

	g = quad(t)
	g.SelectTriangles(0, 0, 0, 1, 1, 0)
	g.DeleteTriangles()
	assert.Equal(t, 4, g.VertexCount())
	assert.Zero(t, g.TriangleCount())
	assert.Empty(t, g.SelectedTriangles())
}

func TestFlipNormals(t *testing.T) {
	g := NewCube()
	want := append([][3]uint32(nil), g.tris...)
	g.FlipNormals()
	assert.NotEqual(t, want, g.tris)
	g.FlipNormals()
	assert.Equal(t, want, g.tris)
}

func TestDoubleSide(t *testing.T) {
	g := quad(t)
	g.DoubleSide()
	assert.Equal(t, 4, g.TriangleCount())
	tri, _ := g.Triangle(2)
	assert.Equal(t, [3]uint32{0, 2, 1}, tri)
}

func TestCopy(t *testing.T) {
	g := quad(t)
	g.Copy()
	assert.Equal(t, 8, g.VertexCount())
	assert.Equal(t, 4, g.TriangleCount())
	tri, _ := g.Triangle(3)
	assert.Equal(t, [3]uint32{5, 7, 6}, tri)
	assert.Equal(t, []uint32{4, 5, 6, 7}, g.SelectedVertices())
	assert.Equal(t, []uint32{2, 3}, g.SelectedTriangles())
}

// closed reports whether every directed edge of g has
// exactly one opposite.
func closed(g *Geometry) bool {
	n := make(map[edge]int)
	for _, t := range g.tris {
		for i := range 3 {
			n[edge{t[i], t[(i+1)%3]}]++
		}
	}
	for e, c := range n {
		if c != 1 || n[edge{e[1], e[0]}] != 1 {
			return false
		}
	}
	return true
}

func TestExtrudeTriangle(t *testing.T) {
	g := New()
	vertex(t, g, 0, 0, 0)
	vertex(t, g, 1, 0, 0)
	vertex(t, g, 0, 1, 0)
	_, err := g.CreateTriangle(0, 1, 2)
	require.NoError(t, err)

	g.SelectAll()
	require.NoError(t, g.Extrude(0, 0, 1))
	assert.Equal(t, 6, g.VertexCount())
	assert.Equal(t, 8, g.TriangleCount())
	assert.True(t, closed(g))

	assert.Equal(t, []uint32{3, 4, 5}, g.SelectedVertices())
	assert.Equal(t, []uint32{1}, g.SelectedTriangles())
	tri, _ := g.Triangle(1)
	assert.Equal(t, [3]uint32{3, 4, 5}, tri)
	v, _ := g.Vertex(4)
	assert.Equal(t, mgl64.Vec3{1, 0, 1}, v)
}

func TestExtrudeStack(t *testing.T) {
	g := New()
	g.AddSquare(false)
	for range 3 {
		require.NoError(t, g.Extrude(0, 0, 1))
	}
	assert.True(t, closed(g))
	assert.Equal(t, 16, g.VertexCount())
	// floor + cap + 3 layers of 4 walls.
	assert.Equal(t, 2+2+3*8, g.TriangleCount())
	for _, i := range g.SelectedVertices() {
		v, _ := g.Vertex(i)
		assert.Equal(t, 3.0, v[2])
	}
}

func TestExtrudePartial(t *testing.T) {
	g := quad(t)
	g.SelectTriangles(0, 0, 0, 1, 1, 0)
	require.NoError(t, g.DeleteTriangle(1))
	_, err := g.CreateTriangle(1, 3, 2)
	require.NoError(t, err)
	_, err = g.CreateTriangle(1, 2, 3)
	require.NoError(t, err)

	// One of three triangles: moved to the cap, three walls.
	g.ClearSelection()
	g.SelectTriangles(0, 0, 0, 1, 1, 0)
	assert.Equal(t, []uint32{0, 1, 2}, g.SelectedTriangles())
	assert.ErrorIs(t, g.Extrude(0, 0, 1), ErrNonManifold)
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 3, g.TriangleCount())

	require.NoError(t, g.DeleteTriangle(2))
	g.selTris = []uint32{0}
	require.NoError(t, g.Extrude(0, 0, 2))
	assert.Equal(t, 7, g.VertexCount())
	assert.Equal(t, 2+6, g.TriangleCount())
	tri, _ := g.Triangle(0)
	assert.Equal(t, [3]uint32{4, 5, 6}, tri)
	tri, _ = g.Triangle(1)
	assert.Equal(t, [3]uint32{1, 3, 2}, tri)
	assert.Equal(t, []uint32{0}, g.SelectedTriangles())
}

func TestExtrudeErrors(t *testing.T) {
	g := quad(t)
	g.SelectAll()
	assert.ErrorIs(t, g.Extrude(0, 0, 0), ErrParameterOutOfRange)

	g.ClearSelection()
	require.NoError(t, g.Extrude(0, 0, 1))
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 2, g.TriangleCount())

	// Same winding across the shared edge.
	require.NoError(t, g.SetTriangle(1, 1, 2, 3))
	g.SelectAll()
	assert.ErrorIs(t, g.Extrude(0, 0, 1), ErrNonManifold)
	assert.Equal(t, 4, g.VertexCount())
}

func TestMerge(t *testing.T) {
	g := New()
	g.AddSquare(false)
	require.NoError(t, g.Extrude(0, 0, 1))
	nv, nt := g.VertexCount(), g.TriangleCount()

	// Collapse the cap (4 vertices) to its center.
	g.SelectVertices(-1, -1, 1, 1, 1, 1)
	require.Len(t, g.SelectedVertices(), 4)
	require.NoError(t, g.Merge(0, 0, 1))
	assert.Equal(t, nv-3, g.VertexCount())
	// Both cap triangles degenerate; walls touching the
	// cap edge lose one of two triangles each.
	assert.Equal(t, nt-2-4, g.TriangleCount())
	assert.Equal(t, []uint32{4}, g.SelectedVertices())
	v, _ := g.Vertex(4)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, v)
	assert.True(t, closed(g))

	for _, tri := range g.tris {
		assert.NotEqual(t, tri[0], tri[1])
		assert.NotEqual(t, tri[1], tri[2])
		assert.NotEqual(t, tri[2], tri[0])
	}
}

func TestMergeCoincident(t *testing.T) {
	g := New()
	for range 3 {
		vertex(t, g, 1, 1, 1)
	}
	vertex(t, g, 0, 0, 0)
	vertex(t, g, 2, 0, 0)
	_, err := g.CreateTriangle(0, 1, 2)
	require.NoError(t, err)
	_, err = g.CreateTriangle(0, 3, 4)
	require.NoError(t, err)
	_, err = g.CreateTriangle(2, 3, 4)
	require.NoError(t, err)

	g.SelectVertices(1, 1, 1, 1, 1, 1)
	require.NoError(t, g.Merge(1, 1, 1))
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.TriangleCount())
	tri, _ := g.Triangle(1)
	assert.Equal(t, [3]uint32{0, 1, 2}, tri)

	g.ClearSelection()
	require.NoError(t, g.Merge(5, 5, 5))
	assert.Equal(t, 3, g.VertexCount())
}

func TestMergeKeepsDegenerate(t *testing.T) {
	g := quad(t)
	_, err := g.CreateTriangle(0, 0, 1)
	require.NoError(t, err)

	g.SelectVertices(0, 1, 0, 1, 1, 0)
	require.Equal(t, []uint32{2, 3}, g.SelectedVertices())
	require.NoError(t, g.Merge(0.5, 1, 0))
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, [][3]uint32{{0, 1, 2}, {0, 0, 1}}, g.tris)
	assert.Equal(t, []uint32{2}, g.SelectedVertices())
}

func TestNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	g := quad(t)
	g.SelectAll()
	want := slices.Clone(g.vtcs)
	for _, x := range [...]struct {
		name string
		f    func() error
	}{
		{"CreateVertex", func() error { _, err := g.CreateVertex(nan, 0, 0); return err }},
		{"CreateVertex/float32", func() error { _, err := g.CreateVertex(0, 1e39, 0); return err }},
		{"SetVertex", func() error { return g.SetVertex(0, 0, inf, 0) }},
		{"Translate", func() error { return g.Translate(0, 0, nan) }},
		{"Scale", func() error { return g.Scale(1, -inf, 1) }},
		{"RotateEuler", func() error { return g.RotateEuler(nan, 0, 0) }},
		{"RotateAxis", func() error { return g.RotateAxis(inf, 0, 0, 1) }},
		{"RotateAxis/angle", func() error { return g.RotateAxis(1, 0, 0, nan) }},
		{"Merge", func() error { return g.Merge(0, nan, 0) }},
		{"Extrude", func() error { return g.Extrude(0, 0, inf) }},
		{"Extrude/NaN", func() error { return g.Extrude(nan, 0, 0) }},
	} {
		assert.ErrorIs(t, x.f(), ErrParameterOutOfRange, x.name)
	}
	assert.Equal(t, want, g.vtcs)
	assert.Equal(t, 2, g.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 2, 3}, g.SelectedVertices())

	// Results must fit in a float32 too, and a rejected
	// edit changes nothing.
	g = New()
	vertex(t, g, 1, 0, 0)
	vertex(t, g, 3e38, 0, 0)
	vertex(t, g, 0, 1, 0)
	_, err := g.CreateTriangle(0, 1, 2)
	require.NoError(t, err)
	want = slices.Clone(g.vtcs)
	assert.ErrorIs(t, g.Translate(1e38, 0, 0), ErrParameterOutOfRange)
	assert.ErrorIs(t, g.Scale(2, 1, 1), ErrParameterOutOfRange)
	g.SelectAll()
	assert.ErrorIs(t, g.Extrude(1e38, 0, 0), ErrParameterOutOfRange)
	assert.Equal(t, want, g.vtcs)
	assert.Equal(t, 1, g.TriangleCount())
	assert.True(t, g.Pack().Finite())
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite())
	assert.True(t, Finite(0, -1, math.MaxFloat32, -math.MaxFloat32))
	assert.False(t, Finite(0, math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
	assert.False(t, Finite(2*math.MaxFloat32))

	p := &Packed{pos: []float32{0, float32(math.Inf(1)), 0}, idx: []uint32{0, 0, 0}}
	assert.False(t, p.Finite())
	assert.True(t, NewCube().Pack().Finite())
}

func TestTransform(t *testing.T) {
	const e = 1e-12
	g := New()
	vertex(t, g, 1, 0, 0)
	vertex(t, g, 0, 2, 0)

	require.NoError(t, g.Translate(1, 1, 1))
	require.NoError(t, g.Scale(2, 3, 4))
	v, _ := g.Vertex(0)
	assert.Equal(t, mgl64.Vec3{4, 3, 4}, v)

	g = New()
	vertex(t, g, 1, 0, 0)
	require.NoError(t, g.RotateEuler(0, 0, mgl64.DegToRad(90)))
	v, _ = g.Vertex(0)
	assert.True(t, v.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, e), "%v", v)
	require.NoError(t, g.RotateEuler(mgl64.DegToRad(90), 0, 0))
	v, _ = g.Vertex(0)
	assert.True(t, v.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, e), "%v", v)

	require.NoError(t, g.RotateAxis(0, 5, 0, mgl64.DegToRad(90)))
	v, _ = g.Vertex(0)
	assert.True(t, v.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, e), "%v", v)
	assert.ErrorIs(t, g.RotateAxis(0, 0, 0, 1), ErrParameterOutOfRange)

	// Roll, then pitch, then yaw.
	q := EulerQuat(0.3, 0.5, 0.7)
	r := mgl64.QuatRotate(0.7, mgl64.Vec3{0, 0, 1}).
		Mul(mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0})).
		Mul(mgl64.QuatRotate(0.3, mgl64.Vec3{1, 0, 0}))
	assert.True(t, q.ApproxEqualThreshold(r, e), "%v %v", q, r)
}

func TestPrimitives(t *testing.T) {
	g := New()
	g.AddSquare(false)
	g.AddCube(true)
	require.NoError(t, g.AddCircle(8, false))
	require.NoError(t, g.AddCylinder(6, true))
	assert.Equal(t, 4+8+9+14, g.VertexCount())
	assert.Equal(t, 2+12+8+24, g.TriangleCount())
	assert.Equal(t, seq(21, 35), g.SelectedVertices())
	assert.Equal(t, seq(22, 46), g.SelectedTriangles())

	assert.ErrorIs(t, g.AddCircle(2, false), ErrParameterOutOfRange)
	assert.ErrorIs(t, g.AddCylinder(0, false), ErrParameterOutOfRange)
	assert.Equal(t, 35, g.VertexCount())

	cyl := New()
	require.NoError(t, cyl.AddCylinder(16, false))
	assert.True(t, closed(cyl))
	assert.True(t, closed(NewCube()))
	assert.Empty(t, NewCube().SelectedVertices())

	p := g.Pack()
	mn, mx := p.Bounds()
	assert.Equal(t, [3]float32{-1, -1, 0}, mn)
	assert.Equal(t, [3]float32{1, 1, 1}, mx)

	u := New()
	u.AddSquare(true)
	mn, mx = u.Pack().Bounds()
	assert.Equal(t, [3]float32{0, 0, 0}, mn)
	assert.Equal(t, [3]float32{1, 1, 0}, mx)
}

// Faces must point away from the center of a solid.
func TestCubeWinding(t *testing.T) {
	g := NewCube()
	for _, tri := range g.tris {
		a, b, c := g.vtcs[tri[0]], g.vtcs[tri[1]], g.vtcs[tri[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Positive(t, n.Dot(center), "%v", tri)
	}
}

func TestPackEmpty(t *testing.T) {
	p := New().Pack()
	assert.True(t, p.IsEmpty())
	assert.Zero(t, p.VertexCount())
	assert.Empty(t, p.Positions())
	assert.Empty(t, p.Indices())

	g := New()
	vertex(t, g, 1, 2, 3)
	assert.True(t, g.Pack().IsEmpty())
}

func TestPack(t *testing.T) {
	g := New()
	g.AddSquare(true)
	g.AddSquare(true)
	vertex(t, g, 9, 9, 9)
	require.NoError(t, g.SetVertex(4, Epsilon/2, 0, 0))

	p := g.Pack()
	assert.Equal(t, 4, p.VertexCount())
	assert.Equal(t, 12, p.IndexCount())
	assert.Equal(t, []uint32{0, 1, 2, 1, 3, 2, 0, 1, 2, 1, 3, 2}, p.Indices())
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}, p.Positions())
	assert.Equal(t, uint32(3), p.MaxIndex())
	assert.False(t, p.WideIndices())
	assert.Len(t, p.AppendPositions(nil), 4*3*4)
	assert.Len(t, p.AppendIndices(nil), 12*2)

	// Snapshots are independent.
	require.NoError(t, g.Translate(1, 0, 0))
	q := g.Pack()
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}, p.Positions())
	assert.NotEqual(t, p.Positions(), q.Positions())
}
