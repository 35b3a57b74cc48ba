// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package paraforge

import (
	"go.uber.org/zap"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
	"github.com/gviegas/paraforge/scene"
)

func (c *Context) newGeometry(g *geometry.Geometry) (h Handle, err error) {
	err = c.geoms.Do(func(a *arena.Arena[*geometry.Geometry]) error {
		h = a.Allocate(g)
		return nil
	})
	return
}

// NewGeometry creates an empty geometry.
func (c *Context) NewGeometry() (Handle, error) { return c.newGeometry(geometry.New()) }

// NewCube creates a geometry containing a cube spanning
// [-1, 1] on every axis.
func (c *Context) NewCube() (Handle, error) { return c.newGeometry(geometry.NewCube()) }

// FreeGeometry destroys the geometry identified by h.
// Packed copies are not affected.
func (c *Context) FreeGeometry(h Handle) error {
	return c.geoms.Do(func(a *arena.Arena[*geometry.Geometry]) error {
		_, err := a.Free(h)
		return wrap("geometry", h, err)
	})
}

// GeometryCount returns the number of live geometries.
func (c *Context) GeometryCount() (n int, err error) {
	err = c.geoms.Do(func(a *arena.Arena[*geometry.Geometry]) error {
		n = a.Len()
		return nil
	})
	return
}

// geometry calls f with the geometry identified by h.
func (c *Context) geometry(h Handle, f func(g *geometry.Geometry) error) error {
	return c.geoms.Do(func(a *arena.Arena[*geometry.Geometry]) error {
		g, err := a.Get(h)
		if err != nil {
			return wrap("geometry", h, err)
		}
		return f(*g)
	})
}

// edit calls f, which cannot fail, with the geometry
// identified by h.
func (c *Context) edit(h Handle, f func(g *geometry.Geometry)) error {
	return c.geometry(h, func(g *geometry.Geometry) error {
		f(g)
		return nil
	})
}

// GeometryVertexCount returns the number of vertices in h.
func (c *Context) GeometryVertexCount(h Handle) (n int, err error) {
	err = c.edit(h, func(g *geometry.Geometry) { n = g.VertexCount() })
	return
}

// GeometryTriangleCount returns the number of triangles in
// h.
func (c *Context) GeometryTriangleCount(h Handle) (n int, err error) {
	err = c.edit(h, func(g *geometry.Geometry) { n = g.TriangleCount() })
	return
}

// GeometryCreateVertex appends a vertex to h and returns
// its index.
func (c *Context) GeometryCreateVertex(h Handle, x, y, z float64) (i uint32, err error) {
	err = c.geometry(h, func(g *geometry.Geometry) (err error) {
		i, err = g.CreateVertex(x, y, z)
		return
	})
	return
}

// GeometryCreateTriangle appends a triangle to h and
// returns its index.
func (c *Context) GeometryCreateTriangle(h Handle, a, b, v uint32) (i uint32, err error) {
	err = c.geometry(h, func(g *geometry.Geometry) (err error) {
		i, err = g.CreateTriangle(a, b, v)
		return
	})
	return
}

// GeometrySetVertex moves vertex i of h to (x, y, z).
func (c *Context) GeometrySetVertex(h Handle, i uint32, x, y, z float64) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.SetVertex(i, x, y, z) })
}

// GeometrySetTriangle replaces the vertex indices of
// triangle i of h.
func (c *Context) GeometrySetTriangle(h Handle, i, a, b, v uint32) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.SetTriangle(i, a, b, v) })
}

// GeometryDeleteVertex deletes vertex i of h, and every
// triangle referencing it.
func (c *Context) GeometryDeleteVertex(h Handle, i uint32) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.DeleteVertex(i) })
}

// GeometryDeleteTriangle deletes triangle i of h.
func (c *Context) GeometryDeleteTriangle(h Handle, i uint32) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.DeleteTriangle(i) })
}

// GeometryDeleteVertices deletes the selected vertices of
// h, and every triangle referencing them.
func (c *Context) GeometryDeleteVertices(h Handle) error {
	return c.edit(h, (*geometry.Geometry).DeleteVertices)
}

// GeometryDeleteTriangles deletes the selected triangles
// of h.
func (c *Context) GeometryDeleteTriangles(h Handle) error {
	return c.edit(h, (*geometry.Geometry).DeleteTriangles)
}

// GeometryDeleteStrayVertices deletes the vertices of h
// that no triangle references.
func (c *Context) GeometryDeleteStrayVertices(h Handle) error {
	return c.edit(h, (*geometry.Geometry).DeleteStrayVertices)
}

// GeometrySelect selects vertices and triangles of h
// within the given box.
func (c *Context) GeometrySelect(h Handle, x1, y1, z1, x2, y2, z2 float64) error {
	return c.edit(h, func(g *geometry.Geometry) { g.Select(x1, y1, z1, x2, y2, z2) })
}

// GeometrySelectVertices selects the vertices of h within
// the given box.
func (c *Context) GeometrySelectVertices(h Handle, x1, y1, z1, x2, y2, z2 float64) error {
	return c.edit(h, func(g *geometry.Geometry) { g.SelectVertices(x1, y1, z1, x2, y2, z2) })
}

// GeometrySelectTriangles selects the triangles of h
// whose vertices all lie within the given box.
func (c *Context) GeometrySelectTriangles(h Handle, x1, y1, z1, x2, y2, z2 float64) error {
	return c.edit(h, func(g *geometry.Geometry) { g.SelectTriangles(x1, y1, z1, x2, y2, z2) })
}

// GeometrySelectAll selects every vertex and triangle of h.
func (c *Context) GeometrySelectAll(h Handle) error {
	return c.edit(h, (*geometry.Geometry).SelectAll)
}

// GeometryClearSelection empties the selection of h.
func (c *Context) GeometryClearSelection(h Handle) error {
	return c.edit(h, (*geometry.Geometry).ClearSelection)
}

// GeometryTranslate translates every vertex of h.
func (c *Context) GeometryTranslate(h Handle, x, y, z float64) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.Translate(x, y, z) })
}

// GeometryScale scales every vertex of h.
func (c *Context) GeometryScale(h Handle, x, y, z float64) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.Scale(x, y, z) })
}

// GeometryRotateEuler rotates every vertex of h about the
// origin.
func (c *Context) GeometryRotateEuler(h Handle, roll, pitch, yaw float64) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.RotateEuler(roll, pitch, yaw) })
}

// GeometryRotateAxis rotates every vertex of h by angle
// about the axis (x, y, z).
func (c *Context) GeometryRotateAxis(h Handle, x, y, z, angle float64) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.RotateAxis(x, y, z, angle) })
}

// GeometryExtrude extrudes the selected triangles of h.
func (c *Context) GeometryExtrude(h Handle, x, y, z float64) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.Extrude(x, y, z) })
}

// GeometryMerge merges the selected vertices of h into one
// at (x, y, z).
func (c *Context) GeometryMerge(h Handle, x, y, z float64) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.Merge(x, y, z) })
}

// GeometryFlipNormals reverses the winding of every
// triangle of h.
func (c *Context) GeometryFlipNormals(h Handle) error {
	return c.edit(h, (*geometry.Geometry).FlipNormals)
}

// GeometryDoubleSide adds a reversed copy of every
// triangle of h.
func (c *Context) GeometryDoubleSide(h Handle) error {
	return c.edit(h, (*geometry.Geometry).DoubleSide)
}

// GeometryCopy duplicates the contents of h and selects
// the copy.
func (c *Context) GeometryCopy(h Handle) error {
	return c.edit(h, (*geometry.Geometry).Copy)
}

// GeometryAddSquare adds a square to h and selects it.
func (c *Context) GeometryAddSquare(h Handle, unit bool) error {
	return c.edit(h, func(g *geometry.Geometry) { g.AddSquare(unit) })
}

// GeometryAddCube adds a cube to h and selects it.
func (c *Context) GeometryAddCube(h Handle, unit bool) error {
	return c.edit(h, func(g *geometry.Geometry) { g.AddCube(unit) })
}

// GeometryAddCircle adds a circle of the given number of
// segments to h and selects it.
func (c *Context) GeometryAddCircle(h Handle, segments int, unit bool) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.AddCircle(segments, unit) })
}

// GeometryAddCylinder adds a capped cylinder of the given
// number of segments to h and selects it.
func (c *Context) GeometryAddCylinder(h Handle, segments int, unit bool) error {
	return c.geometry(h, func(g *geometry.Geometry) error { return g.AddCylinder(segments, unit) })
}

// GeometryPack freezes the current state of h into the
// scene graph and returns the packed geometry's handle.
// h may be edited or freed afterwards.
func (c *Context) GeometryPack(h Handle) (ph Handle, err error) {
	var p *geometry.Packed
	err = c.edit(h, func(g *geometry.Geometry) { p = g.Pack() })
	if err != nil {
		return
	}
	err = c.withGraph(func(g *scene.Graph) error {
		ph = g.AddPacked(p)
		return nil
	})
	if err != nil {
		return
	}
	c.log.Debug("geometry packed",
		zap.Stringer("geometry", h),
		zap.Stringer("packed", ph),
		zap.Int("vertices", p.VertexCount()),
		zap.Int("indices", p.IndexCount()))
	return
}
