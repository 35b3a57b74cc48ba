// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package paraforge

import (
	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/linear"
	"github.com/gviegas/paraforge/scene"
)

// name reads the name slot.
func (c *Context) name() (string, error) { return c.ReadString(NameSlot) }

// create reads the name slot and calls f with it.
func (c *Context) create(f func(g *scene.Graph, name string) (Handle, error)) (h Handle, err error) {
	name, err := c.name()
	if err != nil {
		return arena.Nil, err
	}
	err = c.withGraph(func(g *scene.Graph) (err error) {
		h, err = f(g, name)
		return
	})
	return
}

// NewMaterial creates a material named by the name slot,
// with base color given by the color slot as a hex string
// ("#rgb", "#rgba", "#rrggbb" or "#rrggbbaa").
// An empty color slot means white.
func (c *Context) NewMaterial(metallic, roughness float32) (Handle, error) {
	hex, err := c.ReadString(ColorSlot)
	if err != nil {
		return arena.Nil, err
	}
	color := scene.White
	if hex != "" {
		if color, err = scene.ParseColor(hex); err != nil {
			return arena.Nil, err
		}
	}
	return c.create(func(g *scene.Graph, name string) (Handle, error) {
		return g.NewMaterial(name, color, metallic, roughness)
	})
}

// NewMaterialRGBA is like NewMaterial, but takes the color
// as arguments.
func (c *Context) NewMaterialRGBA(r, g, b, a, metallic, roughness float32) (Handle, error) {
	return c.create(func(gr *scene.Graph, name string) (Handle, error) {
		return gr.NewMaterial(name, scene.Color{r, g, b, a}, metallic, roughness)
	})
}

// NewScene creates a scene named by the name slot.
func (c *Context) NewScene() (Handle, error) { return c.create((*scene.Graph).NewScene) }

// NewNode creates a detached node named by the name slot.
func (c *Context) NewNode() (Handle, error) { return c.create((*scene.Graph).NewNode) }

// NewNodeInScene creates a node named by the name slot as
// a root of sc.
func (c *Context) NewNodeInScene(sc Handle) (Handle, error) {
	return c.create(func(g *scene.Graph, name string) (Handle, error) {
		if _, err := g.Scene(sc); err != nil {
			return arena.Nil, err
		}
		n, err := g.NewNode(name)
		if err != nil {
			return arena.Nil, err
		}
		return n, g.AddRoot(sc, n)
	})
}

// NewMesh creates an empty mesh named by the name slot.
func (c *Context) NewMesh() (Handle, error) { return c.create((*scene.Graph).NewMesh) }

// NewMeshInNode creates a mesh named by the name slot and
// sets it as the mesh of node.
func (c *Context) NewMeshInNode(node Handle) (Handle, error) {
	return c.create(func(g *scene.Graph, name string) (Handle, error) {
		if _, err := g.Node(node); err != nil {
			return arena.Nil, err
		}
		m, err := g.NewMesh(name)
		if err != nil {
			return arena.Nil, err
		}
		return m, g.SetMesh(node, m)
	})
}

// NewPrimInMesh appends a primitive to mesh and returns its
// index.
func (c *Context) NewPrimInMesh(mesh, packed, material Handle) (i int, err error) {
	err = c.withGraph(func(g *scene.Graph) (err error) {
		i, err = g.AddPrimitive(mesh, packed, material)
		return
	})
	return
}

// MeshPrimCount returns the number of primitives in mesh.
func (c *Context) MeshPrimCount(mesh Handle) (n int, err error) {
	err = c.withGraph(func(g *scene.Graph) (err error) {
		n, err = g.PrimitiveCount(mesh)
		return
	})
	return
}

func (c *Context) count(f func(g *scene.Graph) int) (n int, err error) {
	err = c.withGraph(func(g *scene.Graph) error {
		n = f(g)
		return nil
	})
	return
}

// SceneCount returns the number of live scenes.
func (c *Context) SceneCount() (int, error) { return c.count((*scene.Graph).SceneCount) }

// NodeCount returns the number of live nodes.
func (c *Context) NodeCount() (int, error) { return c.count((*scene.Graph).NodeCount) }

// MeshCount returns the number of live meshes.
func (c *Context) MeshCount() (int, error) { return c.count((*scene.Graph).MeshCount) }

// MaterialCount returns the number of live materials.
func (c *Context) MaterialCount() (int, error) { return c.count((*scene.Graph).MaterialCount) }

// PackedCount returns the number of packed geometries.
func (c *Context) PackedCount() (int, error) { return c.count((*scene.Graph).PackedCount) }

// SceneAddRoot adds node, which must have no parent, to the
// roots of sc.
func (c *Context) SceneAddRoot(sc, node Handle) error {
	return c.withGraph(func(g *scene.Graph) error { return g.AddRoot(sc, node) })
}

// NodeAdd makes child a child of parent.
func (c *Context) NodeAdd(parent, child Handle) error {
	return c.withGraph(func(g *scene.Graph) error { return g.Add(parent, child) })
}

// NodeRemove detaches node from its parent.
func (c *Context) NodeRemove(node Handle) error {
	return c.withGraph(func(g *scene.Graph) error { return g.Remove(node) })
}

// NodeSetMesh sets the mesh of node. mesh may be Nil.
func (c *Context) NodeSetMesh(node, mesh Handle) error {
	return c.withGraph(func(g *scene.Graph) error { return g.SetMesh(node, mesh) })
}

// NodeTranslate adds (x, y, z) to the translation of node.
func (c *Context) NodeTranslate(node Handle, x, y, z float32) error {
	return c.withGraph(func(g *scene.Graph) error { return g.Translate(node, x, y, z) })
}

// NodeScale multiplies the scale of node by (x, y, z).
func (c *Context) NodeScale(node Handle, x, y, z float32) error {
	return c.withGraph(func(g *scene.Graph) error { return g.Scale(node, x, y, z) })
}

// NodeRotateEuler rotates node by roll (x), then pitch
// (y), then yaw (z) radians, in its local frame.
func (c *Context) NodeRotateEuler(node Handle, roll, pitch, yaw float32) error {
	return c.withGraph(func(g *scene.Graph) error { return g.RotateEuler(node, roll, pitch, yaw) })
}

// NodeRotateAxis rotates node by angle radians about the
// axis (x, y, z), in its local frame.
func (c *Context) NodeRotateAxis(node Handle, x, y, z, angle float32) error {
	return c.withGraph(func(g *scene.Graph) error { return g.RotateAxis(node, x, y, z, angle) })
}

// NodeSetMatrix replaces the local transform of node with
// the column-major matrix m.
// Later TRS edits discard the matrix.
func (c *Context) NodeSetMatrix(node Handle, m [16]float32) error {
	var mat linear.M4
	mat.FromArray(&m)
	return c.withGraph(func(g *scene.Graph) error { return g.SetMatrix(node, mat) })
}

// NodeCloneSubtree copies node and its descendants.
// Meshes are shared with the original.
func (c *Context) NodeCloneSubtree(node Handle) (h Handle, err error) {
	err = c.withGraph(func(g *scene.Graph) (err error) {
		h, err = g.CloneSubtree(node)
		return
	})
	return
}

// DefaultScene returns the scene created by Init.
func (c *Context) DefaultScene() (h Handle, err error) {
	err = c.withGraph(func(g *scene.Graph) error {
		h = g.DefaultScene()
		return nil
	})
	return
}
