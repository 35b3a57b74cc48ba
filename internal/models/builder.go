// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package models

import (
	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
	"github.com/gviegas/paraforge/scene"
)

// builder wraps a scene.Graph, recording the first error.
// Once err is set every method is a no-op returning
// arena.Nil.
type builder struct {
	g   *scene.Graph
	err error
}

func (b *builder) check(err error) bool {
	if b.err == nil {
		b.err = err
	}
	return b.err == nil
}

func (b *builder) handle(h arena.Handle, err error) arena.Handle {
	if !b.check(err) {
		return arena.Nil
	}
	return h
}

func (b *builder) material(name, hex string, metallic, roughness float32) arena.Handle {
	if b.err != nil {
		return arena.Nil
	}
	c, err := scene.ParseColor(hex)
	if !b.check(err) {
		return arena.Nil
	}
	return b.handle(b.g.NewMaterial(name, c, metallic, roughness))
}

type prim struct {
	geo *geometry.Geometry
	mat arena.Handle
}

// mesh packs each geometry into a primitive of a new mesh.
func (b *builder) mesh(name string, prims ...prim) arena.Handle {
	m := b.handle(b.g.NewMesh(name))
	for _, p := range prims {
		if b.err != nil {
			break
		}
		_, err := b.g.AddPrimitive(m, b.g.AddPacked(p.geo.Pack()), p.mat)
		b.check(err)
	}
	return b.handle(m, b.err)
}

// node creates a node with mesh (which may be arena.Nil)
// and the given children.
func (b *builder) node(name string, mesh arena.Handle, children ...arena.Handle) arena.Handle {
	n := b.handle(b.g.NewNode(name))
	if b.err == nil && !mesh.IsNil() {
		b.check(b.g.SetMesh(n, mesh))
	}
	for _, c := range children {
		b.add(n, c)
	}
	return b.handle(n, b.err)
}

func (b *builder) add(parent, child arena.Handle) {
	if b.err == nil {
		b.check(b.g.Add(parent, child))
	}
}

func (b *builder) translate(n arena.Handle, x, y, z float32) arena.Handle {
	if b.err == nil {
		b.check(b.g.Translate(n, x, y, z))
	}
	return b.handle(n, b.err)
}

func (b *builder) scale(n arena.Handle, x, y, z float32) arena.Handle {
	if b.err == nil {
		b.check(b.g.Scale(n, x, y, z))
	}
	return b.handle(n, b.err)
}

func (b *builder) rotateZ(n arena.Handle, angle float32) arena.Handle {
	if b.err == nil {
		b.check(b.g.RotateAxis(n, 0, 0, 1, angle))
	}
	return b.handle(n, b.err)
}

func (b *builder) clone(n arena.Handle) arena.Handle {
	if b.err != nil {
		return arena.Nil
	}
	return b.handle(b.g.CloneSubtree(n))
}

func (b *builder) done(root arena.Handle) (arena.Handle, error) {
	if b.err != nil {
		return arena.Nil, b.err
	}
	return root, nil
}
