// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"fmt"
	"slices"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
)

// Primitive binds packed geometry to a material.
type Primitive struct {
	Packed   arena.Handle
	Material arena.Handle
}

// Mesh is a named list of primitives.
type Mesh struct {
	Name       string
	Primitives []Primitive
}

// NewMesh creates an empty mesh.
func (g *Graph) NewMesh(name string) (arena.Handle, error) {
	if err := checkName(name); err != nil {
		return arena.Nil, err
	}
	return g.meshes.Allocate(Mesh{Name: name}), nil
}

// Mesh returns a copy of the mesh identified by h.
func (g *Graph) Mesh(h arena.Handle) (Mesh, error) {
	m, err := get(g.meshes, "mesh", h)
	if err != nil {
		return Mesh{}, err
	}
	return Mesh{Name: m.Name, Primitives: slices.Clone(m.Primitives)}, nil
}

// AddPrimitive appends a primitive to mesh and returns
// its index.
// The packed geometry must have at least one triangle and
// finite positions.
func (g *Graph) AddPrimitive(mesh, packed, material arena.Handle) (int, error) {
	m, err := get(g.meshes, "mesh", mesh)
	if err != nil {
		return 0, err
	}
	p, err := g.Packed(packed)
	if err != nil {
		return 0, err
	}
	if p.IsEmpty() {
		return 0, fmt.Errorf("scene: packed geometry %v: %w", packed, ErrEmptyGeometry)
	}
	if !p.Finite() {
		return 0, fmt.Errorf("scene: packed geometry %v: %w", packed, geometry.ErrParameterOutOfRange)
	}
	if _, err := get(g.materials, "material", material); err != nil {
		return 0, err
	}
	m.Primitives = append(m.Primitives, Primitive{packed, material})
	return len(m.Primitives) - 1, nil
}

// PrimitiveCount returns the number of primitives in mesh.
func (g *Graph) PrimitiveCount(mesh arena.Handle) (int, error) {
	m, err := get(g.meshes, "mesh", mesh)
	if err != nil {
		return 0, err
	}
	return len(m.Primitives), nil
}
