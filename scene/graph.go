// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package scene implements a scene graph of nodes, meshes
// and materials that can be serialized as binary glTF.
package scene

import (
	"errors"
	"fmt"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
	"github.com/gviegas/paraforge/gltf"
)

// MaxName is the maximum length of a name, in bytes.
const MaxName = 64

var (
	// ErrCycle is returned by Add when the child is the
	// parent or one of its ancestors.
	ErrCycle = errors.New("scene: node would become its own ancestor")
	// ErrNameTooLong means that a name exceeds MaxName.
	ErrNameTooLong = errors.New("scene: name too long")
	// ErrColor means that a color or material factor is
	// malformed or out of range.
	ErrColor = errors.New("scene: invalid color")
	// ErrEmptyGeometry is returned by AddPrimitive for packed
	// geometry with no triangles.
	ErrEmptyGeometry = errors.New("scene: packed geometry has no triangles")
	// ErrNotRoot means that a scene root has a parent.
	ErrNotRoot = errors.New("scene: node has a parent")
	// ErrSharedNode means that a node would be listed twice,
	// such as a root added to the same scene again.
	ErrSharedNode = errors.New("scene: node reachable more than once")
)

// Graph owns every resource of a scene graph.
// Resources are identified by arena handles, and may be
// shared by reference (nodes excepted).
// It is not safe for concurrent use.
type Graph struct {
	packed    *arena.Arena[*geometry.Packed]
	materials *arena.Arena[Material]
	meshes    *arena.Arena[Mesh]
	nodes     *arena.Arena[Node]
	scenes    *arena.Arena[Scene]
	asset     gltf.Asset
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		packed:    arena.New[*geometry.Packed](),
		materials: arena.New[Material](),
		meshes:    arena.New[Mesh](),
		nodes:     arena.New[Node](),
		scenes:    arena.New[Scene](),
		asset:     gltf.Asset{Generator: "paraforge", Version: gltf.Version},
	}
}

// SetAsset sets the generator and copyright strings of the
// serialized asset.
func (g *Graph) SetAsset(generator, copyright string) {
	g.asset.Generator = generator
	g.asset.Copyright = copyright
}

func checkName(name string) error {
	if len(name) > MaxName {
		return fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(name))
	}
	return nil
}

func get[T any](a *arena.Arena[T], kind string, h arena.Handle) (*T, error) {
	p, err := a.Get(h)
	if err != nil {
		return nil, fmt.Errorf("scene: %s %v: %w", kind, h, err)
	}
	return p, nil
}

// AddPacked stores p and returns its handle.
func (g *Graph) AddPacked(p *geometry.Packed) arena.Handle { return g.packed.Allocate(p) }

// Packed returns the packed geometry identified by h.
func (g *Graph) Packed(h arena.Handle) (*geometry.Packed, error) {
	p, err := get(g.packed, "packed geometry", h)
	if err != nil {
		return nil, err
	}
	return *p, nil
}

// PackedCount returns the number of packed geometries.
func (g *Graph) PackedCount() int { return g.packed.Len() }

// MaterialCount returns the number of materials.
func (g *Graph) MaterialCount() int { return g.materials.Len() }

// MeshCount returns the number of meshes.
func (g *Graph) MeshCount() int { return g.meshes.Len() }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return g.nodes.Len() }

// SceneCount returns the number of scenes.
func (g *Graph) SceneCount() int { return g.scenes.Len() }
