// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"fmt"
	"slices"

	"github.com/gviegas/paraforge/arena"
)

// Scene is a named list of root nodes.
type Scene struct {
	Name  string
	Roots []arena.Handle
}

// NewScene creates an empty scene.
func (g *Graph) NewScene(name string) (arena.Handle, error) {
	if err := checkName(name); err != nil {
		return arena.Nil, err
	}
	return g.scenes.Allocate(Scene{Name: name}), nil
}

// Scene returns a copy of the scene identified by h.
func (g *Graph) Scene(h arena.Handle) (Scene, error) {
	s, err := get(g.scenes, "scene", h)
	if err != nil {
		return Scene{}, err
	}
	return Scene{Name: s.Name, Roots: slices.Clone(s.Roots)}, nil
}

// AddRoot appends node to the roots of scene.
// node must not have a parent, and must not be a root of
// scene already. It may be a root of other scenes.
func (g *Graph) AddRoot(scene, node arena.Handle) error {
	s, err := get(g.scenes, "scene", scene)
	if err != nil {
		return err
	}
	n, err := g.node(node)
	if err != nil {
		return err
	}
	if !n.Parent.IsNil() {
		return fmt.Errorf("scene: node %v: %w", node, ErrNotRoot)
	}
	if slices.Contains(s.Roots, node) {
		return fmt.Errorf("scene: node %v in scene %v: %w", node, scene, ErrSharedNode)
	}
	s.Roots = append(s.Roots, node)
	return nil
}
