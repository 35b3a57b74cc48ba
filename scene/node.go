// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"fmt"
	"math"
	"slices"

	"github.com/jinzhu/copier"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
	"github.com/gviegas/paraforge/linear"
)

// Node is an element of the scene graph.
// Nodes have at most one parent and an arbitrary number
// of children.
//
// The local transform is given either by Matrix or by the
// Translation, Rotation and Scale properties. A nil
// property means the default (identity) value.
type Node struct {
	Name        string
	Translation *linear.V3
	Rotation    *linear.Q
	Scale       *linear.V3
	Matrix      *linear.M4
	Mesh        arena.Handle
	Children    []arena.Handle
	Parent      arena.Handle
}

// NewNode creates a new node with no mesh and identity
// transform.
func (g *Graph) NewNode(name string) (arena.Handle, error) {
	if err := checkName(name); err != nil {
		return arena.Nil, err
	}
	return g.nodes.Allocate(Node{Name: name}), nil
}

func (g *Graph) node(h arena.Handle) (*Node, error) { return get(g.nodes, "node", h) }

// Node returns a copy of the node identified by h.
func (g *Graph) Node(h arena.Handle) (Node, error) {
	n, err := g.node(h)
	if err != nil {
		return Node{}, err
	}
	c := *n
	c.Children = slices.Clone(n.Children)
	c.Translation = clone(n.Translation)
	c.Rotation = clone(n.Rotation)
	c.Scale = clone(n.Scale)
	c.Matrix = clone(n.Matrix)
	return c, nil
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// SetMesh sets the mesh of node.
// mesh can be arena.Nil to remove it.
func (g *Graph) SetMesh(node, mesh arena.Handle) error {
	n, err := g.node(node)
	if err != nil {
		return err
	}
	if !mesh.IsNil() {
		if _, err := get(g.meshes, "mesh", mesh); err != nil {
			return err
		}
	}
	n.Mesh = mesh
	return nil
}

// finite reports whether every value is neither NaN nor
// infinite.
func finite(xs ...float32) bool {
	for _, x := range xs {
		if isNaN(x) || math.IsInf(float64(x), 0) {
			return false
		}
	}
	return true
}

// trs calls f with the node's TRS properties. f returns
// whether its result is usable; if so, the node's matrix
// is cleared, otherwise the call fails with
// geometry.ErrParameterOutOfRange.
// f must replace properties rather than modify them in
// place, so that a rejected result leaves the node as it
// was.
func (g *Graph) trs(node arena.Handle, f func(n *Node) bool) error {
	n, err := g.node(node)
	if err != nil {
		return err
	}
	c := *n
	if !f(&c) {
		return fmt.Errorf("scene: transforming %v: %w", node, geometry.ErrParameterOutOfRange)
	}
	c.Matrix = nil
	*n = c
	return nil
}

// Translate adds (x, y, z) to the node's translation.
func (g *Graph) Translate(node arena.Handle, x, y, z float32) error {
	return g.trs(node, func(n *Node) bool {
		t := linear.V3{x, y, z}
		if n.Translation != nil {
			t.Add(n.Translation, &t)
		}
		n.Translation = &t
		return finite(t[:]...)
	})
}

// Scale multiplies the node's scale by (x, y, z).
func (g *Graph) Scale(node arena.Handle, x, y, z float32) error {
	return g.trs(node, func(n *Node) bool {
		s := linear.V3{x, y, z}
		if n.Scale != nil {
			s.MulElem(n.Scale, &s)
		}
		n.Scale = &s
		return finite(s[:]...)
	})
}

// rotate composes the node's rotation with r, then
// renormalizes it.
func (g *Graph) rotate(node arena.Handle, r *linear.Q) error {
	return g.trs(node, func(n *Node) bool {
		q := *r
		if n.Rotation != nil {
			q.Mul(n.Rotation, r)
		}
		if l := q.Len(); l == 0 || !finite(l) {
			return false
		}
		q.Norm(&q)
		n.Rotation = &q
		return true
	})
}

// RotateEuler composes the node's rotation with a rotation
// of roll (x), then pitch (y), then yaw (z) radians.
// The new rotation is applied on the right, i.e., in the
// node's local frame.
func (g *Graph) RotateEuler(node arena.Handle, roll, pitch, yaw float32) error {
	if !finite(roll, pitch, yaw) {
		return geometry.ErrParameterOutOfRange
	}
	var q linear.Q
	q.Euler(roll, pitch, yaw)
	return g.rotate(node, &q)
}

// RotateAxis composes the node's rotation with a rotation
// of angle radians about the axis (x, y, z).
func (g *Graph) RotateAxis(node arena.Handle, x, y, z, angle float32) error {
	axis := linear.V3{x, y, z}
	if !finite(x, y, z, angle) {
		return geometry.ErrParameterOutOfRange
	}
	if l := axis.Len(); l == 0 || !finite(l) {
		return geometry.ErrParameterOutOfRange
	}
	axis.Norm(&axis)
	var q linear.Q
	q.Rotate(angle, &axis)
	return g.rotate(node, &q)
}

// SetTranslation replaces the node's translation.
func (g *Graph) SetTranslation(node arena.Handle, t linear.V3) error {
	return g.trs(node, func(n *Node) bool {
		n.Translation = &t
		return finite(t[:]...)
	})
}

// SetRotation replaces the node's rotation.
// r must be a unit quaternion.
func (g *Graph) SetRotation(node arena.Handle, r linear.Q) error {
	return g.trs(node, func(n *Node) bool {
		n.Rotation = &r
		return finite(r.V[0], r.V[1], r.V[2], r.R)
	})
}

// SetScale replaces the node's scale.
func (g *Graph) SetScale(node arena.Handle, s linear.V3) error {
	return g.trs(node, func(n *Node) bool {
		n.Scale = &s
		return finite(s[:]...)
	})
}

// SetMatrix replaces the node's local transform with m,
// clearing its TRS properties.
func (g *Graph) SetMatrix(node arena.Handle, m linear.M4) error {
	n, err := g.node(node)
	if err != nil {
		return err
	}
	if a := m.Array(); !finite(a[:]...) {
		return fmt.Errorf("scene: setting matrix of %v: %w", node, geometry.ErrParameterOutOfRange)
	}
	n.Translation, n.Rotation, n.Scale = nil, nil, nil
	n.Matrix = &m
	return nil
}

// Local returns the local transform of node.
func (g *Graph) Local(node arena.Handle) (linear.M4, error) {
	n, err := g.node(node)
	if err != nil {
		return linear.M4{}, err
	}
	return n.local(), nil
}

func (n *Node) local() (m linear.M4) {
	if n.Matrix != nil {
		return *n.Matrix
	}
	if n.Translation == nil && n.Rotation == nil && n.Scale == nil {
		m.I()
		return
	}
	var r linear.Q
	r.I()
	t, s := linear.V3{}, linear.V3{1, 1, 1}
	if n.Translation != nil {
		t = *n.Translation
	}
	if n.Rotation != nil {
		r = *n.Rotation
	}
	if n.Scale != nil {
		s = *n.Scale
	}
	m.TRS(&t, &r, &s)
	return
}

// World returns the transform of node relative to the
// root of its tree.
func (g *Graph) World(node arena.Handle) (linear.M4, error) {
	n, err := g.node(node)
	if err != nil {
		return linear.M4{}, err
	}
	w := n.local()
	for p := n.Parent; !p.IsNil(); {
		pn, err := g.node(p)
		if err != nil {
			return linear.M4{}, err
		}
		l := pn.local()
		w.Mul(&l, &w)
		p = pn.Parent
	}
	return w, nil
}

// isAncestor returns whether a is node or one of its
// ancestors.
func (g *Graph) isAncestor(a, node arena.Handle) bool {
	for h := node; !h.IsNil(); {
		if h == a {
			return true
		}
		n, err := g.node(h)
		if err != nil {
			return false
		}
		h = n.Parent
	}
	return false
}

// Add inserts child as the last child of parent.
// If child already has a parent, it is removed from it
// first. Adding an ancestor of parent (or parent itself)
// fails with ErrCycle.
func (g *Graph) Add(parent, child arena.Handle) error {
	p, err := g.node(parent)
	if err != nil {
		return err
	}
	c, err := g.node(child)
	if err != nil {
		return err
	}
	if g.isAncestor(child, parent) {
		return fmt.Errorf("scene: adding %v to %v: %w", child, parent, ErrCycle)
	}
	g.detach(child, c)
	p.Children = append(p.Children, child)
	c.Parent = parent
	return nil
}

// Remove detaches node from its parent, if any.
func (g *Graph) Remove(node arena.Handle) error {
	n, err := g.node(node)
	if err != nil {
		return err
	}
	g.detach(node, n)
	return nil
}

func (g *Graph) detach(h arena.Handle, n *Node) {
	if n.Parent.IsNil() {
		return
	}
	if p, err := g.node(n.Parent); err == nil {
		if i := slices.Index(p.Children, h); i >= 0 {
			p.Children = slices.Delete(p.Children, i, i+1)
		}
	}
	n.Parent = arena.Nil
}

// CloneSubtree creates a copy of node and, recursively, of
// its children. The copy has no parent. Meshes (and thus
// materials and geometry) are shared with the original.
func (g *Graph) CloneSubtree(node arena.Handle) (arena.Handle, error) {
	n, err := g.node(node)
	if err != nil {
		return arena.Nil, err
	}
	var c Node
	if err := copier.CopyWithOption(&c, n, copier.Option{DeepCopy: true}); err != nil {
		return arena.Nil, fmt.Errorf("scene: cloning %v: %w", node, err)
	}
	c.Children = nil
	c.Parent = arena.Nil
	children := slices.Clone(n.Children)
	h := g.nodes.Allocate(c)
	for _, ch := range children {
		cc, err := g.CloneSubtree(ch)
		if err != nil {
			return arena.Nil, err
		}
		if err := g.Add(h, cc); err != nil {
			return arena.Nil, err
		}
	}
	return h, nil
}
