// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every error returned from the
// Check methods.
var ErrInvalid = errors.New("gltf: invalid document")

func newErr(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, reason)
}

func inRange(i, n int) bool { return i >= 0 && i < n }

// Check checks that f is valid glTF.
// Besides index ranges, it checks that the node hierarchy
// is a forest (no node has two parents and there are no
// cycles) and that scenes only list root nodes.
func (f *GLTF) Check() error {
	if f.Asset.Version == "" {
		return newErr("missing GLTF.Asset.Version")
	}
	if s := f.Scene; s != nil && !inRange(int(*s), len(f.Scenes)) {
		return newErr("invalid GLTF.Scene index")
	}
	for _, b := range f.Buffers {
		if b.ByteLength < 1 {
			return newErr("invalid Buffer.ByteLength value")
		}
	}
	for i := range f.BufferViews {
		if err := f.BufferViews[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Accessors {
		if err := f.Accessors[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Materials {
		if err := f.Materials[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Meshes {
		if err := f.Meshes[i].Check(f); err != nil {
			return err
		}
	}
	return f.checkNodes()
}

// Check checks that v is valid glTF.bufferViews' element.
func (v *BufferView) Check(gltf *GLTF) error {
	if !inRange(int(v.Buffer), len(gltf.Buffers)) {
		return newErr("invalid BufferView.Buffer index")
	}
	if v.ByteOffset < 0 {
		return newErr("invalid BufferView.ByteOffset value")
	}
	if v.ByteLength < 1 || v.ByteOffset+v.ByteLength > gltf.Buffers[v.Buffer].ByteLength {
		return newErr("invalid BufferView.ByteLength value")
	}
	if v.ByteStride != 0 && (v.ByteStride < 4 || v.ByteStride > 252 || v.ByteStride&3 != 0) {
		return newErr("invalid BufferView.ByteStride value")
	}
	switch v.Target {
	case 0, ARRAY_BUFFER, ELEMENT_ARRAY_BUFFER:
	default:
		return newErr("invalid BufferView.Target value")
	}
	return nil
}

// Check checks that a is valid glTF.accessors' element.
func (a *Accessor) Check(gltf *GLTF) error {
	size := ComponentSize(a.ComponentType)
	if size == 0 {
		return newErr("invalid Accessor.ComponentType value")
	}
	if a.Count < 1 {
		return newErr("invalid Accessor.Count value")
	}
	n := ComponentCount(a.Type)
	if n == 0 {
		return newErr("invalid Accessor.Type value")
	}
	if a.ByteOffset < 0 || a.ByteOffset%size != 0 {
		return newErr("invalid Accessor.ByteOffset value")
	}
	if a.BufferView != nil {
		idx := *a.BufferView
		if !inRange(int(idx), len(gltf.BufferViews)) {
			return newErr("invalid Accessor.BufferView index")
		}
		v := &gltf.BufferViews[idx]
		stride := v.ByteStride
		if stride == 0 {
			stride = size * n
		}
		if a.ByteOffset+stride*(a.Count-1)+size*n > v.ByteLength {
			return newErr("Accessor exceeds BufferView")
		}
	}
	if (a.Max != nil && int64(len(a.Max)) != n) || (a.Min != nil && int64(len(a.Min)) != n) {
		return newErr("invalid Accessor.Max/Min length")
	}
	for i := range a.Min {
		if a.Max != nil && a.Min[i] > a.Max[i] {
			return newErr("Accessor.Min greater than Accessor.Max")
		}
	}
	return nil
}

// Check checks that m is valid glTF.materials' element.
func (m *Material) Check(gltf *GLTF) error {
	switch m.AlphaMode {
	case "", OPAQUE, MASK, BLEND:
	default:
		return newErr("invalid Material.AlphaMode value")
	}
	if p := m.PBRMetallicRoughness; p != nil {
		if c := p.BaseColorFactor; c != nil {
			for _, x := range c {
				if !(x >= 0 && x <= 1) {
					return newErr("invalid Material.PBRMetallicRoughness.BaseColorFactor value")
				}
			}
		}
		for _, x := range [...]*float32{p.MetallicFactor, p.RoughnessFactor} {
			if x != nil && !(*x >= 0 && *x <= 1) {
				return newErr("invalid Material.PBRMetallicRoughness factor")
			}
		}
	}
	return nil
}

// Check checks that m is valid glTF.meshes' element.
func (m *Mesh) Check(gltf *GLTF) error {
	if len(m.Primitives) == 0 {
		return newErr("Mesh.Primitives is empty")
	}
	for _, p := range m.Primitives {
		if len(p.Attributes) == 0 {
			return newErr("Primitive.Attributes is empty")
		}
		for _, a := range p.Attributes {
			if !inRange(int(a), len(gltf.Accessors)) {
				return newErr("invalid Primitive.Attributes index")
			}
		}
		if p.Indices != nil {
			if !inRange(int(*p.Indices), len(gltf.Accessors)) {
				return newErr("invalid Primitive.Indices index")
			}
			switch a := &gltf.Accessors[*p.Indices]; {
			case a.Type != SCALAR:
				return newErr("invalid Primitive.Indices accessor type")
			case a.ComponentType != UNSIGNED_BYTE && a.ComponentType != UNSIGNED_SHORT && a.ComponentType != UNSIGNED_INT:
				return newErr("invalid Primitive.Indices component type")
			}
		}
		if p.Material != nil && !inRange(int(*p.Material), len(gltf.Materials)) {
			return newErr("invalid Primitive.Material index")
		}
		if p.Mode != nil && !inRange(int(*p.Mode), TRIANGLE_FAN+1) {
			return newErr("invalid Primitive.Mode value")
		}
	}
	return nil
}

// checkNodes checks node indices and that the node hierarchy
// is a forest whose roots are the only nodes listed
// in scenes.
func (f *GLTF) checkNodes() error {
	parent := make([]int64, len(f.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	for i, n := range f.Nodes {
		if n.Mesh != nil && !inRange(int(*n.Mesh), len(f.Meshes)) {
			return newErr("invalid Node.Mesh index")
		}
		if n.Matrix != nil && (n.Rotation != nil || n.Scale != nil || n.Translation != nil) {
			return newErr("Node has both Matrix and TRS")
		}
		for _, c := range n.Children {
			if !inRange(int(c), len(f.Nodes)) {
				return newErr("invalid Node.Children index")
			}
			if parent[c] != -1 {
				return newErr("Node has multiple parents")
			}
			parent[c] = int64(i)
		}
	}
	// With at most one parent per node, a cycle exists iff
	// walking up from some node never reaches a root.
	for i := range f.Nodes {
		n := 0
		for p := parent[i]; p != -1; p = parent[p] {
			if n++; n > len(f.Nodes) {
				return newErr("Node hierarchy has a cycle")
			}
		}
	}
	for _, s := range f.Scenes {
		seen := make(map[int64]bool, len(s.Nodes))
		for _, n := range s.Nodes {
			if !inRange(int(n), len(f.Nodes)) {
				return newErr("invalid Scene.Nodes index")
			}
			if parent[n] != -1 {
				return newErr("Scene.Nodes contains a non-root node")
			}
			if seen[n] {
				return newErr("Scene.Nodes contains duplicates")
			}
			seen[n] = true
		}
	}
	return nil
}
