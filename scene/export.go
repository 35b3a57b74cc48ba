// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/gltf"
)

// export accumulates the glTF document for a Graph.
type export struct {
	g   *Graph
	doc gltf.GLTF
	bin []byte

	nodes     map[arena.Handle]int
	meshes    map[arena.Handle]int
	materials map[arena.Handle]int
	// Index of the position accessor; indices follow.
	packed map[arena.Handle]int
}

func (e *export) align() {
	for len(e.bin)&3 != 0 {
		e.bin = append(e.bin, 0)
	}
}

func (e *export) view(b []byte, target int) *int64 {
	e.align()
	e.doc.BufferViews = append(e.doc.BufferViews, gltf.BufferView{
		ByteOffset: int64(len(e.bin)),
		ByteLength: int64(len(b)),
		Target:     int64(target),
	})
	e.bin = append(e.bin, b...)
	return gltf.Index(len(e.doc.BufferViews) - 1)
}

// addNode appends h and its descendants in preorder.
func (e *export) addNode(h arena.Handle) (int, error) {
	if _, dup := e.nodes[h]; dup {
		return 0, fmt.Errorf("scene: node %v: %w", h, ErrSharedNode)
	}
	n, err := e.g.node(h)
	if err != nil {
		return 0, err
	}
	idx := len(e.doc.Nodes)
	e.nodes[h] = idx
	gn := gltf.Node{Name: n.Name}
	if n.Matrix != nil {
		a := n.Matrix.Array()
		gn.Matrix = &a
	}
	if n.Rotation != nil {
		a := n.Rotation.Array()
		gn.Rotation = &a
	}
	if n.Scale != nil {
		a := [3]float32(*n.Scale)
		gn.Scale = &a
	}
	if n.Translation != nil {
		a := [3]float32(*n.Translation)
		gn.Translation = &a
	}
	e.doc.Nodes = append(e.doc.Nodes, gn)

	if !n.Mesh.IsNil() {
		m, err := e.addMesh(n.Mesh)
		if err != nil {
			return 0, err
		}
		if m >= 0 {
			e.doc.Nodes[idx].Mesh = gltf.Index(m)
		}
	}
	children := make([]int64, 0, len(n.Children))
	for _, c := range n.Children {
		ci, err := e.addNode(c)
		if err != nil {
			return 0, err
		}
		children = append(children, int64(ci))
	}
	if len(children) > 0 {
		e.doc.Nodes[idx].Children = children
	}
	return idx, nil
}

// addMesh returns the index of mesh h, or -1 if the mesh
// has no primitives.
func (e *export) addMesh(h arena.Handle) (int, error) {
	if i, ok := e.meshes[h]; ok {
		return i, nil
	}
	m, err := get(e.g.meshes, "mesh", h)
	if err != nil {
		return 0, err
	}
	if len(m.Primitives) == 0 {
		e.meshes[h] = -1
		return -1, nil
	}
	gm := gltf.Mesh{Name: m.Name}
	for _, p := range m.Primitives {
		acc, err := e.addPacked(p.Packed)
		if err != nil {
			return 0, err
		}
		mat, err := e.addMaterial(p.Material)
		if err != nil {
			return 0, err
		}
		gm.Primitives = append(gm.Primitives, gltf.Primitive{
			Attributes: map[string]int64{gltf.POSITION: int64(acc)},
			Indices:    gltf.Index(acc + 1),
			Material:   gltf.Index(mat),
		})
	}
	e.doc.Meshes = append(e.doc.Meshes, gm)
	e.meshes[h] = len(e.doc.Meshes) - 1
	return e.meshes[h], nil
}

func (e *export) addMaterial(h arena.Handle) (int, error) {
	if i, ok := e.materials[h]; ok {
		return i, nil
	}
	m, err := get(e.g.materials, "material", h)
	if err != nil {
		return 0, err
	}
	color := [4]float32(m.Color)
	metal, rough := m.Metallic, m.Roughness
	e.doc.Materials = append(e.doc.Materials, gltf.Material{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			MetallicFactor:  &metal,
			RoughnessFactor: &rough,
		},
		Name: m.Name,
	})
	e.materials[h] = len(e.doc.Materials) - 1
	return e.materials[h], nil
}

// addPacked stores the buffers of packed geometry h and
// returns the index of its position accessor.
func (e *export) addPacked(h arena.Handle) (int, error) {
	if i, ok := e.packed[h]; ok {
		return i, nil
	}
	p, err := e.g.Packed(h)
	if err != nil {
		return 0, err
	}
	if p.IsEmpty() {
		return 0, fmt.Errorf("scene: packed geometry %v: %w", h, ErrEmptyGeometry)
	}
	mn, mx := p.Bounds()
	pos := len(e.doc.Accessors)
	e.doc.Accessors = append(e.doc.Accessors, gltf.Accessor{
		BufferView:    e.view(p.AppendPositions(nil), gltf.ARRAY_BUFFER),
		ComponentType: gltf.FLOAT,
		Count:         int64(p.VertexCount()),
		Type:          gltf.VEC3,
		Max:           mx[:],
		Min:           mn[:],
	})
	ctype := gltf.UNSIGNED_SHORT
	if p.WideIndices() {
		ctype = gltf.UNSIGNED_INT
	}
	idx := p.Indices()
	imin := idx[0]
	for _, i := range idx {
		imin = min(imin, i)
	}
	e.doc.Accessors = append(e.doc.Accessors, gltf.Accessor{
		BufferView:    e.view(p.AppendIndices(nil), gltf.ELEMENT_ARRAY_BUFFER),
		ComponentType: int64(ctype),
		Count:         int64(p.IndexCount()),
		Type:          gltf.SCALAR,
		Max:           []float32{float32(p.MaxIndex())},
		Min:           []float32{float32(imin)},
	})
	e.packed[h] = pos
	return pos, nil
}

// Document builds the glTF document describing every scene
// of g, along with its binary buffer.
//
// Scenes are visited in creation order and their nodes in
// depth-first preorder. Meshes, materials and packed
// geometries are emitted in the order they are first
// encountered. A root shared by several scenes is emitted
// once; any other node that is reachable more than once
// causes ErrSharedNode.
func (g *Graph) Document() (*gltf.GLTF, []byte, error) {
	e := export{
		g:         g,
		nodes:     make(map[arena.Handle]int),
		meshes:    make(map[arena.Handle]int),
		materials: make(map[arena.Handle]int),
		packed:    make(map[arena.Handle]int),
	}
	e.doc.Asset = g.asset
	roots := make(map[arena.Handle]bool)
	for _, s := range g.scenes.All() {
		gs := gltf.Scene{Name: s.Name}
		inScene := make(map[arena.Handle]bool, len(s.Roots))
		for _, r := range s.Roots {
			n, err := g.node(r)
			if err != nil {
				return nil, nil, err
			}
			if !n.Parent.IsNil() {
				return nil, nil, fmt.Errorf("scene: scene root %v: %w", r, ErrNotRoot)
			}
			if inScene[r] {
				return nil, nil, fmt.Errorf("scene: scene root %v: %w", r, ErrSharedNode)
			}
			inScene[r] = true
			i, ok := e.nodes[r]
			if !ok || !roots[r] {
				if i, err = e.addNode(r); err != nil {
					return nil, nil, err
				}
				roots[r] = true
			}
			gs.Nodes = append(gs.Nodes, int64(i))
		}
		e.doc.Scenes = append(e.doc.Scenes, gs)
	}
	if len(e.doc.Scenes) > 0 {
		e.doc.Scene = gltf.Index(0)
	}
	e.align()
	if len(e.bin) > 0 {
		e.doc.Buffers = []gltf.Buffer{{ByteLength: int64(len(e.bin))}}
	}
	if err := e.doc.Check(); err != nil {
		return nil, nil, fmt.Errorf("scene: generated document: %w", err)
	}
	return &e.doc, e.bin, nil
}

// Serialize writes every scene of g into w as binary glTF.
func (g *Graph) Serialize(w io.Writer) error {
	doc, bin, err := g.Document()
	if err != nil {
		return err
	}
	return gltf.EncodeGLB(w, doc, bin)
}

// SerializeJSON writes every scene of g into w as glTF
// JSON, with the binary buffer embedded as a data URI.
func (g *Graph) SerializeJSON(w io.Writer, pretty bool) error {
	doc, bin, err := g.Document()
	if err != nil {
		return err
	}
	if len(doc.Buffers) > 0 {
		doc.Buffers[0].URI = "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(bin)
	}
	if pretty {
		return gltf.EncodeIndent(w, doc, "  ")
	}
	return gltf.Encode(w, doc)
}

// DefaultScene returns the first scene, creating it if g
// has none.
func (g *Graph) DefaultScene() arena.Handle {
	for h := range g.scenes.All() {
		return h
	}
	h, _ := g.NewScene("")
	return h
}
