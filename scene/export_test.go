// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
	"github.com/gviegas/paraforge/gltf"
)

// battlement builds a node with two cube primitives: a red
// block and a black block missing a band of triangles.
func battlement(t *testing.T, g *Graph) arena.Handle {
	red, err := ParseColor("#f00")
	require.NoError(t, err)
	redMat, err := g.NewMaterial("Red", red, 0, 0.5)
	require.NoError(t, err)
	blackMat, err := g.NewMaterial("Black", Color{0.1, 0.1, 0.1, 1}, 0, 0.5)
	require.NoError(t, err)

	redBlock := geometry.NewCube()
	require.NoError(t, redBlock.Scale(1, 0.25, 0.3))
	require.NoError(t, redBlock.Translate(0, -0.75, 4.1))
	blackBlock := geometry.NewCube()
	require.NoError(t, blackBlock.Scale(0.5, 0.25, 0.3))
	require.NoError(t, blackBlock.Translate(0, -0.75, 4.7))
	blackBlock.SelectTriangles(-10, -10, 4.3, 10, 10, 4.5)
	blackBlock.DeleteTriangles()

	node, err := g.NewNode("Fortress Wall Battlement")
	require.NoError(t, err)
	mesh, err := g.NewMesh("Fortress Wall Battlement")
	require.NoError(t, err)
	require.NoError(t, g.SetMesh(node, mesh))
	_, err = g.AddPrimitive(mesh, g.AddPacked(redBlock.Pack()), redMat)
	require.NoError(t, err)
	_, err = g.AddPrimitive(mesh, g.AddPacked(blackBlock.Pack()), blackMat)
	require.NoError(t, err)
	return node
}

func serialize(t *testing.T, g *Graph) []byte {
	var buf bytes.Buffer
	require.NoError(t, g.Serialize(&buf))
	return buf.Bytes()
}

func TestBattlement(t *testing.T) {
	g := New()
	require.NoError(t, g.AddRoot(g.DefaultScene(), battlement(t, g)))
	b := serialize(t, g)

	doc, bin, err := gltf.DecodeGLB(bytes.NewReader(b))
	require.NoError(t, err)
	require.NoError(t, doc.Check())
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Meshes[0].Primitives, 2)
	require.Len(t, doc.Materials, 2)
	assert.Equal(t, "Red", doc.Materials[0].Name)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, *doc.Materials[0].PBRMetallicRoughness.BaseColorFactor)
	assert.Equal(t, float32(0.5), *doc.Materials[1].PBRMetallicRoughness.RoughnessFactor)

	for _, p := range doc.Meshes[0].Primitives {
		a := doc.Accessors[p.Attributes[gltf.POSITION]]
		v := doc.BufferViews[*a.BufferView]
		assert.Zero(t, v.ByteLength%12)
		assert.Zero(t, v.ByteOffset%4)
		assert.Equal(t, int64(gltf.ARRAY_BUFFER), v.Target)
		assert.Equal(t, int64(8), a.Count)
		ia := doc.Accessors[*p.Indices]
		assert.Equal(t, int64(gltf.UNSIGNED_SHORT), ia.ComponentType)
		assert.Equal(t, int64(gltf.ELEMENT_ARRAY_BUFFER), doc.BufferViews[*ia.BufferView].Target)
	}
	// The black block lost its bottom face (z = 4.4).
	assert.Equal(t, int64(36), doc.Accessors[1].Count)
	assert.Equal(t, int64(30), doc.Accessors[3].Count)

	// Positions are bit-exact float32.
	a := doc.Accessors[0]
	v := doc.BufferViews[*a.BufferView]
	x := binary.LittleEndian.Uint32(bin[v.ByteOffset:])
	assert.NotZero(t, x)
	assert.Equal(t, []float32{1, -0.5, 4.4}, a.Max)
}

func TestSerializeDeterministic(t *testing.T) {
	build := func() []byte {
		g := New()
		s := g.DefaultScene()
		require.NoError(t, g.AddRoot(s, battlement(t, g)))
		clone, err := g.CloneSubtree(battlement(t, g))
		require.NoError(t, err)
		require.NoError(t, g.Translate(clone, 1, 0, 0))
		require.NoError(t, g.AddRoot(s, clone))
		return serialize(t, g)
	}
	a, b := build(), build()
	assert.Equal(t, a, b)
	assert.Equal(t, a[:4], []byte("glTF"))
}

func TestRoundTrip(t *testing.T) {
	const nnode, nmesh, nmat = 6, 3, 2
	g := New()
	g.SetAsset("test", "(c) nobody")
	s := g.DefaultScene()

	var mats []arena.Handle
	for i := range nmat {
		c, err := ParseColor(fmt.Sprintf("#%02x%02x%02x", i*100, 50, 255-i*100))
		require.NoError(t, err)
		h, err := g.NewMaterial(fmt.Sprintf("mat%d", i), c, 0.25, 0.75)
		require.NoError(t, err)
		mats = append(mats, h)
	}
	var meshes []arena.Handle
	packed := g.AddPacked(geometry.NewCube().Pack())
	for i := range nmesh {
		h, err := g.NewMesh(fmt.Sprintf("mesh%d", i))
		require.NoError(t, err)
		_, err = g.AddPrimitive(h, packed, mats[i%nmat])
		require.NoError(t, err)
		meshes = append(meshes, h)
	}
	root := newNode(t, g, "node0")
	require.NoError(t, g.AddRoot(s, root))
	prev := root
	for i := 1; i < nnode; i++ {
		h := newNode(t, g, fmt.Sprintf("node%d", i))
		require.NoError(t, g.SetMesh(h, meshes[i%nmesh]))
		require.NoError(t, g.Translate(h, float32(i), 0, 0))
		require.NoError(t, g.RotateEuler(h, 0, 0, 0.5))
		require.NoError(t, g.Add(prev, h))
		prev = h
	}

	doc, _, err := gltf.DecodeGLB(bytes.NewReader(serialize(t, g)))
	require.NoError(t, err)
	assert.Equal(t, "test", doc.Asset.Generator)
	assert.Equal(t, "(c) nobody", doc.Asset.Copyright)
	require.Len(t, doc.Nodes, nnode)
	require.Len(t, doc.Meshes, nmesh)
	require.Len(t, doc.Materials, nmat)
	assert.Len(t, doc.Accessors, 2)
	require.Len(t, doc.Scenes, 1)
	assert.Equal(t, []int64{0}, doc.Scenes[0].Nodes)

	for i, n := range doc.Nodes {
		assert.Equal(t, fmt.Sprintf("node%d", i), n.Name)
		if i == 0 {
			assert.Nil(t, n.Mesh)
			assert.Nil(t, n.Translation)
			continue
		}
		assert.Equal(t, [3]float32{float32(i), 0, 0}, *n.Translation)
		assert.InDelta(t, 0.247404, n.Rotation[2], 1e-5)
		// Meshes are numbered by first encounter.
		assert.Equal(t, int64((i-1)%nmesh), *n.Mesh)
		assert.Equal(t, fmt.Sprintf("mesh%d", i%nmesh), doc.Meshes[*n.Mesh].Name)
		if i < nnode-1 {
			assert.Equal(t, []int64{int64(i + 1)}, n.Children)
		}
	}
	// mat1 is encountered first (through mesh1).
	assert.Equal(t, "mat1", doc.Materials[0].Name)
	c := *doc.Materials[0].PBRMetallicRoughness.BaseColorFactor
	assert.InDelta(t, 100.0/255, c[0], 1e-6)
	assert.InDelta(t, 155.0/255, c[2], 1e-6)
}

func TestSharedNode(t *testing.T) {
	g := New()
	a := newNode(t, g, "a")
	s1 := g.DefaultScene()
	s2, err := g.NewScene("second")
	require.NoError(t, err)
	require.NoError(t, g.AddRoot(s1, a))
	assert.ErrorIs(t, g.AddRoot(s1, a), ErrSharedNode)
	sc, _ := g.Scene(s1)
	assert.Equal(t, []arena.Handle{a}, sc.Roots)

	// Roots may be shared across scenes.
	b := newNode(t, g, "b")
	c := newNode(t, g, "c")
	require.NoError(t, g.Add(a, c))
	require.NoError(t, g.AddRoot(s2, b))
	require.NoError(t, g.AddRoot(s2, a))
	doc, _, err := g.Document()
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, []int64{0}, doc.Scenes[0].Nodes)
	assert.Equal(t, []int64{2, 0}, doc.Scenes[1].Nodes)
	assert.Equal(t, "a", doc.Nodes[0].Name)
	assert.Equal(t, []int64{1}, doc.Nodes[0].Children)
	assert.Equal(t, "b", doc.Nodes[2].Name)

	g = New()
	a = newNode(t, g, "a")
	b = newNode(t, g, "b")
	require.NoError(t, g.AddRoot(g.DefaultScene(), a))
	require.NoError(t, g.Add(b, a))
	_, _, err = g.Document()
	assert.ErrorIs(t, err, ErrNotRoot)
	assert.ErrorIs(t, g.AddRoot(g.DefaultScene(), a), ErrNotRoot)
}

func TestEmptyDocument(t *testing.T) {
	g := New()
	doc, bin, err := g.Document()
	require.NoError(t, err)
	assert.Empty(t, bin)
	assert.Nil(t, doc.Scene)

	// A mesh without primitives is left out.
	mesh, err := g.NewMesh("")
	require.NoError(t, err)
	n := newNode(t, g, "")
	require.NoError(t, g.SetMesh(n, mesh))
	require.NoError(t, g.AddRoot(g.DefaultScene(), n))
	doc, bin, err = g.Document()
	require.NoError(t, err)
	assert.Empty(t, bin)
	assert.Empty(t, doc.Meshes)
	assert.Nil(t, doc.Nodes[0].Mesh)
	assert.Equal(t, int64(0), *doc.Scene)
}

func TestSerializeJSON(t *testing.T) {
	g := New()
	require.NoError(t, g.AddRoot(g.DefaultScene(), battlement(t, g)))
	var buf bytes.Buffer
	require.NoError(t, g.SerializeJSON(&buf, true))
	s := buf.String()
	assert.True(t, strings.Contains(s, "data:application/octet-stream;base64,"))
	assert.True(t, strings.Contains(s, "\n  "))

	doc, err := gltf.Decode(&buf)
	require.NoError(t, err)
	assert.NoError(t, doc.Check())
	assert.Len(t, doc.Meshes[0].Primitives, 2)
}
