// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package paraforge builds 3-D models out of editable
// geometry and serializes them as binary glTF.
//
// A Context is the entry point. Every operation takes
// handles and scalar arguments and returns a value or an
// error whose kind can be obtained with Code. Strings, such
// as names and colors, are passed through a small set of
// string slots filled before the call.
package paraforge

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
	"github.com/gviegas/paraforge/internal/models"
	"github.com/gviegas/paraforge/scene"
)

// Handle identifies a resource owned by a Context.
type Handle = arena.Handle

// Context owns a scene graph and a set of geometries.
// Its methods may be called concurrently; each resource
// set is guarded by its own mutex. The buffer returned by
// StringTransport is the exception: it must only be used
// while no other call on the Context is running.
type Context struct {
	log       *zap.Logger
	generator string
	copyright string

	strs  *arena.Guard[*[NumSlots][]byte]
	graph *arena.Guard[*scene.Graph]
	geoms *arena.Guard[*arena.Arena[*geometry.Geometry]]
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used by the Context.
// The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// WithAsset sets the generator and copyright strings
// written to serialized assets.
func WithAsset(generator, copyright string) Option {
	return func(c *Context) {
		c.generator = generator
		c.copyright = copyright
	}
}

// New creates a Context.
// Init must be called before any scene operation.
func New(opts ...Option) *Context {
	c := &Context{
		log:       zap.NewNop(),
		generator: "paraforge",
		strs:      arena.NewGuard(new([NumSlots][]byte)),
		graph:     arena.NewGuard[*scene.Graph](nil),
		geoms:     arena.NewGuard(arena.New[*geometry.Geometry]()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init creates a new scene graph containing one empty
// scene, discarding the previous one (if any).
// Geometries are not affected.
func (c *Context) Init() error {
	g := scene.New()
	g.SetAsset(c.generator, c.copyright)
	g.DefaultScene()
	prev, err := c.graph.Swap(g)
	if err != nil {
		return err
	}
	c.log.Debug("context initialized", zap.Bool("reset", prev != nil), zap.String("generator", c.generator))
	return nil
}

// withGraph calls f with the scene graph, failing with
// ErrNotInitialized if Init was not called.
func (c *Context) withGraph(f func(g *scene.Graph) error) error {
	return c.graph.Do(func(g *scene.Graph) error {
		if g == nil {
			return ErrNotInitialized
		}
		return f(g)
	})
}

// Update calls f with the scene graph.
// It allows building the scene with the scene package
// directly, while holding the graph's lock.
func (c *Context) Update(f func(g *scene.Graph) error) error { return c.withGraph(f) }

// Build runs the model generator named name, adding its
// tree to the default scene.
func (c *Context) Build(name string, args []string) (root Handle, err error) {
	err = c.withGraph(func(g *scene.Graph) error {
		root, err = models.Build(g, name, args)
		return err
	})
	if err != nil {
		return arena.Nil, err
	}
	c.log.Debug("model built", zap.String("generator", name), zap.Strings("params", args), zap.Stringer("root", root))
	return root, nil
}

// Serialize encodes every scene as binary glTF.
func (c *Context) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.withGraph(func(g *scene.Graph) error { return g.Serialize(&buf) }); err != nil {
		return nil, err
	}
	c.log.Debug("serialized", zap.String("format", "glb"), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// SerializeJSON encodes every scene as glTF JSON with an
// embedded buffer.
func (c *Context) SerializeJSON(pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.withGraph(func(g *scene.Graph) error { return g.SerializeJSON(&buf, pretty) }); err != nil {
		return nil, err
	}
	c.log.Debug("serialized", zap.String("format", "json"), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func wrap(kind string, h Handle, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("paraforge: %s %v: %w", kind, h, err)
}
