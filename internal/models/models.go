// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package models provides a registry of procedural model
// generators.
package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/scene"
)

var (
	ErrNotFound       = errors.New("models: generator not found")
	ErrParameterCount = errors.New("models: too many parameters")
	ErrParameterType  = errors.New("models: malformed parameter")
)

// Param describes a numeric generator parameter.
type Param struct {
	Name    string
	Default float64
	Int     bool
}

// Generator is a named procedure that builds a node tree
// into a scene.Graph.
// Build receives one value per Param, in order, and returns
// the root of the new tree.
type Generator struct {
	Name   string
	Doc    string
	Params []Param
	Build  func(g *scene.Graph, params []float64) (arena.Handle, error)
}

// Usage returns a short description of gen's parameters.
func (gen *Generator) Usage() string {
	s := gen.Name
	for _, p := range gen.Params {
		s += " [" + p.Name + "=" + strconv.FormatFloat(p.Default, 'g', -1, 64) + "]"
	}
	return s
}

// Parse converts positional arguments into parameter values.
// Missing arguments take their defaults.
func (gen *Generator) Parse(args []string) ([]float64, error) {
	if len(args) > len(gen.Params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrParameterCount, gen.Name, len(gen.Params), len(args))
	}
	vals := make([]float64, len(gen.Params))
	for i, p := range gen.Params {
		if i >= len(args) {
			vals[i] = p.Default
			continue
		}
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) || (p.Int && x != math.Trunc(x)) {
			return nil, fmt.Errorf("%w: %s: %q", ErrParameterType, p.Name, args[i])
		}
		vals[i] = x
	}
	return vals, nil
}

// Register registers a Generator.
// If a generator with the same name has already been
// registered, it will be replaced by gen.
func Register(gen Generator) {
	mu.Lock()
	defer mu.Unlock()
	for i := range generators {
		if generators[i].Name == gen.Name {
			generators[i] = gen
			return
		}
	}
	generators = append(generators, gen)
}

// Generators returns the registered Generators in
// registration order.
func Generators() []Generator {
	mu.Lock()
	defer mu.Unlock()
	return append([]Generator(nil), generators...)
}

// Lookup returns the Generator named name.
func Lookup(name string) (Generator, error) {
	mu.Lock()
	defer mu.Unlock()
	for _, gen := range generators {
		if gen.Name == name {
			return gen, nil
		}
	}
	return Generator{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Build runs the generator named name with args and adds
// the resulting tree to the default scene of g.
func Build(g *scene.Graph, name string, args []string) (arena.Handle, error) {
	gen, err := Lookup(name)
	if err != nil {
		return arena.Nil, err
	}
	params, err := gen.Parse(args)
	if err != nil {
		return arena.Nil, err
	}
	root, err := gen.Build(g, params)
	if err != nil {
		return arena.Nil, fmt.Errorf("models: %s: %w", name, err)
	}
	if err := g.AddRoot(g.DefaultScene(), root); err != nil {
		return arena.Nil, err
	}
	return root, nil
}

var (
	mu         sync.Mutex
	generators []Generator
)

func init() {
	for _, gen := range []Generator{
		{Name: "first_model", Doc: "fortress wall battlement", Build: firstModel},
		{Name: "gear", Doc: "involute spur gear", Params: gearParams, Build: gear},
		{Name: "extrusion", Doc: "extruded quad", Build: extrusion},
		{Name: "extrusion_inside_out", Doc: "extruded quad with reversed winding", Build: extrusionInsideOut},
		{Name: "cubes", Doc: "eight cubes", Build: cubes},
		{Name: "squares", Doc: "double-sided squares", Build: squares},
		{Name: "extrudey_tower", Doc: "stacked extrusions", Build: extrudeyTower},
		{Name: "circle_and_cylinder", Doc: "circles and cylinders", Build: circleAndCylinder},
		{Name: "merged_pillar", Doc: "pillar pinched with merges", Build: mergedPillar},
		{Name: "composite", Doc: "every other model, arranged", Build: composite},
	} {
		Register(gen)
	}
}
