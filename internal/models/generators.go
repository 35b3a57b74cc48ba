// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package models

import (
	"fmt"
	"math"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
	"github.com/gviegas/paraforge/scene"
)

func firstModel(g *scene.Graph, _ []float64) (arena.Handle, error) {
	b := &builder{g: g}
	red := b.material("Red", "#f00", 0, 0.5)
	black := b.handle(g.NewMaterial("Black", scene.Color{0.1, 0.1, 0.1, 1}, 0, 0.5))

	redBlock := geometry.NewCube()
	blackBlock := geometry.NewCube()
	err := run(
		func() error { return redBlock.Scale(1, 0.25, 0.3) },
		func() error { return redBlock.Translate(0, 0.25, 0.3) },
		func() error { return blackBlock.Scale(0.5, 0.25, 0.3) },
		func() error { return blackBlock.Translate(0, 0.25, 0.9) },
	)
	if err != nil {
		return arena.Nil, err
	}
	blackBlock.SelectTriangles(-10, -10, 0.5, 10, 10, 0.7)
	blackBlock.DeleteTriangles()

	const name = "Fortress Wall Battlement"
	mesh := b.mesh(name, prim{redBlock, red}, prim{blackBlock, black})
	return b.done(b.node(name, mesh))
}

var gearParams = []Param{
	{Name: "tooth_count", Default: 16, Int: true},
	{Name: "pitch_radius", Default: 1},
	{Name: "pressure_angle", Default: 0.349066},
	{Name: "backlash", Default: 0.01},
	{Name: "curve_segments", Default: 5, Int: true},
}

func gear(g *scene.Graph, params []float64) (arena.Handle, error) {
	return newGear(g, int(params[0]), params[1], params[2], params[3], int(params[4]))
}

// newGear builds an involute spur gear of unit thickness.
// Each tooth is a separate node sharing a single mesh.
func newGear(g *scene.Graph, teeth int, pitchRadius, pressureAngle, backlash float64, segments int) (arena.Handle, error) {
	var (
		z  = float64(teeth)
		rp = pitchRadius
		ψ  = pressureAngle
	)
	switch {
	case teeth <= 0:
		return arena.Nil, fmt.Errorf("%w: tooth_count %d", geometry.ErrParameterOutOfRange, teeth)
	case !(rp > 0):
		return arena.Nil, fmt.Errorf("%w: pitch_radius %g", geometry.ErrParameterOutOfRange, rp)
	case !(ψ >= 0 && ψ <= math.Pi/2):
		return arena.Nil, fmt.Errorf("%w: pressure_angle %g", geometry.ErrParameterOutOfRange, ψ)
	case !(backlash >= 0 && backlash <= math.Pi*rp/z):
		return arena.Nil, fmt.Errorf("%w: backlash %g", geometry.ErrParameterOutOfRange, backlash)
	case segments <= 0:
		return arena.Nil, fmt.Errorf("%w: curve_segments %d", geometry.ErrParameterOutOfRange, segments)
	}

	m := 2 * rp / z        // module
	rb := rp * math.Cos(ψ) // base radius
	ra := rp + m           // addendum radius
	hd := max(m, rp-rb)    // dedendum
	θr := math.Pi/z - backlash/(z*m) + 2*(math.Tan(ψ)-ψ)
	imax := math.Sqrt((ra/rb)*(ra/rb) - 1)
	θi := imax - math.Atan(imax)
	ns := float64(segments)

	geo := geometry.New()
	var err error
	polar := func(r, θ float64) {
		if err == nil {
			_, err = geo.CreateVertex(r*math.Cos(θ), r*math.Sin(θ), 0)
		}
	}
	involute := func(i int) (r, θ float64) {
		t := imax * float64(i) / ns
		return rb * math.Sqrt(1+t*t), t - math.Atan(t)
	}
	polar(0, 0)
	for i := 0; i <= segments; i++ {
		polar(involute(i))
	}
	for i := 0; i <= segments; i++ {
		polar(ra, θi+(θr-2*θi)*float64(i)/ns)
	}
	for i := segments; i >= 0; i-- {
		r, θ := involute(i)
		polar(r, θr-θ)
	}
	for i := 0; i <= segments; i++ {
		polar(rp-hd, θr+(2*math.Pi/z-θr)*float64(i)/ns)
	}
	polar(rb, 2*math.Pi/z)
	if err != nil {
		return arena.Nil, err
	}
	for i := 1; i < geo.VertexCount()-1; i++ {
		if _, err := geo.CreateTriangle(0, uint32(i), uint32(i+1)); err != nil {
			return arena.Nil, err
		}
	}
	geo.SelectAll()
	if err := geo.Extrude(0, 0, 1); err != nil {
		return arena.Nil, err
	}

	b := &builder{g: g}
	bronze := b.material("Bronze", "#984", 1, 0.5)
	tooth := b.mesh("Gear Tooth", prim{geo, bronze})
	root := b.node("Gear", arena.Nil)
	for i := range teeth {
		b.add(root, b.rotateZ(b.node("", tooth), float32(2*math.Pi/z*float64(i))))
	}
	return b.done(root)
}

// quad returns two triangles spanning [-1, 1] on x and y
// at z = -1, wound as given by tris.
func quad(tris [2][3]uint32) (*geometry.Geometry, error) {
	geo := geometry.New()
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			if _, err := geo.CreateVertex(x, y, -1); err != nil {
				return nil, err
			}
		}
	}
	for _, t := range tris {
		if _, err := geo.CreateTriangle(t[0], t[1], t[2]); err != nil {
			return nil, err
		}
	}
	geo.SelectAll()
	if err := geo.Extrude(0, 0, 2); err != nil {
		return nil, err
	}
	return geo, nil
}

func extrusion(g *scene.Graph, _ []float64) (arena.Handle, error) {
	geo, err := quad([2][3]uint32{{0, 2, 1}, {1, 2, 3}})
	if err != nil {
		return arena.Nil, err
	}
	b := &builder{g: g}
	mesh := b.mesh("", prim{geo, b.material("Green", "#0f0", 0, 1)})
	return b.done(b.node("Extrusion Test Block", mesh))
}

func extrusionInsideOut(g *scene.Graph, _ []float64) (arena.Handle, error) {
	geo, err := quad([2][3]uint32{{0, 1, 2}, {1, 3, 2}})
	if err != nil {
		return arena.Nil, err
	}
	b := &builder{g: g}
	mesh := b.mesh("", prim{geo, b.material("Blue", "#00f", 0, 1)})
	return b.done(b.node("Extrusion Test Block", mesh))
}

// single builds a node holding one primitive of geo.
func single(g *scene.Graph, name, matName, hex string, geo *geometry.Geometry) (arena.Handle, error) {
	b := &builder{g: g}
	mesh := b.mesh("", prim{geo, b.material(matName, hex, 0, 1)})
	return b.done(b.node(name, mesh))
}

// Transforms apply to the whole Geometry, so earlier
// cubes are scaled again by each later one.
func cubes(g *scene.Graph, _ []float64) (arena.Handle, error) {
	geo := geometry.New()
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				geo.AddCube(false)
				err := run(
					func() error { return geo.Scale(0.4, 0.4, 0.4) },
					func() error { return geo.Translate(0.6*x, 0.6*y, 0.6*z) },
				)
				if err != nil {
					return arena.Nil, err
				}
			}
		}
	}
	return single(g, "Cube Test", "Yellow", "#ff0", geo)
}

func squares(g *scene.Graph, _ []float64) (arena.Handle, error) {
	geo := geometry.New()
	geo.AddSquare(true)
	geo.AddSquare(true)
	err := run(
		func() error { return geo.Translate(-1, -1, 0) },
		func() error { geo.AddSquare(false); return geo.RotateEuler(math.Pi/2, 0, 0) },
		func() error { return geo.Scale(1, 1, 0.25) },
		func() error { geo.AddSquare(false); return geo.RotateAxis(0, 1, 0, math.Pi/2) },
		func() error { return geo.Scale(1, 1, 0.25) },
	)
	if err != nil {
		return arena.Nil, err
	}
	geo.SelectAll()
	geo.DoubleSide()
	return single(g, "Square Test", "Cyan", "#0ff", geo)
}

func extrudeyTower(g *scene.Graph, _ []float64) (arena.Handle, error) {
	geo := geometry.New()
	geo.AddSquare(false)
	for range 3 {
		err := run(
			func() error { return geo.Extrude(0, 0, 1) },
			func() error { return geo.Scale(0.5, 0.5, 1) },
		)
		if err != nil {
			return arena.Nil, err
		}
	}
	return single(g, "Extrudey Tower", "Cyan", "#0ff", geo)
}

func circleAndCylinder(g *scene.Graph, _ []float64) (arena.Handle, error) {
	geo := geometry.New()
	err := run(
		func() error { return geo.AddCircle(8, false) },
		func() error { return geo.Scale(0.5, 0.5, 1) },
		func() error { return geo.Translate(-0.5, -0.5, 0) },
		func() error { return geo.AddCylinder(8, false) },
		func() error { return geo.Scale(0.5, 0.5, 0.5) },
		func() error { return geo.Translate(-0.5, 0.5, 0.5) },
		func() error { return geo.AddCircle(8, false) },
		func() error { return geo.Scale(0.5, 0.5, 1) },
		func() error { return geo.Translate(0.5, -0.5, 0) },
		func() error { return geo.Extrude(0, 0, -1) },
		func() error { return geo.AddCircle(8, false) },
		func() error { return geo.Scale(0.5, 0.5, 1) },
		func() error { return geo.Translate(0.5, -0.5, 0) },
		func() error { geo.FlipNormals(); return geo.Extrude(0, 0, -1) },
		func() error { return geo.AddCylinder(32, false) },
		func() error { return geo.Scale(0.5, 0.5, 1) },
		func() error { return geo.Translate(0.5, 0.5, 1) },
	)
	if err != nil {
		return arena.Nil, err
	}
	return single(g, "Circles and cylinders", "Magenta", "#f0f", geo)
}

func mergedPillar(g *scene.Graph, _ []float64) (arena.Handle, error) {
	geo := geometry.New()
	geo.AddSquare(false)
	for range 4 {
		if err := geo.Extrude(0, 0, 1); err != nil {
			return arena.Nil, err
		}
	}
	err := run(
		func() error { geo.Select(-10, -10, 1, 10, 10, 1); return geo.Merge(0, 0, 1) },
		func() error { geo.Select(-10, -10, 3, 10, 10, 3); return geo.Merge(0, 0, 3) },
	)
	if err != nil {
		return arena.Nil, err
	}
	return single(g, "Made with merges", "Cyan", "#0ff", geo)
}

func composite(g *scene.Graph, _ []float64) (arena.Handle, error) {
	b := &builder{g: g}
	sub := func(f func(*scene.Graph, []float64) (arena.Handle, error)) arena.Handle {
		if b.err != nil {
			return arena.Nil
		}
		return b.handle(f(g, nil))
	}
	result := b.node("Composite model test", arena.Nil)

	defaultGear := b.handle(gear(g, defaults(gearParams)))
	b.add(result, defaultGear)
	for i := range 4 {
		if b.err != nil {
			break
		}
		gr := b.handle(newGear(g, 4+4*i, 1, 0.349066, 0.01, 5))
		b.translate(gr, float32(-6+4*i), 4, 0)
		b.add(result, b.scale(gr, 1, 1, 0.25))
	}

	extrusions := b.node("", arena.Nil,
		b.translate(sub(extrusion), 4, 0, 0),
		b.translate(sub(extrusionInsideOut), 8, 0, 0))
	b.add(result, extrusions)

	b.add(result, b.translate(b.clone(defaultGear), 0, -4, 0))
	b.add(result, b.translate(b.clone(extrusions), 0, -4, 0))

	b.add(result, b.translate(sub(cubes), -4, 0, 0))
	b.add(result, b.translate(sub(squares), -4, -4, 0))
	b.add(result, b.translate(sub(extrudeyTower), -4, -8, 0))
	b.add(result, b.translate(sub(circleAndCylinder), 0, -8, 0))
	b.add(result, b.translate(sub(mergedPillar), 8, -8, 0))
	return b.done(result)
}

// run calls each step in order, stopping at the first
// error.
func run(steps ...func() error) error {
	for _, f := range steps {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

func defaults(params []Param) []float64 {
	vals := make([]float64, len(params))
	for i, p := range params {
		vals[i] = p.Default
	}
	return vals
}
