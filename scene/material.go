// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
)

// Color is a linear RGBA color.
type Color [4]float32

// White is the default base color.
var White = Color{1, 1, 1, 1}

// ParseColor parses a hexadecimal color in one of the forms
// "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa".
// Alpha defaults to 1.
func ParseColor(s string) (Color, error) {
	var step int
	switch len(s) {
	case 4, 5:
		step = 1
	case 7, 9:
		step = 2
	}
	if step == 0 || s[0] != '#' {
		return Color{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	div := float32(0xf)
	if step == 2 {
		div = 0xff
	}
	c := White
	for i, j := 0, 1; j < len(s); i, j = i+1, j+step {
		x, err := strconv.ParseUint(s[j:j+step], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrColor, s)
		}
		c[i] = float32(x) / div
	}
	return c, nil
}

// Material describes the surface of mesh primitives
// using the metallic-roughness model.
type Material struct {
	Name      string
	Color     Color
	Metallic  float32
	Roughness float32
}

func clamp01(x float32) float32 { return min(max(x, 0), 1) }

func isNaN(x float32) bool { return math.IsNaN(float64(x)) }

// NewMaterial creates a new material.
// Color components, metallic and roughness are clamped to
// [0, 1]; NaN values are rejected.
func (g *Graph) NewMaterial(name string, color Color, metallic, roughness float32) (arena.Handle, error) {
	if err := checkName(name); err != nil {
		return arena.Nil, err
	}
	for i := range color {
		if isNaN(color[i]) {
			return arena.Nil, fmt.Errorf("%w: NaN component", ErrColor)
		}
		color[i] = clamp01(color[i])
	}
	if isNaN(metallic) || isNaN(roughness) {
		return arena.Nil, fmt.Errorf("%w: metallic/roughness is NaN", geometry.ErrParameterOutOfRange)
	}
	return g.materials.Allocate(Material{
		Name:      name,
		Color:     color,
		Metallic:  clamp01(metallic),
		Roughness: clamp01(roughness),
	}), nil
}

// Material returns the material identified by h.
func (g *Graph) Material(h arena.Handle) (Material, error) {
	m, err := get(g.materials, "material", h)
	if err != nil {
		return Material{}, err
	}
	return *m, nil
}
