// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// apply replaces every vertex v with f(v).
// It fails with ErrParameterOutOfRange, leaving the
// geometry unchanged, if any result is not Finite.
func (g *Geometry) apply(f func(mgl64.Vec3) mgl64.Vec3) error {
	vtcs := make([]mgl64.Vec3, len(g.vtcs))
	for i, v := range g.vtcs {
		if vtcs[i] = f(v); !finiteVec(vtcs[i]) {
			return ErrParameterOutOfRange
		}
	}
	copy(g.vtcs, vtcs)
	return nil
}

// Translate moves every vertex by (x, y, z).
func (g *Geometry) Translate(x, y, z float64) error {
	if !Finite(x, y, z) {
		return ErrParameterOutOfRange
	}
	t := mgl64.Vec3{x, y, z}
	return g.apply(func(v mgl64.Vec3) mgl64.Vec3 { return v.Add(t) })
}

// Scale multiplies every vertex by (x, y, z) component-wise.
func (g *Geometry) Scale(x, y, z float64) error {
	if !Finite(x, y, z) {
		return ErrParameterOutOfRange
	}
	return g.apply(func(v mgl64.Vec3) mgl64.Vec3 {
		return mgl64.Vec3{v[0] * x, v[1] * y, v[2] * z}
	})
}

// EulerQuat returns the rotation given by roll (x), pitch (y)
// and yaw (z) angles, in radians.
// It is equivalent to yaw ⋅ pitch ⋅ roll.
func EulerQuat(roll, pitch, yaw float64) mgl64.Quat {
	sr, cr := math.Sincos(roll / 2)
	sp, cp := math.Sincos(pitch / 2)
	sy, cy := math.Sincos(yaw / 2)
	return mgl64.Quat{
		W: cr*cp*cy + sr*sp*sy,
		V: mgl64.Vec3{
			sr*cp*cy - cr*sp*sy,
			cr*sp*cy + sr*cp*sy,
			cr*cp*sy - sr*sp*cy,
		},
	}
}

// AxisQuat returns the rotation of angle radians about the
// axis (x, y, z), which need not be normalized.
// It fails with ErrParameterOutOfRange if the axis has
// zero length or any argument is not Finite.
func AxisQuat(x, y, z, angle float64) (mgl64.Quat, error) {
	if !Finite(x, y, z, angle) {
		return mgl64.Quat{}, ErrParameterOutOfRange
	}
	axis := mgl64.Vec3{x, y, z}
	l := axis.Len()
	if l == 0 || math.IsInf(l, 0) {
		return mgl64.Quat{}, ErrParameterOutOfRange
	}
	return mgl64.QuatRotate(angle, axis.Mul(1/l)), nil
}

// RotateEuler rotates every vertex about the origin by
// roll (x), then pitch (y), then yaw (z).
func (g *Geometry) RotateEuler(roll, pitch, yaw float64) error {
	if !Finite(roll, pitch, yaw) {
		return ErrParameterOutOfRange
	}
	return g.rotate(EulerQuat(roll, pitch, yaw))
}

// RotateAxis rotates every vertex about the origin by angle
// radians around the axis (x, y, z).
func (g *Geometry) RotateAxis(x, y, z, angle float64) error {
	q, err := AxisQuat(x, y, z, angle)
	if err != nil {
		return err
	}
	return g.rotate(q)
}

func (g *Geometry) rotate(q mgl64.Quat) error { return g.apply(q.Rotate) }
