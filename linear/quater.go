// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// Q is a quaternion of float32.
type Q struct {
	V V3
	R float32
}

// I makes q an identity quaternion.
func (q *Q) I() { *q = Q{R: 1} }

// Mul sets q to contain l ⋅ r.
func (q *Q) Mul(l, r *Q) {
	var v, w V3
	v.Scale(r.R, &l.V)
	w.Scale(l.R, &r.V)
	v.Add(&v, &w)
	w.Cross(&l.V, &r.V)
	d := l.V.Dot(&r.V)
	q.V.Add(&v, &w)
	q.R = l.R*r.R - d
}

// Rotate sets q to contain a rotation of angle radians
// about axis.
// axis must be a unit vector.
func (q *Q) Rotate(angle float32, axis *V3) {
	s, c := math32.Sincos(angle * 0.5)
	q.V.Scale(s, axis)
	q.R = c
}

// Euler sets q to contain the rotation given by roll (x),
// pitch (y) and yaw (z) angles, in radians.
// The rotations are applied in roll, pitch, yaw order.
func (q *Q) Euler(roll, pitch, yaw float32) {
	sr, cr := math32.Sincos(roll * 0.5)
	sp, cp := math32.Sincos(pitch * 0.5)
	sy, cy := math32.Sincos(yaw * 0.5)
	q.V = V3{
		sr*cp*cy - cr*sp*sy,
		cr*sp*cy + sr*cp*sy,
		cr*cp*sy - sr*sp*cy,
	}
	q.R = cr*cp*cy + sr*sp*sy
}

// Len returns the norm of q.
func (q *Q) Len() float32 { return math32.Sqrt(q.V.Dot(&q.V) + q.R*q.R) }

// Norm sets q to contain p normalized.
func (q *Q) Norm(p *Q) {
	s := 1 / p.Len()
	q.V.Scale(s, &p.V)
	q.R = s * p.R
}

// Array returns q in x, y, z, w order.
func (q *Q) Array() [4]float32 { return [4]float32{q.V[0], q.V[1], q.V[2], q.R} }
