// Package geom provides the small set of 3D primitives shared by the
// kernel, the ray caster and the placement driver: vectors, rays and
// axis-aligned boxes.
package geom

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the tolerance used for unit-length and degeneracy checks.
const Epsilon = 1e-9

// ErrZeroVector is returned when normalizing a vector of (near) zero length.
var ErrZeroVector = errors.New("geom: zero-length vector")

// Vec3 is a point or vector in model space. Units are whatever the host
// model uses; nothing in this package assumes a particular unit.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// V is shorthand for Vec3{X: x, Y: y, Z: z}.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length.
func (v Vec3) Normalize() (Vec3, error) {
	l := v.Length()
	if l < Epsilon {
		return Vec3{}, ErrZeroVector
	}
	return v.Scale(1 / l), nil
}

// IsUnit reports whether v has length 1 within Epsilon-scaled tolerance.
func (v Vec3) IsUnit() bool {
	return math.Abs(v.Dot(v)-1) <= 1e-6
}

// IsZero reports whether every component of v is exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Component returns the i-th component (0=X, 1=Y, 2=Z).
func (v Vec3) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// ApproxEqual reports whether v and o differ by at most tol per component.
func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol &&
		math.Abs(v.Y-o.Y) <= tol &&
		math.Abs(v.Z-o.Z) <= tol
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g %g %g)", v.X, v.Y, v.Z)
}

// EulerFromZ returns Euler angles in degrees (rotation about X, Y, Z applied
// in that order) that turn the +Z axis onto the unit direction d. Roll about
// d is not determined and is left at zero.
func EulerFromZ(d Vec3) Vec3 {
	pitch := math.Acos(math.Max(-1, math.Min(1, d.Z)))
	yaw := math.Atan2(d.Y, d.X)
	return Vec3{X: 0, Y: pitch * 180 / math.Pi, Z: yaw * 180 / math.Pi}
}
