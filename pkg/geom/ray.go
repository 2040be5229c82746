package geom

import (
	"errors"
	"math"
)

// ErrNotUnit is returned when a ray is built from a direction that is not
// unit length.
var ErrNotUnit = errors.New("geom: direction is not a unit vector")

// Ray is a half-line starting at Origin and extending along Dir.
// Dir is always unit length for rays built with NewRay.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay builds a ray, rejecting directions that are not unit length.
func NewRay(origin, dir Vec3) (Ray, error) {
	if !dir.IsUnit() {
		return Ray{}, ErrNotUnit
	}
	return Ray{Origin: origin, Dir: dir}, nil
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// Size returns the box extents.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Clip intersects the ray with the box using the slab method. It returns
// the parameter interval [t0, t1] where the ray (for all t, including
// negative) is inside the box, and false when the ray misses it entirely.
func (b Box) Clip(r Ray) (t0, t1 float64, ok bool) {
	t0, t1 = math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		o := r.Origin.Component(i)
		d := r.Dir.Component(i)
		lo, hi := b.Min.Component(i), b.Max.Component(i)
		if math.Abs(d) < Epsilon {
			// Parallel to this slab: inside it or never.
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		a := (lo - o) / d
		c := (hi - o) / d
		if a > c {
			a, c = c, a
		}
		t0 = math.Max(t0, a)
		t1 = math.Min(t1, c)
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// Forward is Clip restricted to the half-line t >= 0.
func (b Box) Forward(r Ray) (t0, t1 float64, ok bool) {
	t0, t1, ok = b.Clip(r)
	if !ok || t1 < 0 {
		return 0, 0, false
	}
	return math.Max(t0, 0), t1, true
}
