// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Ray queries are answered
// by sphere tracing the signed distance field.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/holeplan/pkg/geom"
	"github.com/chazu/holeplan/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

const (
	// DefaultMeshCells controls marching cubes tessellation resolution.
	DefaultMeshCells = 200
	// DefaultMinStep is the smallest advance of the ray marcher. Surfaces
	// closer together than this along a ray may be merged.
	DefaultMinStep = 1e-4
	// DefaultMaxSteps bounds the number of march steps per solid.
	DefaultMaxSteps = 100000
	// DefaultTolerance is the bisection tolerance for surface distances.
	DefaultTolerance = 1e-9
)

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() geom.Box {
	bb := s.s.BoundingBox()
	return geom.Box{
		Min: geom.V(bb.Min.X, bb.Min.Y, bb.Min.Z),
		Max: geom.V(bb.Max.X, bb.Max.Y, bb.Max.Z),
	}
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	meshCells int
	minStep   float64
	maxSteps  int
	tolerance float64
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// WithMeshCells sets the marching cubes resolution used by ToMesh.
func WithMeshCells(n int) Option {
	return func(k *SdfxKernel) {
		if n > 0 {
			k.meshCells = n
		}
	}
}

// WithMarch sets the ray marcher's minimum step, step budget and root
// tolerance. Non-positive values keep the defaults.
//
// maxSteps caps the samples taken per Raycast call. A ray that exhausts
// it before leaving the solid's bounding box returns only the hits found
// so far.
func WithMarch(minStep float64, maxSteps int, tolerance float64) Option {
	return func(k *SdfxKernel) {
		if minStep > 0 {
			k.minStep = minStep
		}
		if maxSteps > 0 {
			k.maxSteps = maxSteps
		}
		if tolerance > 0 {
			k.tolerance = tolerance
		}
	}
}

// New returns a new SdfxKernel.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{
		meshCells: DefaultMeshCells,
		minStep:   DefaultMinStep,
		maxSteps:  DefaultMaxSteps,
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions centered on the origin.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a cylinder along Z centered on the origin.
func (k *SdfxKernel) Cylinder(height, radius float64) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Raycast sphere-traces the distance field of s along r. Marching is
// limited to the part of the ray inside the solid's bounding box. Every
// sign change of the field is a surface crossing and is refined by
// bisection. Hits are truncated when the step budget set by WithMarch runs
// out.
func (k *SdfxKernel) Raycast(s kernel.Solid, r geom.Ray) []float64 {
	field := unwrap(s)
	t0, t1, ok := s.BoundingBox().Forward(r)
	if !ok {
		return nil
	}
	// Pad so faces lying exactly on the bounding box are bracketed.
	t0 = math.Max(0, t0-k.minStep)
	t1 += k.minStep

	eval := func(t float64) float64 {
		p := r.At(t)
		return field.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z})
	}

	var hits []float64
	prevT, prevD := t0, eval(t0)
	if prevT == 0 && math.Abs(prevD) <= k.tolerance {
		// Origin sits on the surface.
		hits = append(hits, 0)
	}
	for i := 0; i < k.maxSteps && prevT < t1; i++ {
		t := math.Min(prevT+math.Max(math.Abs(prevD), k.minStep), t1)
		d := eval(t)
		if (prevD > 0) != (d > 0) {
			root := k.bisect(eval, prevT, t, prevD > 0)
			if len(hits) == 0 || root-hits[len(hits)-1] > k.tolerance {
				hits = append(hits, root)
			}
		}
		prevT, prevD = t, d
	}
	return hits
}

// bisect narrows [lo, hi] around the sign change of eval. outsideLo tells
// which side of the surface lo is on. The returned root is the end of the
// final bracket nearest the ray origin, so it never lies past the surface.
func (k *SdfxKernel) bisect(eval func(float64) float64, lo, hi float64, outsideLo bool) float64 {
	for i := 0; i < 200 && hi-lo > k.tolerance; i++ {
		mid := 0.5 * (lo + hi)
		if (eval(mid) > 0) == outsideLo {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.meshCells)
	triangles := render.ToTriangles(sdf3, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: marching cubes produced no triangles at %d cells", k.meshCells)
	}

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
