// Package kernel defines the abstract geometry kernel interface.
// Implementations provide solid construction, ray queries against solids
// and tessellation behind this interface, so the ray caster and the
// preview never depend on a particular backend.
package kernel

import "github.com/chazu/holeplan/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() geom.Box
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Both are centered on the origin; the cylinder runs
	// along Z.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Raycast returns the distances along r, in ascending order, at which
	// the ray enters, leaves or touches the surface of s. Only t >= 0 is
	// reported.
	Raycast(s Solid, r geom.Ray) []float64

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
