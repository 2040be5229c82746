package kernel

import "github.com/chazu/holeplan/pkg/geom"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Element  string    `json:"element"`  // wall or conduit ID this mesh came from
	Role     string    `json:"role"`     // "wall" or "conduit"
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Bounds returns the axis-aligned extents of the mesh vertices. An empty
// mesh yields the zero box.
func (m *Mesh) Bounds() geom.Box {
	if m.IsEmpty() {
		return geom.Box{}
	}
	lo := [3]float32{m.Vertices[0], m.Vertices[1], m.Vertices[2]}
	hi := lo
	for i := 3; i+2 < len(m.Vertices); i += 3 {
		for j := 0; j < 3; j++ {
			v := m.Vertices[i+j]
			if v < lo[j] {
				lo[j] = v
			}
			if v > hi[j] {
				hi[j] = v
			}
		}
	}
	return geom.Box{
		Min: geom.V(float64(lo[0]), float64(lo[1]), float64(lo[2])),
		Max: geom.V(float64(hi[0]), float64(hi[1]), float64(hi[2])),
	}
}
