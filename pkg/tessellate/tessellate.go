// Package tessellate turns a scene and its placed openings into triangle
// meshes for preview: one mesh per wall with its openings cut out, and one
// mesh per conduit.
package tessellate

import (
	"fmt"
	"math"

	"github.com/chazu/holeplan/pkg/geom"
	"github.com/chazu/holeplan/pkg/kernel"
	"github.com/chazu/holeplan/pkg/model"
	"github.com/chazu/holeplan/pkg/obstacle"
)

// Mesh roles.
const (
	RoleWall    = "wall"
	RoleConduit = "conduit"
)

// cutMargin is how far an opening cutter reaches past each wall face so the
// cut goes all the way through.
const cutMargin = 0.05

// Tessellate produces the preview meshes for s. Walls come first in scene
// order, then conduits. Openings must reference walls of s. Conduits with
// zero length are left out. The tessellator is read-only and never mutates
// the scene.
func Tessellate(k kernel.Kernel, s *model.Scene, openings []model.OpeningSpec) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	byWall := make(map[model.WallID][]model.OpeningSpec)
	for _, o := range openings {
		if s.Wall(o.Wall) == nil {
			return nil, fmt.Errorf("tessellate: opening %s references unknown wall %s", o.ID, o.Wall)
		}
		byWall[o.Wall] = append(byWall[o.Wall], o)
	}

	meshes := make([]*kernel.Mesh, 0, len(s.Walls)+len(s.Conduits))
	for _, w := range s.Walls {
		solid, err := WallSolid(k, w, byWall[w.ID])
		if err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for wall %s: %w", w.ID, err)
		}
		mesh.Element = string(w.ID)
		mesh.Role = RoleWall
		meshes = append(meshes, mesh)
	}

	for _, c := range s.Conduits {
		if c.Check() != nil {
			continue
		}
		solid, err := ConduitSolid(k, c)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for conduit %s: %w", c.ID, err)
		}
		mesh.Element = string(c.ID)
		mesh.Role = RoleConduit
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// WallSolid builds the solid for w with every opening in openings cut out.
func WallSolid(k kernel.Kernel, w model.Wall, openings []model.OpeningSpec) (kernel.Solid, error) {
	solid, err := obstacle.Solid(k, w)
	if err != nil {
		return nil, err
	}
	for _, o := range openings {
		solid = k.Difference(solid, Cutter(k, w, o))
	}
	return solid, nil
}

// Cutter returns the box removed from w for opening o: o.Width along the
// wall, o.Height up, and a little more than the wall thickness across. It
// is centered on the wall's mid-plane at the opening point.
func Cutter(k kernel.Kernel, w model.Wall, o model.OpeningSpec) kernel.Solid {
	base := w.Baseline()
	cutter := k.Box(o.Width, w.Thickness+2*cutMargin, o.Height)

	heading := math.Atan2(base.Y, base.X) * 180 / math.Pi
	if heading != 0 {
		cutter = k.Rotate(cutter, 0, 0, heading)
	}

	center := o.Point
	if n, err := geom.V(-base.Y, base.X, 0).Normalize(); err == nil {
		offset := o.Point.Sub(w.Start).Dot(n)
		center = o.Point.Sub(n.Scale(offset))
	}
	return k.Translate(cutter, center.X, center.Y, center.Z)
}

// ConduitSolid builds the solid of a conduit run: a box for ducts and a
// cylinder for pipes, laid along the centerline. Duct width is kept
// horizontal for horizontal runs.
func ConduitSolid(k kernel.Kernel, c model.LinearConduit) (kernel.Solid, error) {
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("conduit %s: %w", c.ID, err)
	}

	var solid kernel.Solid
	switch sec := c.Section.(type) {
	case model.RectSection:
		solid = k.Box(sec.Height, sec.Width, c.Length)
	case model.RoundSection:
		solid = k.Cylinder(c.Length, sec.Diameter/2)
	default:
		return nil, fmt.Errorf("conduit %s has unsupported section %T", c.ID, c.Section)
	}

	rot := geom.EulerFromZ(c.Direction)
	if rot.Y != 0 || rot.Z != 0 {
		solid = k.Rotate(solid, rot.X, rot.Y, rot.Z)
	}

	mid := c.Start.Add(c.Direction.Scale(c.Length / 2))
	return k.Translate(solid, mid.X, mid.Y, mid.Z), nil
}
