// Package obstacle turns the wall descriptions of a scene into kernel
// solids the ray caster can intersect.
package obstacle

import (
	"fmt"
	"math"

	"github.com/chazu/holeplan/pkg/kernel"
	"github.com/chazu/holeplan/pkg/model"
)

// Solid builds the kernel solid for a single wall: a box of baseline
// length x thickness x height, turned to the baseline heading and moved so
// its bottom face sits centered on the baseline.
func Solid(k kernel.Kernel, w model.Wall) (kernel.Solid, error) {
	base := w.Baseline()
	length := base.Length()
	if length <= 0 || w.Thickness <= 0 || w.Height <= 0 {
		return nil, fmt.Errorf("obstacle: wall %s has degenerate dimensions (%.4f x %.4f x %.4f)",
			w.ID, length, w.Thickness, w.Height)
	}

	s := k.Box(length, w.Thickness, w.Height)

	heading := math.Atan2(base.Y, base.X) * 180 / math.Pi
	if heading != 0 {
		s = k.Rotate(s, 0, 0, heading)
	}

	mid := w.Start.Add(base.Scale(0.5))
	return k.Translate(s, mid.X, mid.Y, w.Start.Z+w.Height/2), nil
}

// Build converts every wall of the scene into a WallObstacle and indexes
// them. The first wall that cannot be built aborts the whole build.
func Build(k kernel.Kernel, s *model.Scene) (*model.WallSet, error) {
	if s == nil {
		return nil, fmt.Errorf("obstacle: no scene")
	}
	walls := make([]model.WallObstacle, 0, len(s.Walls))
	for _, w := range s.Walls {
		solid, err := Solid(k, w)
		if err != nil {
			return nil, err
		}
		walls = append(walls, model.WallObstacle{
			ID:    w.ID,
			Level: w.Level,
			Solid: solid,
		})
	}
	return model.NewWallSet(walls...)
}
