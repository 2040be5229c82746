// Package raycast casts conduit centerlines against wall obstacles.
package raycast

import (
	"errors"
	"fmt"

	"github.com/chazu/holeplan/pkg/geom"
	"github.com/chazu/holeplan/pkg/kernel"
	"github.com/chazu/holeplan/pkg/model"
)

// ErrDirectionNotUnit is returned when Cast is given a direction that is
// zero or not normalized.
var ErrDirectionNotUnit = errors.New("raycast: direction must be a unit vector")

// Caster answers ray queries against a collection of walls. It holds no
// per-query state and is safe for concurrent use as long as its kernel is.
type Caster struct {
	k kernel.Kernel
}

// New returns a Caster backed by the given kernel.
func New(k kernel.Kernel) *Caster {
	return &Caster{k: k}
}

// Cast returns every point along the ray from origin in direction where it
// enters, leaves or touches one of the walls. Hits are grouped by wall in
// the order the walls are given and ascend in proximity within a wall. A
// wall can contribute several hits. No walls means no hits.
func (c *Caster) Cast(origin, direction geom.Vec3, walls []model.WallObstacle) ([]model.RayHit, error) {
	r, err := geom.NewRay(origin, direction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectionNotUnit, direction)
	}

	var hits []model.RayHit
	for _, w := range walls {
		if w.Solid == nil {
			continue
		}
		if _, _, ok := w.Solid.BoundingBox().Forward(r); !ok {
			continue
		}
		for _, t := range c.k.Raycast(w.Solid, r) {
			if t < 0 {
				continue
			}
			hits = append(hits, model.RayHit{Proximity: t, Wall: w.ID})
		}
	}
	return hits, nil
}
