// Package opening sizes wall openings from conduit cross-sections.
package opening

import (
	"fmt"

	"github.com/chazu/holeplan/pkg/model"
)

// DefaultClearance is the margin added to each section dimension, in model
// length units.
const DefaultClearance = 0.16

// Size returns the opening width and height for a conduit: its section plus
// clearance on each dimension. Round sections give a square opening.
func Size(c model.LinearConduit, clearance float64) (width, height float64, err error) {
	switch s := c.Section.(type) {
	case model.RectSection:
		return s.Width + clearance, s.Height + clearance, nil
	case model.RoundSection:
		return s.Diameter + clearance, s.Diameter + clearance, nil
	default:
		return 0, 0, fmt.Errorf("opening: conduit %s has unsupported section %T", c.ID, c.Section)
	}
}
