// Package crossing reduces raw ray hits to real wall crossings: hits past
// the end of the conduit are dropped, and each wall keeps a single hit.
package crossing

import "github.com/chazu/holeplan/pkg/model"

// Filter keeps the hits with 0 <= Proximity <= maxProximity, in order.
// maxProximity is the length of the conduit the ray was cast from.
func Filter(hits []model.RayHit, maxProximity float64) []model.RayHit {
	kept := make([]model.RayHit, 0, len(hits))
	for _, h := range hits {
		if h.Proximity >= 0 && h.Proximity <= maxProximity {
			kept = append(kept, h)
		}
	}
	return kept
}

// Dedupe keeps one hit per wall: the first one encountered in hits. Only
// the wall identity is compared; proximities are ignored. Output order is
// the encounter order of each wall's first hit.
func Dedupe(hits []model.RayHit) []model.RayHit {
	seen := make(map[model.WallID]bool, len(hits))
	kept := make([]model.RayHit, 0, len(hits))
	for _, h := range hits {
		if seen[h.Wall] {
			continue
		}
		seen[h.Wall] = true
		kept = append(kept, h)
	}
	return kept
}
