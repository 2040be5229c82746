package model

import (
	"github.com/chazu/holeplan/pkg/geom"
	"github.com/google/uuid"
)

// RayHit is one raw intersection reported by the ray caster.
type RayHit struct {
	Proximity float64 // distance from the ray origin, >= 0
	Wall      WallID
}

// Crossing is a filtered, deduplicated hit: one real penetration of one
// wall by one conduit.
type Crossing struct {
	Proximity float64
	Wall      WallID
	Level     LevelID
	Point     geom.Vec3
}

// OpeningSpec describes one opening to be cut by the host.
type OpeningSpec struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Conduit   ConduitID `json:"conduit" yaml:"conduit"`
	Wall      WallID    `json:"wall" yaml:"wall"`
	Level     LevelID   `json:"level" yaml:"level"`
	Point     geom.Vec3 `json:"point" yaml:"point"`
	Proximity float64   `json:"proximity" yaml:"proximity"`
	Width     float64   `json:"width" yaml:"width"`
	Height    float64   `json:"height" yaml:"height"`
}

// openingNamespace scopes opening IDs so the same conduit/wall pair always
// maps to the same UUID.
var openingNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("holeplan/opening"))

// OpeningID returns the stable ID of the opening cut for conduit c in wall w.
func OpeningID(c ConduitID, w WallID) uuid.UUID {
	return uuid.NewSHA1(openingNamespace, []byte(string(c)+"\x00"+string(w)))
}
