package model

import (
	"fmt"

	"github.com/chazu/holeplan/pkg/kernel"
)

// WallID is the opaque identity of a wall element.
type WallID string

// LevelID references a building level.
type LevelID string

// WallObstacle is a wall as seen by the ray caster: an identity, the level
// it is hosted on, and an intersectable solid.
type WallObstacle struct {
	ID    WallID
	Level LevelID
	Solid kernel.Solid
}

// WallSet is an immutable collection of wall obstacles with unique IDs.
// A nil *WallSet stands for "no wall collection available".
type WallSet struct {
	walls []WallObstacle
	index map[WallID]int
}

// NewWallSet indexes walls by ID. Duplicate IDs and walls without a solid
// are rejected.
func NewWallSet(walls ...WallObstacle) (*WallSet, error) {
	ws := &WallSet{
		walls: make([]WallObstacle, 0, len(walls)),
		index: make(map[WallID]int, len(walls)),
	}
	for _, w := range walls {
		if _, dup := ws.index[w.ID]; dup {
			return nil, fmt.Errorf("model: duplicate wall id %q", w.ID)
		}
		if w.Solid == nil {
			return nil, fmt.Errorf("model: wall %q has no solid", w.ID)
		}
		ws.index[w.ID] = len(ws.walls)
		ws.walls = append(ws.walls, w)
	}
	return ws, nil
}

// All returns the walls in insertion order. The slice must not be modified.
func (ws *WallSet) All() []WallObstacle {
	return ws.walls
}

// Len returns the number of walls.
func (ws *WallSet) Len() int {
	return len(ws.walls)
}

// Get returns the wall with the given ID.
func (ws *WallSet) Get(id WallID) (WallObstacle, bool) {
	i, ok := ws.index[id]
	if !ok {
		return WallObstacle{}, false
	}
	return ws.walls[i], true
}

// LevelOf resolves the level hosting the given wall.
func (ws *WallSet) LevelOf(id WallID) (LevelID, bool) {
	w, ok := ws.Get(id)
	if !ok {
		return "", false
	}
	return w.Level, true
}
