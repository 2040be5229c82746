package model

import (
	"fmt"

	"github.com/chazu/holeplan/pkg/geom"
)

// Level is a building storey.
type Level struct {
	ID        LevelID `json:"id"`
	Name      string  `json:"name,omitempty"`
	Elevation float64 `json:"elevation"`
}

// Wall is the host-side description of a straight wall: a baseline from
// Start to End at Start.Z, extruded up by Height and centered on the
// baseline across Thickness.
type Wall struct {
	ID        WallID    `json:"id"`
	Level     LevelID   `json:"level"`
	Start     geom.Vec3 `json:"start"`
	End       geom.Vec3 `json:"end"`
	Thickness float64   `json:"thickness"`
	Height    float64   `json:"height"`
}

// Baseline returns the horizontal baseline vector from Start to End.
func (w Wall) Baseline() geom.Vec3 {
	return geom.V(w.End.X-w.Start.X, w.End.Y-w.Start.Y, 0)
}

// Scene is the snapshot a host hands over: levels, walls and conduit runs
// in declaration order. It is built once and then only read.
type Scene struct {
	Levels   []Level
	Walls    []Wall
	Conduits []LinearConduit

	levels   map[LevelID]int
	walls    map[WallID]int
	conduits map[ConduitID]int
}

// NewScene creates an empty Scene.
func NewScene() *Scene {
	return &Scene{
		levels:   make(map[LevelID]int),
		walls:    make(map[WallID]int),
		conduits: make(map[ConduitID]int),
	}
}

// AddLevel registers a level. Level IDs must be unique.
func (s *Scene) AddLevel(l Level) error {
	if _, dup := s.levels[l.ID]; dup {
		return fmt.Errorf("level %q already defined", l.ID)
	}
	s.levels[l.ID] = len(s.Levels)
	s.Levels = append(s.Levels, l)
	return nil
}

// AddWall registers a wall. Wall IDs must be unique.
func (s *Scene) AddWall(w Wall) error {
	if _, dup := s.walls[w.ID]; dup {
		return fmt.Errorf("wall %q already defined", w.ID)
	}
	s.walls[w.ID] = len(s.Walls)
	s.Walls = append(s.Walls, w)
	return nil
}

// AddConduit registers a duct or pipe run. Conduit IDs must be unique.
func (s *Scene) AddConduit(c LinearConduit) error {
	if _, dup := s.conduits[c.ID]; dup {
		return fmt.Errorf("conduit %q already defined", c.ID)
	}
	s.conduits[c.ID] = len(s.Conduits)
	s.Conduits = append(s.Conduits, c)
	return nil
}

// Level returns the level with the given ID, or nil.
func (s *Scene) Level(id LevelID) *Level {
	i, ok := s.levels[id]
	if !ok {
		return nil
	}
	return &s.Levels[i]
}

// Wall returns the wall with the given ID, or nil.
func (s *Scene) Wall(id WallID) *Wall {
	i, ok := s.walls[id]
	if !ok {
		return nil
	}
	return &s.Walls[i]
}

// Conduit returns the conduit with the given ID, or nil.
func (s *Scene) Conduit(id ConduitID) *LinearConduit {
	i, ok := s.conduits[id]
	if !ok {
		return nil
	}
	return &s.Conduits[i]
}

// ElementCount returns the total number of levels, walls and conduits.
func (s *Scene) ElementCount() int {
	return len(s.Levels) + len(s.Walls) + len(s.Conduits)
}
