package model

import (
	"errors"
	"fmt"

	"github.com/chazu/holeplan/pkg/geom"
)

// ConduitID identifies a duct or pipe run.
type ConduitID string

// ConduitKind distinguishes ducts from pipes.
type ConduitKind int

const (
	ConduitDuct ConduitKind = iota // rectangular section
	ConduitPipe                    // round section
)

func (k ConduitKind) String() string {
	switch k {
	case ConduitDuct:
		return "duct"
	case ConduitPipe:
		return "pipe"
	default:
		return "unknown"
	}
}

// CrossSection is the interface for conduit section shapes.
type CrossSection interface {
	crossSection() // marker method restricting implementations to this package
}

// RectSection is a rectangular duct section.
type RectSection struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (RectSection) crossSection() {}

// RoundSection is a circular pipe section.
type RoundSection struct {
	Diameter float64 `json:"diameter"`
}

func (RoundSection) crossSection() {}

// Degeneracy reasons reported by LinearConduit.Check.
var (
	ErrZeroLength     = errors.New("conduit has zero length")
	ErrBadDirection   = errors.New("conduit direction is not a unit vector")
	ErrUnknownSection = errors.New("conduit has no usable cross-section")
)

// LinearConduit is a straight duct or pipe run.
type LinearConduit struct {
	ID        ConduitID    `json:"id"`
	Kind      ConduitKind  `json:"kind"`
	Start     geom.Vec3    `json:"start"`
	Direction geom.Vec3    `json:"direction"` // unit
	Length    float64      `json:"length"`
	Section   CrossSection `json:"section"`
}

// NewConduit builds a conduit running from start to end. The kind follows
// the section: rectangular sections are ducts, round ones pipes. A run whose
// end points coincide gets a zero direction and zero length; Check reports
// it as degenerate.
func NewConduit(id ConduitID, start, end geom.Vec3, section CrossSection) LinearConduit {
	c := LinearConduit{ID: id, Start: start, Section: section}
	if _, ok := section.(RoundSection); ok {
		c.Kind = ConduitPipe
	}
	span := end.Sub(start)
	if dir, err := span.Normalize(); err == nil {
		c.Direction = dir
		c.Length = span.Length()
	}
	return c
}

// End returns the conduit's terminal point.
func (c LinearConduit) End() geom.Vec3 {
	return c.Start.Add(c.Direction.Scale(c.Length))
}

// Ray returns the conduit centerline as a ray from its start point.
func (c LinearConduit) Ray() (geom.Ray, error) {
	return geom.NewRay(c.Start, c.Direction)
}

// Check reports why the conduit cannot be processed, or nil.
func (c LinearConduit) Check() error {
	if c.Length <= 0 {
		return ErrZeroLength
	}
	if !c.Direction.IsUnit() {
		return ErrBadDirection
	}
	switch s := c.Section.(type) {
	case RectSection:
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: duct section %gx%g", ErrUnknownSection, s.Width, s.Height)
		}
	case RoundSection:
		if s.Diameter <= 0 {
			return fmt.Errorf("%w: pipe diameter %g", ErrUnknownSection, s.Diameter)
		}
	default:
		return ErrUnknownSection
	}
	return nil
}
