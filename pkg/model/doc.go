// Package model defines the inputs and outputs of opening placement:
// conduit runs, wall obstacles, ray hits, crossings and opening specs,
// plus the Scene a host assembles them from.
//
// Everything here is an immutable snapshot. The placement pipeline reads
// conduits and walls and produces new OpeningSpec values; it never mutates
// its inputs.
package model
