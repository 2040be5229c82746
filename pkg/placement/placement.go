// Package placement runs the opening pipeline over a set of conduits:
// for every conduit, cast its centerline against the walls, drop hits past
// its end, keep one hit per wall, size the opening and emit it.
//
// Conduits are independent of each other, so they are processed on a
// bounded pool of workers. The output is merged back in conduit order.
package placement

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/holeplan/pkg/crossing"
	"github.com/chazu/holeplan/pkg/kernel"
	"github.com/chazu/holeplan/pkg/model"
	"github.com/chazu/holeplan/pkg/opening"
	"github.com/chazu/holeplan/pkg/raycast"
)

// Preconditions checked once per run. Either one aborts the run before any
// conduit is processed.
var (
	ErrNoWalls          = errors.New("placement: no wall collection available")
	ErrNoRaycastContext = errors.New("placement: no ray casting context")
	ErrBadClearance     = errors.New("placement: clearance must be positive")
)

// Options configures a Driver. The zero value is usable.
type Options struct {
	// Clearance is added to each section dimension. Zero means
	// opening.DefaultClearance.
	Clearance float64
	// Workers bounds concurrent conduits. Zero means GOMAXPROCS.
	Workers int
	// Logger receives per-run and per-conduit messages. Nil discards them.
	Logger *log.Logger
}

// Report summarizes a run.
type Report struct {
	Conduits  int           // conduits submitted
	Skipped   int           // degenerate conduits that produced nothing
	Crossings int           // openings emitted
	Elapsed   time.Duration // wall time of the run
}

// Driver sequences the placement pipeline. It is safe for concurrent use.
type Driver struct {
	caster    *raycast.Caster
	clearance float64
	workers   int
	logger    *log.Logger
}

// New returns a Driver casting rays with k. A nil kernel yields a driver
// whose runs fail with ErrNoRaycastContext.
func New(k kernel.Kernel, opts Options) *Driver {
	d := &Driver{
		clearance: opts.Clearance,
		workers:   opts.Workers,
		logger:    opts.Logger,
	}
	if k != nil {
		d.caster = raycast.New(k)
	}
	if d.clearance == 0 {
		d.clearance = opening.DefaultClearance
	}
	if d.workers <= 0 {
		d.workers = runtime.GOMAXPROCS(0)
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	return d
}

// Clearance returns the margin the driver applies to openings.
func (d *Driver) Clearance() float64 {
	return d.clearance
}

// Run places openings for all conduits. See RunReport.
func (d *Driver) Run(ctx context.Context, conduits []model.LinearConduit, walls *model.WallSet) ([]model.OpeningSpec, error) {
	specs, _, err := d.RunReport(ctx, conduits, walls)
	return specs, err
}

// RunReport places openings for all conduits and reports what happened.
// The result lists each conduit's openings in conduit order. Degenerate
// conduits are logged and skipped; only missing walls, a missing ray
// casting context, a bad clearance or cancellation fail the run.
func (d *Driver) RunReport(ctx context.Context, conduits []model.LinearConduit, walls *model.WallSet) ([]model.OpeningSpec, Report, error) {
	start := time.Now()
	rep := Report{Conduits: len(conduits)}

	if walls == nil {
		return nil, rep, ErrNoWalls
	}
	if d.caster == nil {
		return nil, rep, ErrNoRaycastContext
	}
	if d.clearance < 0 {
		return nil, rep, fmt.Errorf("%w: %g", ErrBadClearance, d.clearance)
	}

	perConduit := make([][]model.OpeningSpec, len(conduits))
	skipped := make([]bool, len(conduits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i := range conduits {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			specs, err := d.Place(conduits[i], walls)
			if err != nil {
				d.logger.Warn("skipping conduit", "conduit", conduits[i].ID, "err", err)
				skipped[i] = true
				return nil
			}
			perConduit[i] = specs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, rep, err
	}
	if err := ctx.Err(); err != nil {
		return nil, rep, err
	}

	var out []model.OpeningSpec
	for i, specs := range perConduit {
		if skipped[i] {
			rep.Skipped++
		}
		out = append(out, specs...)
	}
	rep.Crossings = len(out)
	rep.Elapsed = time.Since(start)

	d.logger.Info("placed openings",
		"conduits", rep.Conduits,
		"openings", rep.Crossings,
		"skipped", rep.Skipped,
		"walls", walls.Len(),
		"elapsed", rep.Elapsed.Round(time.Millisecond))
	return out, rep, nil
}

// Crossings returns the distinct walls crossed by conduit c within its
// length, ordered by proximity. Each wall appears once, anchored at its
// first reported hit.
func (d *Driver) Crossings(c model.LinearConduit, walls *model.WallSet) ([]model.Crossing, error) {
	if walls == nil {
		return nil, ErrNoWalls
	}
	if d.caster == nil {
		return nil, ErrNoRaycastContext
	}
	if err := c.Check(); err != nil {
		return nil, err
	}

	hits, err := d.caster.Cast(c.Start, c.Direction, walls.All())
	if err != nil {
		return nil, err
	}
	hits = crossing.Filter(hits, c.Length)
	hits = crossing.Dedupe(hits)

	crossings := make([]model.Crossing, 0, len(hits))
	for _, h := range hits {
		level, ok := walls.LevelOf(h.Wall)
		if !ok {
			d.logger.Warn("hit on unknown wall", "conduit", c.ID, "wall", h.Wall)
			continue
		}
		crossings = append(crossings, model.Crossing{
			Proximity: h.Proximity,
			Wall:      h.Wall,
			Level:     level,
			Point:     c.Start.Add(c.Direction.Scale(h.Proximity)),
		})
	}
	slices.SortStableFunc(crossings, func(a, b model.Crossing) int {
		return cmp.Compare(a.Proximity, b.Proximity)
	})
	return crossings, nil
}

// Place computes the openings for a single conduit.
func (d *Driver) Place(c model.LinearConduit, walls *model.WallSet) ([]model.OpeningSpec, error) {
	crossings, err := d.Crossings(c, walls)
	if err != nil {
		return nil, err
	}
	if len(crossings) == 0 {
		return nil, nil
	}

	width, height, err := opening.Size(c, d.clearance)
	if err != nil {
		return nil, err
	}

	specs := make([]model.OpeningSpec, 0, len(crossings))
	for _, x := range crossings {
		d.logger.Debug("crossing",
			"conduit", c.ID,
			"wall", x.Wall,
			"proximity", x.Proximity,
			"point", x.Point.String())
		specs = append(specs, model.OpeningSpec{
			ID:        model.OpeningID(c.ID, x.Wall),
			Conduit:   c.ID,
			Wall:      x.Wall,
			Level:     x.Level,
			Point:     x.Point,
			Proximity: x.Proximity,
			Width:     width,
			Height:    height,
		})
	}
	return specs, nil
}
