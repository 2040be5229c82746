package raycast

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/holeplan/pkg/geom"
	"github.com/chazu/holeplan/pkg/kernel"
	"github.com/chazu/holeplan/pkg/kernel/sdfx"
	"github.com/chazu/holeplan/pkg/model"
)

// slab returns a wall of the given thickness whose near face is at x.
func slab(k kernel.Kernel, id model.WallID, x, thickness float64) model.WallObstacle {
	return model.WallObstacle{
		ID:    id,
		Level: "L1",
		Solid: k.Translate(k.Box(thickness, 10, 10), x+thickness/2, 0, 0),
	}
}

func TestCastEntryAndExitFaces(t *testing.T) {
	k := sdfx.New()
	c := New(k)

	hits, err := c.Cast(geom.V(0, 0, 0), geom.V(1, 0, 0), []model.WallObstacle{slab(k, "W1", 4, 0.2)})
	if err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("Cast() = %v, want front and back face", hits)
	}
	for i, want := range []float64{4.0, 4.2} {
		if hits[i].Wall != "W1" {
			t.Errorf("hit[%d].Wall = %q, want W1", i, hits[i].Wall)
		}
		if math.Abs(hits[i].Proximity-want) > 1e-6 {
			t.Errorf("hit[%d].Proximity = %v, want %v", i, hits[i].Proximity, want)
		}
	}
}

func TestCastMultipleWalls(t *testing.T) {
	k := sdfx.New()
	c := New(k)
	walls := []model.WallObstacle{
		slab(k, "far", 8, 0.3),
		slab(k, "near", 2, 0.1),
		slab(k, "behind", -5, 0.2),
	}

	hits, err := c.Cast(geom.V(0, 0, 0), geom.V(1, 0, 0), walls)
	if err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	got := map[model.WallID]int{}
	for _, h := range hits {
		if h.Proximity < 0 {
			t.Errorf("hit behind origin returned: %+v", h)
		}
		got[h.Wall]++
	}
	if got["far"] != 2 || got["near"] != 2 {
		t.Errorf("hits per wall = %v, want 2 for far and near", got)
	}
	if got["behind"] != 0 {
		t.Errorf("wall behind the origin produced %d hits", got["behind"])
	}
	// Grouped by wall in input order.
	if hits[0].Wall != "far" {
		t.Errorf("first hit wall = %q, want far", hits[0].Wall)
	}
}

func TestCastNoWalls(t *testing.T) {
	c := New(sdfx.New())
	hits, err := c.Cast(geom.V(0, 0, 0), geom.V(0, 0, 1), nil)
	if err != nil {
		t.Fatalf("Cast() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Cast() = %v, want empty", hits)
	}
}

func TestCastRejectsBadDirection(t *testing.T) {
	c := New(sdfx.New())
	for _, dir := range []geom.Vec3{geom.V(0, 0, 0), geom.V(3, 0, 0)} {
		if _, err := c.Cast(geom.V(0, 0, 0), dir, nil); !errors.Is(err, ErrDirectionNotUnit) {
			t.Errorf("Cast(dir=%v) error = %v, want ErrDirectionNotUnit", dir, err)
		}
	}
}

func TestCastSkipsWallsWithoutSolid(t *testing.T) {
	c := New(sdfx.New())
	hits, err := c.Cast(geom.V(0, 0, 0), geom.V(1, 0, 0), []model.WallObstacle{{ID: "ghost"}})
	if err != nil || len(hits) != 0 {
		t.Errorf("Cast() = %v, %v; want no hits", hits, err)
	}
}
