package obstacle_test

import (
	"testing"

	"github.com/chazu/holeplan/pkg/geom"
	"github.com/chazu/holeplan/pkg/kernel/sdfx"
	"github.com/chazu/holeplan/pkg/model"
	"github.com/chazu/holeplan/pkg/obstacle"
)

func TestSolidAxisAligned(t *testing.T) {
	k := sdfx.New()
	w := model.Wall{ID: "W1", Level: "L1", Start: geom.V(0, 0, 1), End: geom.V(10, 0, 1), Thickness: 0.2, Height: 3}

	s, err := obstacle.Solid(k, w)
	if err != nil {
		t.Fatalf("Solid() error = %v", err)
	}
	bb := s.BoundingBox()
	if !bb.Min.ApproxEqual(geom.V(0, -0.1, 1), 1e-6) || !bb.Max.ApproxEqual(geom.V(10, 0.1, 4), 1e-6) {
		t.Errorf("BoundingBox = %+v", bb)
	}
}

func TestSolidRotatedIsHit(t *testing.T) {
	k := sdfx.New()
	// Wall running along Y at x=4.
	w := model.Wall{ID: "W1", Level: "L1", Start: geom.V(4, -5, 0), End: geom.V(4, 5, 0), Thickness: 0.2, Height: 3}

	s, err := obstacle.Solid(k, w)
	if err != nil {
		t.Fatalf("Solid() error = %v", err)
	}
	hits := k.Raycast(s, geom.Ray{Origin: geom.V(0, 0, 1), Dir: geom.V(1, 0, 0)})
	if len(hits) != 2 {
		t.Fatalf("Raycast = %v, want entry and exit", hits)
	}
	if hits[0] < 3.9-1e-6 || hits[0] > 3.9+1e-6 || hits[1] < 4.1-1e-6 || hits[1] > 4.1+1e-6 {
		t.Errorf("Raycast = %v, want ~[3.9 4.1]", hits)
	}
}

func TestSolidDegenerate(t *testing.T) {
	k := sdfx.New()
	tests := []model.Wall{
		{ID: "zero-length", Start: geom.V(1, 1, 0), End: geom.V(1, 1, 5), Thickness: 0.2, Height: 3},
		{ID: "no-thickness", Start: geom.V(0, 0, 0), End: geom.V(1, 0, 0), Height: 3},
		{ID: "no-height", Start: geom.V(0, 0, 0), End: geom.V(1, 0, 0), Thickness: 0.2},
	}
	for _, w := range tests {
		t.Run(string(w.ID), func(t *testing.T) {
			if _, err := obstacle.Solid(k, w); err == nil {
				t.Error("expected error for degenerate wall")
			}
		})
	}
}

func TestBuild(t *testing.T) {
	k := sdfx.New()
	s := model.NewScene()
	_ = s.AddLevel(model.Level{ID: "L1"})
	_ = s.AddWall(model.Wall{ID: "W1", Level: "L1", Start: geom.V(0, 0, 0), End: geom.V(5, 0, 0), Thickness: 0.2, Height: 3})
	_ = s.AddWall(model.Wall{ID: "W2", Level: "L1", Start: geom.V(0, 2, 0), End: geom.V(5, 2, 0), Thickness: 0.2, Height: 3})

	ws, err := obstacle.Build(k, s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if ws.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ws.Len())
	}
	if lvl, ok := ws.LevelOf("W2"); !ok || lvl != "L1" {
		t.Errorf("LevelOf(W2) = %q, %v", lvl, ok)
	}

	if _, err := obstacle.Build(k, nil); err == nil {
		t.Error("Build(nil) should fail")
	}
}
