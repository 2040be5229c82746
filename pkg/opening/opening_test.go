package opening

import (
	"math"
	"testing"

	"github.com/chazu/holeplan/pkg/geom"
	"github.com/chazu/holeplan/pkg/model"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name          string
		section       model.CrossSection
		clearance     float64
		width, height float64
	}{
		{"duct", model.RectSection{Width: 0.5, Height: 0.3}, DefaultClearance, 0.66, 0.46},
		{"pipe", model.RoundSection{Diameter: 0.2}, DefaultClearance, 0.36, 0.36},
		{"custom clearance", model.RectSection{Width: 1, Height: 2}, 0.05, 1.05, 2.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := model.NewConduit("C", geom.V(0, 0, 0), geom.V(1, 0, 0), tt.section)
			w, h, err := Size(c, tt.clearance)
			if err != nil {
				t.Fatalf("Size() error = %v", err)
			}
			if math.Abs(w-tt.width) > 1e-12 || math.Abs(h-tt.height) > 1e-12 {
				t.Errorf("Size() = %v x %v, want %v x %v", w, h, tt.width, tt.height)
			}
		})
	}
}

func TestSizeAlwaysLarger(t *testing.T) {
	sections := []model.CrossSection{
		model.RectSection{Width: 0.1, Height: 2.5},
		model.RoundSection{Diameter: 0.015},
	}
	for _, s := range sections {
		c := model.LinearConduit{ID: "C", Section: s}
		w, h, err := Size(c, DefaultClearance)
		if err != nil {
			t.Fatal(err)
		}
		var sw, sh float64
		switch v := s.(type) {
		case model.RectSection:
			sw, sh = v.Width, v.Height
		case model.RoundSection:
			sw, sh = v.Diameter, v.Diameter
		}
		if w <= sw || h <= sh {
			t.Errorf("opening %vx%v not larger than section %vx%v", w, h, sw, sh)
		}
	}
}

func TestSizeUnsupported(t *testing.T) {
	if _, _, err := Size(model.LinearConduit{ID: "C"}, DefaultClearance); err == nil {
		t.Error("expected error for missing section")
	}
}
