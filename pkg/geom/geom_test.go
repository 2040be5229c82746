package geom

import (
	"errors"
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := V(1, 2, 3)
	b := V(4, -1, 0.5)

	if got := a.Add(b); got != V(5, 1, 3.5) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(-3, 3, 2.5) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != V(2, 4, 6) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 3.5 {
		t.Errorf("Dot = %v, want 3.5", got)
	}
	if got := V(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
}

func TestNormalize(t *testing.T) {
	n, err := V(0, 3, 4).Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !n.ApproxEqual(V(0, 0.6, 0.8), 1e-12) {
		t.Errorf("Normalize = %v", n)
	}
	if !n.IsUnit() {
		t.Error("normalized vector should be unit")
	}

	if _, err := (Vec3{}).Normalize(); !errors.Is(err, ErrZeroVector) {
		t.Errorf("Normalize(zero) err = %v, want ErrZeroVector", err)
	}
}

func TestNewRayRejectsNonUnit(t *testing.T) {
	tests := []struct {
		name string
		dir  Vec3
		ok   bool
	}{
		{"unit x", V(1, 0, 0), true},
		{"unit diagonal", V(math.Sqrt2/2, math.Sqrt2/2, 0), true},
		{"zero", V(0, 0, 0), false},
		{"long", V(2, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRay(V(0, 0, 0), tt.dir)
			if tt.ok && err != nil {
				t.Errorf("NewRay(%v) error = %v", tt.dir, err)
			}
			if !tt.ok && !errors.Is(err, ErrNotUnit) {
				t.Errorf("NewRay(%v) error = %v, want ErrNotUnit", tt.dir, err)
			}
		})
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: V(1, 1, 1), Dir: V(0, 0, 1)}
	if got := r.At(2.5); got != V(1, 1, 3.5) {
		t.Errorf("At(2.5) = %v", got)
	}
}

func TestBoxClip(t *testing.T) {
	b := Box{Min: V(4, -1, -1), Max: V(4.2, 1, 1)}

	tests := []struct {
		name   string
		ray    Ray
		ok     bool
		t0, t1 float64
	}{
		{"through", Ray{V(0, 0, 0), V(1, 0, 0)}, true, 4, 4.2},
		{"behind", Ray{V(10, 0, 0), V(1, 0, 0)}, true, -6, -5.8},
		{"parallel outside", Ray{V(0, 5, 0), V(1, 0, 0)}, false, 0, 0},
		{"away", Ray{V(0, 0, 0), V(0, 1, 0)}, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t0, t1, ok := b.Clip(tt.ray)
			if ok != tt.ok {
				t.Fatalf("Clip ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if math.Abs(t0-tt.t0) > 1e-12 || math.Abs(t1-tt.t1) > 1e-12 {
				t.Errorf("Clip = [%v, %v], want [%v, %v]", t0, t1, tt.t0, tt.t1)
			}
		})
	}
}

func TestBoxForward(t *testing.T) {
	b := Box{Min: V(-1, -1, -1), Max: V(1, 1, 1)}

	// Origin inside: interval starts at zero.
	t0, t1, ok := b.Forward(Ray{V(0, 0, 0), V(1, 0, 0)})
	if !ok || t0 != 0 || t1 != 1 {
		t.Errorf("Forward from inside = [%v, %v] %v, want [0, 1] true", t0, t1, ok)
	}

	// Box entirely behind the origin.
	if _, _, ok := b.Forward(Ray{V(5, 0, 0), V(1, 0, 0)}); ok {
		t.Error("Forward should miss a box behind the origin")
	}
}

func TestBoxContains(t *testing.T) {
	b := Box{Min: V(0, 0, 0), Max: V(1, 2, 3)}
	if !b.Contains(V(1, 2, 3)) {
		t.Error("corner should be contained")
	}
	if b.Contains(V(1.1, 0, 0)) {
		t.Error("outside point should not be contained")
	}
	if got := b.Size(); got != V(1, 2, 3) {
		t.Errorf("Size = %v", got)
	}
}

func TestEulerFromZ(t *testing.T) {
	tests := []struct {
		name string
		dir  Vec3
		want Vec3
	}{
		{"up", V(0, 0, 1), V(0, 0, 0)},
		{"x", V(1, 0, 0), V(0, 90, 0)},
		{"y", V(0, 1, 0), V(0, 90, 90)},
		{"down", V(0, 0, -1), V(0, 180, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EulerFromZ(tt.dir); !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("EulerFromZ(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}
