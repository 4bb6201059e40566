package core

import (
	"testing"

	"cogentcore.org/core/math32"
)

func box(x0, y0, z0, x1, y1, z1 float32) math32.Box3 {
	return math32.B3(x0, y0, z0, x1, y1, z1)
}

// shiftedBoxes returns a bounds function producing a unit box translated by
// itime along x, the usual stand-in for a linearly moving primitive.
func shiftedBoxes(itime int) math32.Box3 {
	o := float32(itime)
	return box(o, 0, 0, o+1, 1, 1)
}

func boxesNear(t *testing.T, want, got math32.Box3, tol float32) {
	t.Helper()
	d := func(a, b float32) float32 {
		if a > b {
			return a - b
		}
		return b - a
	}
	if d(want.Min.X, got.Min.X) > tol || d(want.Min.Y, got.Min.Y) > tol || d(want.Min.Z, got.Min.Z) > tol ||
		d(want.Max.X, got.Max.X) > tol || d(want.Max.Y, got.Max.Y) > tol || d(want.Max.Z, got.Max.Z) > tol {
		t.Errorf("expected box %v..%v, got %v..%v", want.Min, want.Max, got.Min, got.Max)
	}
}

func TestLerpBox3(t *testing.T) {
	a := box(0, 0, 0, 1, 1, 1)
	b := box(2, 0, 0, 3, 1, 1)
	boxesNear(t, box(1, 0, 0, 2, 1, 1), LerpBox3(a, b, 0.5), 1e-6)
	boxesNear(t, a, LerpBox3(a, b, 0), 1e-6)
	boxesNear(t, b, LerpBox3(a, b, 1), 1e-6)
}

func TestLBBox3_FullRangeSingleSegment(t *testing.T) {
	lb := LBBox3FromBoundsFunc(shiftedBoxes, NewBBox1(0, 1), 1)
	boxesNear(t, shiftedBoxes(0), lb.Bounds0, 1e-6)
	boxesNear(t, shiftedBoxes(1), lb.Bounds1, 1e-6)
}

func TestLBBox3_FractionalEndsLerp(t *testing.T) {
	// range [0.25, 0.75] of one segment: endpoints must equal the lerp of
	// the step boxes at those times
	lb := LBBox3FromBoundsFunc(shiftedBoxes, NewBBox1(0.25, 0.75), 1)
	boxesNear(t, LerpBox3(shiftedBoxes(0), shiftedBoxes(1), 0.25), lb.Bounds0, 1e-5)
	boxesNear(t, LerpBox3(shiftedBoxes(0), shiftedBoxes(1), 0.75), lb.Bounds1, 1e-5)
}

func TestLBBox3_InteriorStepsEnclosed(t *testing.T) {
	// four segments fully covered: every interior step box must lie inside
	// both endpoint boxes
	lb := LBBox3FromBoundsFunc(shiftedBoxes, NewBBox1(0, 1), 4)
	for itime := 1; itime < 4; itime++ {
		bt := shiftedBoxes(itime)
		if !lb.Bounds0.ContainsBox(bt) || !lb.Bounds1.ContainsBox(bt) {
			t.Errorf("interior step %d box not enclosed by both endpoints", itime)
		}
	}
	// and interpolation anywhere in range must cover the matching step box
	for _, tt := range []struct {
		time  float32
		itime int
	}{{0, 0}, {0.25, 1}, {0.5, 2}, {0.75, 3}, {1, 4}} {
		if !lb.Interpolate(tt.time).ContainsBox(shiftedBoxes(tt.itime)) {
			t.Errorf("interpolated box at %v does not contain step %d box", tt.time, tt.itime)
		}
	}
}

func TestLBBox3_DegenerateRangeCollapses(t *testing.T) {
	lb := LBBox3FromBoundsFunc(shiftedBoxes, NewBBox1(0.5, 0.5), 2)
	boxesNear(t, shiftedBoxes(1), lb.Bounds0, 1e-6)
	boxesNear(t, shiftedBoxes(1), lb.Bounds1, 1e-6)
}

func TestLBBox3_ExtendAndBounds(t *testing.T) {
	a := NewLBBox3(box(0, 0, 0, 1, 1, 1), box(2, 0, 0, 3, 1, 1))
	b := NewLBBox3(box(-1, 0, 0, 0, 1, 1), box(5, 0, 0, 6, 1, 1))
	e := a.Extend(b)
	boxesNear(t, box(-1, 0, 0, 1, 1, 1), e.Bounds0, 1e-6)
	boxesNear(t, box(2, 0, 0, 6, 1, 1), e.Bounds1, 1e-6)
	boxesNear(t, box(-1, 0, 0, 6, 1, 1), e.Bounds(), 1e-6)
}

func TestBBox1(t *testing.T) {
	b := NewBBox1(0.2, 0.8)
	if b.Empty() {
		t.Error("non-empty range reported empty")
	}
	if got := b.Size(); got < 0.6-1e-6 || got > 0.6+1e-6 {
		t.Errorf("expected size 0.6, got %v", got)
	}
	if got := b.Lerp(0.5); got < 0.5-1e-6 || got > 0.5+1e-6 {
		t.Errorf("expected midpoint 0.5, got %v", got)
	}
	i := b.Intersect(NewBBox1(0.5, 1.0))
	if i.Lower != 0.5 || i.Upper != 0.8 {
		t.Errorf("expected intersection [0.5,0.8], got [%v,%v]", i.Lower, i.Upper)
	}
	if !NewBBox1(1, 0).Empty() {
		t.Error("inverted range must be empty")
	}
}
