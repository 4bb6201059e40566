package core

import (
	"cogentcore.org/core/math32"
	fmath "github.com/chewxy/math32"
)

// LerpBox3 interpolates two boxes corner-wise
func LerpBox3(a, b math32.Box3, t float32) math32.Box3 {
	return math32.Box3{
		Min: a.Min.Lerp(b.Min, t),
		Max: a.Max.Lerp(b.Max, t),
	}
}

// LBBox3 is a pair of boxes interpreted as a box linearly interpolated over
// a normalized time range. It is the motion-blur bounding primitive: the box
// at time t is the corner-wise lerp of Bounds0 and Bounds1.
type LBBox3 struct {
	Bounds0 math32.Box3
	Bounds1 math32.Box3
}

// NewLBBox3 creates a linear box from its endpoint boxes
func NewLBBox3(bounds0, bounds1 math32.Box3) LBBox3 {
	return LBBox3{Bounds0: bounds0, Bounds1: bounds1}
}

// LBBox3FromBox creates a linear box constant over time
func LBBox3FromBox(b math32.Box3) LBBox3 {
	return LBBox3{Bounds0: b, Bounds1: b}
}

// EmptyLBBox3 returns a linear box with both endpoints empty
func EmptyLBBox3() LBBox3 {
	return LBBox3{Bounds0: math32.B3Empty(), Bounds1: math32.B3Empty()}
}

// LBBox3FromBoundsFunc bounds a primitive with per-time-step boxes over a
// sub-range of the global [0,1] time interval. bounds(itime) must return the
// box at integer time step itime; numTimeSegments is the float step count T-1.
//
// At the fractional range ends the result equals the lerp of the adjacent
// step boxes; every fully covered interior step box is folded into both
// endpoints so the interpolation conservatively encloses the primitive over
// the whole range.
func LBBox3FromBoundsFunc(bounds func(itime int) math32.Box3, timeRange BBox1, numTimeSegments float32) LBBox3 {
	lower := timeRange.Lower * numTimeSegments
	upper := timeRange.Upper * numTimeSegments
	ilower := int(fmath.Floor(lower))
	iupper := int(fmath.Ceil(upper))

	// degenerate range sitting exactly on one step
	if ilower == iupper {
		return LBBox3FromBox(bounds(ilower))
	}

	blower0 := bounds(ilower)
	bupper1 := bounds(iupper)

	// single covered segment: pure lerp toward each fractional end
	if iupper-ilower == 1 {
		return LBBox3{
			Bounds0: LerpBox3(blower0, bounds(ilower+1), lower-float32(ilower)),
			Bounds1: LerpBox3(bupper1, bounds(iupper-1), float32(iupper)-upper),
		}
	}

	blower1 := bounds(ilower + 1)
	bupper0 := bounds(iupper - 1)
	b0 := LerpBox3(blower0, blower1, lower-float32(ilower))
	b1 := LerpBox3(bupper1, bupper0, float32(iupper)-upper)
	for i := ilower + 1; i < iupper; i++ {
		bt := bounds(i)
		b0.ExpandByBox(bt)
		b1.ExpandByBox(bt)
	}
	return LBBox3{Bounds0: b0, Bounds1: b1}
}

// Interpolate returns the box at normalized time t within the pair's range
func (lb LBBox3) Interpolate(t float32) math32.Box3 {
	return LerpBox3(lb.Bounds0, lb.Bounds1, t)
}

// Extend returns the union of two linear boxes, endpoint-wise.
// Empty endpoint boxes must not poison the union through their
// inverted infinite corners.
func (lb LBBox3) Extend(other LBBox3) LBBox3 {
	b0 := lb.Bounds0
	if !other.Bounds0.IsEmpty() {
		b0.ExpandByBox(other.Bounds0)
	}
	b1 := lb.Bounds1
	if !other.Bounds1.IsEmpty() {
		b1.ExpandByBox(other.Bounds1)
	}
	return LBBox3{Bounds0: b0, Bounds1: b1}
}

// Bounds returns the merged box covering the whole time range
func (lb LBBox3) Bounds() math32.Box3 {
	return lb.Bounds0.Union(lb.Bounds1)
}
