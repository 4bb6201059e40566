package geometry

import (
	"cogentcore.org/core/math32"
	fmath "github.com/chewxy/math32"
)

// BezierCurve is one cubic segment over four control points.
// The xyz lanes hold positions, the w lane holds the per-vertex radius.
type BezierCurve struct {
	V0 math32.Vector4
	V1 math32.Vector4
	V2 math32.Vector4
	V3 math32.Vector4
}

// NewBezierCurve creates a curve from its four control points
func NewBezierCurve(v0, v1, v2, v3 math32.Vector4) BezierCurve {
	return BezierCurve{V0: v0, V1: v1, V2: v2, V3: v3}
}

// Begin returns the curve start point (u = 0)
func (c BezierCurve) Begin() math32.Vector4 { return c.V0 }

// End returns the curve end point (u = 1)
func (c BezierCurve) End() math32.Vector4 { return c.V3 }

// Eval returns position and radius at parameter u using the Bernstein basis
func (c BezierCurve) Eval(u float32) math32.Vector4 {
	t1 := 1 - u
	b0 := t1 * t1 * t1
	b1 := 3 * u * t1 * t1
	b2 := 3 * u * u * t1
	b3 := u * u * u
	return c.V0.MulScalar(b0).
		Add(c.V1.MulScalar(b1)).
		Add(c.V2.MulScalar(b2)).
		Add(c.V3.MulScalar(b3))
}

// EvalDu returns the first derivative at parameter u: the quadratic
// hodograph over the control-point differences.
func (c BezierCurve) EvalDu(u float32) math32.Vector4 {
	t1 := 1 - u
	d0 := c.V1.Sub(c.V0)
	d1 := c.V2.Sub(c.V1)
	d2 := c.V3.Sub(c.V2)
	return d0.MulScalar(3 * t1 * t1).
		Add(d1.MulScalar(6 * u * t1)).
		Add(d2.MulScalar(3 * u * u))
}

// maxRadius bounds the radius cubic over [0,1] by the envelope of the
// control radii, taken as absolute values so degenerate negative radii
// still dilate rather than shrink a box.
func (c BezierCurve) maxRadius() float32 {
	r := fmath.Abs(c.V0.W)
	r = fmath.Max(r, fmath.Abs(c.V1.W))
	r = fmath.Max(r, fmath.Abs(c.V2.W))
	r = fmath.Max(r, fmath.Abs(c.V3.W))
	return r
}

// solveQuadratic finds the real roots of c2 x² + c1 x + c0 = 0.
// Near-linear equations fall back to the single linear root.
func solveQuadratic(c0, c1, c2 float32) ([2]float32, int) {
	if fmath.Abs(c2) < 1e-12 {
		if fmath.Abs(c1) < 1e-12 {
			return [2]float32{}, 0
		}
		return [2]float32{-c0 / c1}, 1
	}
	disc := c1*c1 - 4*c2*c0
	if disc < 0 {
		return [2]float32{}, 0
	}
	if disc == 0 {
		return [2]float32{-c1 / (2 * c2)}, 1
	}
	// stable form: avoid cancellation between -c1 and the root
	q := -0.5 * (c1 + fmath.Copysign(fmath.Sqrt(disc), c1))
	r0 := q / c2
	r1 := c0 / q
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	return [2]float32{r0, r1}, 2
}

func vectorDim(v math32.Vector4, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// AccurateBounds returns a conservative box of the full swept-sphere
// envelope: per axis the position extrema over [0,1], found from the
// endpoints and the (at most two) interior roots of the derivative, dilated
// by the maximum radius on the curve.
func (c BezierCurve) AccurateBounds() math32.Box3 {
	b := math32.B3Empty()
	var lo, hi math32.Vector3
	for axis := 0; axis < 3; axis++ {
		p0 := vectorDim(c.V0, axis)
		p3 := vectorDim(c.V3, axis)
		min := fmath.Min(p0, p3)
		max := fmath.Max(p0, p3)

		// derivative coefficients per axis: 3[(1-u)²d0 + 2u(1-u)d1 + u²d2]
		d0 := vectorDim(c.V1, axis) - p0
		d1 := vectorDim(c.V2, axis) - vectorDim(c.V1, axis)
		d2 := p3 - vectorDim(c.V2, axis)
		roots, n := solveQuadratic(d0, 2*(d1-d0), d0-2*d1+d2)
		for _, u := range roots[:n] {
			if u <= 0 || u >= 1 {
				continue
			}
			p := vectorDim(c.Eval(u), axis)
			min = fmath.Min(min, p)
			max = fmath.Max(max, p)
		}
		lo.SetDim(math32.Dims(axis), min)
		hi.SetDim(math32.Dims(axis), max)
	}
	b.ExpandByPoint(lo)
	b.ExpandByPoint(hi)
	b.ExpandByScalar(c.maxRadius())
	return b
}

// TessellatedBounds returns the union of the boxes of rate straight
// segments sampled at u = k/rate, each dilated by the larger interpolated
// endpoint radius. This mirrors the polyline the flat intersector tests
// against. rate must be >= 1.
func (c BezierCurve) TessellatedBounds(rate int) math32.Box3 {
	b := math32.B3Empty()
	prev := c.Eval(0)
	for k := 1; k <= rate; k++ {
		next := c.Eval(float32(k) / float32(rate))
		seg := math32.B3Empty()
		seg.ExpandByPoint(math32.Vec3(prev.X, prev.Y, prev.Z))
		seg.ExpandByPoint(math32.Vec3(next.X, next.Y, next.Z))
		seg.ExpandByScalar(fmath.Max(fmath.Abs(prev.W), fmath.Abs(next.W)))
		b.ExpandByBox(seg)
		prev = next
	}
	return b
}
