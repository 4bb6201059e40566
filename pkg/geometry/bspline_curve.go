package geometry

import "cogentcore.org/core/math32"

// BSplineCurve is one cubic segment over four consecutive control points of
// a uniform cubic B-spline, with radii in the w lane like BezierCurve.
type BSplineCurve struct {
	V0 math32.Vector4
	V1 math32.Vector4
	V2 math32.Vector4
	V3 math32.Vector4
}

// NewBSplineCurve creates a curve from its four control points
func NewBSplineCurve(v0, v1, v2, v3 math32.Vector4) BSplineCurve {
	return BSplineCurve{V0: v0, V1: v1, V2: v2, V3: v3}
}

// Eval returns position and radius at parameter u using the uniform cubic
// B-spline basis functions
func (c BSplineCurve) Eval(u float32) math32.Vector4 {
	t := u
	s := 1 - u
	b0 := s * s * s / 6
	b1 := (3*t*t*t - 6*t*t + 4) / 6
	b2 := (-3*t*t*t + 3*t*t + 3*t + 1) / 6
	b3 := t * t * t / 6
	return c.V0.MulScalar(b0).
		Add(c.V1.MulScalar(b1)).
		Add(c.V2.MulScalar(b2)).
		Add(c.V3.MulScalar(b3))
}

// EvalDu returns the first derivative at parameter u
func (c BSplineCurve) EvalDu(u float32) math32.Vector4 {
	t := u
	s := 1 - u
	d0 := -s * s / 2
	d1 := (9*t*t - 12*t) / 6
	d2 := (-9*t*t + 6*t + 3) / 6
	d3 := t * t / 2
	return c.V0.MulScalar(d0).
		Add(c.V1.MulScalar(d1)).
		Add(c.V2.MulScalar(d2)).
		Add(c.V3.MulScalar(d3))
}

// BSplineToBezier converts a B-spline segment to the Bezier control points
// of the identical cubic, applied per lane including radius:
//
//	p0 = (q0 + 4 q1 + q2) / 6
//	p1 = (4 q1 + 2 q2) / 6
//	p2 = (2 q1 + 4 q2) / 6
//	p3 = (q1 + 4 q2 + q3) / 6
func BSplineToBezier(c BSplineCurve) BezierCurve {
	q1x4 := c.V1.MulScalar(4)
	q2x4 := c.V2.MulScalar(4)
	return BezierCurve{
		V0: c.V0.Add(q1x4).Add(c.V2).DivScalar(6),
		V1: q1x4.Add(c.V2.MulScalar(2)).DivScalar(6),
		V2: c.V1.MulScalar(2).Add(q2x4).DivScalar(6),
		V3: c.V1.Add(q2x4).Add(c.V3).DivScalar(6),
	}
}
