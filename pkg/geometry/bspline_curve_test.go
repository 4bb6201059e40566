package geometry

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestBSplineToBezier_CollinearPoints(t *testing.T) {
	// collinear control points 0,3,6,9 along x: the segment is the straight
	// span [3,6], so the bezier points come out equally spaced
	in := NewBSplineCurve(
		math32.Vec4(0, 0, 0, 0),
		math32.Vec4(3, 0, 0, 0),
		math32.Vec4(6, 0, 0, 0),
		math32.Vec4(9, 0, 0, 0),
	)
	out := BSplineToBezier(in)
	assert.InDelta(t, 3, out.V0.X, 1e-5)
	assert.InDelta(t, 4, out.V1.X, 1e-5)
	assert.InDelta(t, 5, out.V2.X, 1e-5)
	assert.InDelta(t, 6, out.V3.X, 1e-5)
}

func TestBSplineToBezier_RadiusLaneConverts(t *testing.T) {
	in := NewBSplineCurve(
		math32.Vec4(0, 0, 0, 0),
		math32.Vec4(0, 0, 0, 3),
		math32.Vec4(0, 0, 0, 6),
		math32.Vec4(0, 0, 0, 9),
	)
	out := BSplineToBezier(in)
	// the conversion applies per lane including radius
	assert.InDelta(t, 3, out.V0.W, 1e-5)
	assert.InDelta(t, 4, out.V1.W, 1e-5)
	assert.InDelta(t, 5, out.V2.W, 1e-5)
	assert.InDelta(t, 6, out.V3.W, 1e-5)
}

func TestBSplineToBezier_EvaluationParity(t *testing.T) {
	in := NewBSplineCurve(
		math32.Vec4(0, 0, 0, 0.1),
		math32.Vec4(1, 2, -1, 0.5),
		math32.Vec4(3, 1, 2, 0.2),
		math32.Vec4(4, -1, 1, 0.4),
	)
	out := BSplineToBezier(in)

	// the converted bezier must trace the identical cubic in all lanes
	for _, u := range []float32{0, 1.0 / 3.0, 2.0 / 3.0, 1} {
		want := in.Eval(u)
		got := out.Eval(u)
		assert.InDelta(t, want.X, got.X, 1e-5, "x at u=%v", u)
		assert.InDelta(t, want.Y, got.Y, 1e-5, "y at u=%v", u)
		assert.InDelta(t, want.Z, got.Z, 1e-5, "z at u=%v", u)
		assert.InDelta(t, want.W, got.W, 1e-5, "radius at u=%v", u)
	}
}

func TestBSplineCurve_EvalDuMatchesFiniteDifference(t *testing.T) {
	c := NewBSplineCurve(
		math32.Vec4(0, 0, 0, 0),
		math32.Vec4(1, 2, -1, 0),
		math32.Vec4(3, 1, 2, 0),
		math32.Vec4(4, -1, 1, 0),
	)
	const h = 1e-3
	for _, u := range []float32{0.1, 0.5, 0.9} {
		d := c.EvalDu(u)
		fd := c.Eval(u + h).Sub(c.Eval(u - h)).DivScalar(2 * h)
		assert.InDelta(t, fd.X, d.X, 1e-2)
		assert.InDelta(t, fd.Y, d.Y, 1e-2)
		assert.InDelta(t, fd.Z, d.Z, 1e-2)
	}
}
