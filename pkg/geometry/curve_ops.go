package geometry

import (
	"cogentcore.org/core/math32"

	"github.com/galaxysailing/embree/pkg/builder"
	"github.com/galaxysailing/embree/pkg/core"
)

// curveBounds dispatches on subtype: the flat intersector tests against a
// polyline, so its box mirrors that polyline; the round intersector needs
// the true swept-sphere envelope.
func (g *Curves) curveBounds(c BezierCurve) math32.Box3 {
	if g.subtype == SubtypeFlat {
		return c.TessellatedBounds(g.tessellationRate)
	}
	return c.AccurateBounds()
}

// Bounds returns the bounding box of curve i at a time step
func (g *Curves) Bounds(i, itime int) math32.Box3 {
	return g.curveBounds(g.GetCurve(i, itime))
}

// BoundsTransformed returns the bounding box of curve i with every control
// position mapped through an affine space; radii are preserved unchanged
func (g *Curves) BoundsTransformed(space *core.AffineSpace3, i, itime int) math32.Box3 {
	index := int(g.Curve(i))
	var c BezierCurve
	c.V0 = xfmVertex(space, g.VertexAt(index+0, itime))
	c.V1 = xfmVertex(space, g.VertexAt(index+1, itime))
	c.V2 = xfmVertex(space, g.VertexAt(index+2, itime))
	c.V3 = xfmVertex(space, g.VertexAt(index+3, itime))
	return g.curveBounds(c)
}

func xfmVertex(space *core.AffineSpace3, v math32.Vector4) math32.Vector4 {
	p := space.TransformPoint(math32.Vec3(v.X, v.Y, v.Z))
	return math32.Vec4(p.X, p.Y, p.Z, v.W)
}

// BoundsNormalized returns the bounding box of curve i measured in a
// normalized frame: each control position is offset by -ofs, scaled, and
// mapped through a linear space; each radius is multiplied by rScale0*scale.
func (g *Curves) BoundsNormalized(ofs math32.Vector3, scale, rScale0 float32, space *core.LinearSpace3, i, itime int) math32.Box3 {
	rScale := rScale0 * scale
	index := int(g.Curve(i))
	var c BezierCurve
	c.V0 = xfmVertexNormalized(ofs, scale, rScale, space, g.VertexAt(index+0, itime))
	c.V1 = xfmVertexNormalized(ofs, scale, rScale, space, g.VertexAt(index+1, itime))
	c.V2 = xfmVertexNormalized(ofs, scale, rScale, space, g.VertexAt(index+2, itime))
	c.V3 = xfmVertexNormalized(ofs, scale, rScale, space, g.VertexAt(index+3, itime))
	return g.curveBounds(c)
}

func xfmVertexNormalized(ofs math32.Vector3, scale, rScale float32, space *core.LinearSpace3, v math32.Vector4) math32.Vector4 {
	p := space.MulVector3(math32.Vec3(v.X, v.Y, v.Z).Sub(ofs).MulScalar(scale))
	return math32.Vec4(p.X, p.Y, p.Z, v.W*rScale)
}

// LinearBounds returns the linearly interpolated box over time segment
// itime, from the boxes at steps itime and itime+1
func (g *Curves) LinearBounds(i, itime int) core.LBBox3 {
	return core.NewLBBox3(g.Bounds(i, itime), g.Bounds(i, itime+1))
}

// LinearBoundsTransformed is LinearBounds with transformed control points
func (g *Curves) LinearBoundsTransformed(space *core.AffineSpace3, i, itime int) core.LBBox3 {
	return core.NewLBBox3(g.BoundsTransformed(space, i, itime), g.BoundsTransformed(space, i, itime+1))
}

// LinearBoundsRange returns the linear bounds of curve i over a normalized
// time sub-range
func (g *Curves) LinearBoundsRange(i int, timeRange core.BBox1) core.LBBox3 {
	return core.LBBox3FromBoundsFunc(func(itime int) math32.Box3 {
		return g.Bounds(i, itime)
	}, timeRange, g.fnumTimeSegments())
}

// LinearBoundsRangeTransformed is LinearBoundsRange with transformed
// control points
func (g *Curves) LinearBoundsRangeTransformed(space *core.AffineSpace3, i int, timeRange core.BBox1) core.LBBox3 {
	return core.LBBox3FromBoundsFunc(func(itime int) math32.Box3 {
		return g.BoundsTransformed(space, i, itime)
	}, timeRange, g.fnumTimeSegments())
}

// LinearBoundsRangeNormalized is LinearBoundsRange measured in a normalized
// frame, as used by the builder
func (g *Curves) LinearBoundsRangeNormalized(ofs math32.Vector3, scale, rScale0 float32, space *core.LinearSpace3, i int, timeRange core.BBox1) core.LBBox3 {
	return core.LBBox3FromBoundsFunc(func(itime int) math32.Box3 {
		return g.BoundsNormalized(ofs, scale, rScale0, space, i, itime)
	}, timeRange, g.fnumTimeSegments())
}

// Valid reports whether curve i is usable at one time step: its index range
// fits, all four radii are finite and non-negative, and all four positions
// are finite
func (g *Curves) Valid(i, itime int) bool {
	return g.ValidRange(i, itime, itime)
}

// ValidRange reports whether curve i is valid at every integer time step in
// [t0, t1], both ends inclusive
func (g *Curves) ValidRange(i, t0, t1 int) bool {
	index := int(g.Curve(i))
	if index+3 >= g.NumNativeVertices() {
		return false
	}
	for itime := t0; itime <= t1; itime++ {
		for k := 0; k < 4; k++ {
			v := g.VertexAt(index+k, itime)
			if !core.IsValidVector4(v) || v.W < 0 {
				return false
			}
		}
	}
	return true
}

// BuildBounds reports whether curve i may enter a static build, and if so
// returns its time-step-0 bounds. All positions and radii must be finite at
// every time step. Negative radii are deliberately tolerated here: a
// degenerate-radius curve still contributes an envelope for build purposes.
func (g *Curves) BuildBounds(i int) (math32.Box3, bool) {
	index := int(g.Curve(i))
	if index+3 >= g.NumNativeVertices() {
		return math32.Box3{}, false
	}
	for t := 0; t < g.numTimeSteps; t++ {
		for k := 0; k < 4; k++ {
			if !core.IsValidVector4(g.VertexAt(index+k, t)) {
				return math32.Box3{}, false
			}
		}
	}
	return g.Bounds(i, 0), true
}

// BuildPrim returns a representative static segment for time segment itime
// of a motion curve: the per-control-point midpoint of steps itime and
// itime+1. It fails if any of the eight source vertices is non-finite or if
// any radius at either step is negative.
func (g *Curves) BuildPrim(i, itime int) (c0, c1, c2, c3 math32.Vector4, ok bool) {
	index := int(g.Curve(i))
	if index+3 >= g.NumNativeVertices() {
		return c0, c1, c2, c3, false
	}
	var a, b [4]math32.Vector4
	for k := 0; k < 4; k++ {
		a[k] = g.VertexAt(index+k, itime)
		b[k] = g.VertexAt(index+k, itime+1)
		if !core.IsValidVector4(a[k]) || !core.IsValidVector4(b[k]) {
			return c0, c1, c2, c3, false
		}
		if a[k].W < 0 || b[k].W < 0 {
			return c0, c1, c2, c3, false
		}
	}
	c0 = a[0].Add(b[0]).MulScalar(0.5)
	c1 = a[1].Add(b[1]).MulScalar(0.5)
	c2 = a[2].Add(b[2]).MulScalar(0.5)
	c3 = a[3].Add(b[3]).MulScalar(0.5)
	return c0, c1, c2, c3, true
}

// BuildLinearBounds returns the linear bounds of curve i over a time
// sub-range, or false if the curve is invalid at any time step covering
// that range
func (g *Curves) BuildLinearBounds(i int, timeRange core.BBox1) (core.LBBox3, bool) {
	lo, hi := core.TimeSegmentRange(timeRange, g.fnumTimeSegments())
	if !g.ValidRange(i, lo, hi) {
		return core.LBBox3{}, false
	}
	return g.LinearBoundsRange(i, timeRange), true
}

// ComputeAlignedSpace returns an orthonormal basis oriented along curve i
// at time step 0, used to build tight oriented bounding boxes
func (g *Curves) ComputeAlignedSpace(i int) core.LinearSpace3 {
	axisz := math32.Vec3(0, 0, 1)
	axisy := math32.Vec3(0, 1, 0)

	c := g.GetCurve(i, 0)
	p0 := c.Begin()
	p3 := c.End()
	d0 := c.EvalDu(0)
	span := math32.Vec3(p3.X-p0.X, p3.Y-p0.Y, p3.Z-p0.Z)
	if span.LengthSquared() > 1e-18 {
		axisz = span.Normal()
		axisy = axisz.Cross(math32.Vec3(d0.X, d0.Y, d0.Z))
	}
	if axisy.LengthSquared() > 1e-18 {
		axisy = axisy.Normal()
		axisx := axisy.Cross(axisz).Normal()
		return core.NewLinearSpace3(axisx, axisy, axisz)
	}
	return core.Frame(axisz)
}

// ComputeAlignedSpaceMB returns an orthonormal basis for a motion curve,
// built from the curve spine at the middle time step of the segment range
// covering timeRange. The midpoint truncates: step (lo+hi)/2.
func (g *Curves) ComputeAlignedSpaceMB(i int, timeRange core.BBox1) core.LinearSpace3 {
	axis := math32.Vec3(0, 0, 1)

	lo, hi := core.TimeSegmentRange(timeRange, g.fnumTimeSegments())
	if hi <= lo {
		return core.Frame(axis)
	}
	t := (lo + hi) / 2
	c := g.GetCurve(i, t)
	p0 := c.Begin()
	p3 := c.End()
	span := math32.Vec3(p3.X-p0.X, p3.Y-p0.Y, p3.Z-p0.Z)
	if span.LengthSquared() > 1e-18 {
		axis = span.Normal()
	}
	return core.Frame(axis)
}

// ComputeDirection returns the unnormalized end-minus-start vector of curve
// i at time step 0. Near-zero directions are the caller's concern.
func (g *Curves) ComputeDirection(i int) math32.Vector3 {
	return g.ComputeDirectionAtTime(i, 0)
}

// ComputeDirectionAtTime is ComputeDirection at an explicit time step
func (g *Curves) ComputeDirectionAtTime(i, itime int) math32.Vector3 {
	c := g.GetCurve(i, itime)
	p0 := c.Begin()
	p3 := c.End()
	return math32.Vec3(p3.X-p0.X, p3.Y-p0.Y, p3.Z-p0.Z)
}

// CreatePrimRefArray fills prims with one reference per buildable curve in
// [begin, end), starting at output offset k, and returns the aggregate over
// the survivors. Invalid curves are skipped and k advances only for
// survivors; entries past the final offset are untouched.
func (g *Curves) CreatePrimRefArray(prims []builder.PrimRef, begin, end, k int) builder.PrimInfo {
	pinfo := builder.EmptyPrimInfo()
	for j := begin; j < end; j++ {
		bounds, ok := g.BuildBounds(j)
		if !ok {
			continue
		}
		prim := builder.NewPrimRef(bounds, g.geomID, uint32(j))
		pinfo.AddCenter2(prim)
		prims[k] = prim
		k++
	}
	return pinfo
}

// CreatePrimRefMBArray is the motion-blur flavor of CreatePrimRefArray: the
// filter is validity over the time range, each record carries the linear
// bounds and covers the whole motion range of the geometry.
func (g *Curves) CreatePrimRefMBArray(prims []builder.PrimRefMB, t0t1 core.BBox1, begin, end, k int) builder.PrimInfoMB {
	pinfo := builder.EmptyPrimInfoMB()
	numSegments := uint32(g.NumTimeSegments())
	for j := begin; j < end; j++ {
		lbounds, ok := g.BuildLinearBounds(j, t0t1)
		if !ok {
			continue
		}
		prim := builder.NewPrimRefMB(lbounds, numSegments, numSegments, g.geomID, uint32(j))
		pinfo.AddPrimRef(prim)
		prims[k] = prim
		k++
	}
	return pinfo
}
