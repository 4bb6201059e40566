package core

import "cogentcore.org/core/math32"

// LinearSpace3 is a 3x3 linear map stored as its three column vectors
type LinearSpace3 struct {
	VX math32.Vector3
	VY math32.Vector3
	VZ math32.Vector3
}

// NewLinearSpace3 creates a linear map from its column vectors
func NewLinearSpace3(vx, vy, vz math32.Vector3) LinearSpace3 {
	return LinearSpace3{VX: vx, VY: vy, VZ: vz}
}

// IdentityLinearSpace3 returns the identity map
func IdentityLinearSpace3() LinearSpace3 {
	return LinearSpace3{
		VX: math32.Vec3(1, 0, 0),
		VY: math32.Vec3(0, 1, 0),
		VZ: math32.Vec3(0, 0, 1),
	}
}

// MulVector3 applies the map to v as a linear combination of the columns
func (l LinearSpace3) MulVector3(v math32.Vector3) math32.Vector3 {
	return l.VX.MulScalar(v.X).Add(l.VY.MulScalar(v.Y)).Add(l.VZ.MulScalar(v.Z))
}

// Transposed returns the transpose of the map
func (l LinearSpace3) Transposed() LinearSpace3 {
	return LinearSpace3{
		VX: math32.Vec3(l.VX.X, l.VY.X, l.VZ.X),
		VY: math32.Vec3(l.VX.Y, l.VY.Y, l.VZ.Y),
		VZ: math32.Vec3(l.VX.Z, l.VY.Z, l.VZ.Z),
	}
}

// Scaled returns the map with every column multiplied by s
func (l LinearSpace3) Scaled(s float32) LinearSpace3 {
	return LinearSpace3{
		VX: l.VX.MulScalar(s),
		VY: l.VY.MulScalar(s),
		VZ: l.VZ.MulScalar(s),
	}
}

// AffineSpace3 is a linear map plus a translation
type AffineSpace3 struct {
	L LinearSpace3
	P math32.Vector3
}

// NewAffineSpace3 creates an affine map from a linear part and translation
func NewAffineSpace3(l LinearSpace3, p math32.Vector3) AffineSpace3 {
	return AffineSpace3{L: l, P: p}
}

// IdentityAffineSpace3 returns the identity transform
func IdentityAffineSpace3() AffineSpace3 {
	return AffineSpace3{L: IdentityLinearSpace3()}
}

// TransformPoint applies the full affine map to a point
func (a AffineSpace3) TransformPoint(p math32.Vector3) math32.Vector3 {
	return a.L.MulVector3(p).Add(a.P)
}

// TransformVector applies only the linear part to a direction
func (a AffineSpace3) TransformVector(v math32.Vector3) math32.Vector3 {
	return a.L.MulVector3(v)
}

// Frame builds a deterministic orthonormal basis whose third column is z.
// The same z always yields the same frame, so oriented-bound caches keyed on
// the frame stay stable within a run. z must be normalized.
func Frame(z math32.Vector3) LinearSpace3 {
	dx0 := math32.Vec3(0, z.Z, -z.Y)
	dx1 := math32.Vec3(-z.Z, 0, z.X)
	dx := dx0
	if dx1.LengthSquared() > dx0.LengthSquared() {
		dx = dx1
	}
	dx = dx.Normal()
	dy := z.Cross(dx).Normal()
	return LinearSpace3{VX: dx, VY: dy, VZ: z}
}
