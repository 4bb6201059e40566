package core

import "cogentcore.org/core/math32"

// FloatLarge is the magnitude ceiling for finite geometric quantities.
// Values at or beyond it (including NaN and infinities, which fail both
// comparisons) are treated as invalid.
const FloatLarge = 1.844e18

// IsValid reports whether x is a finite value usable in bounds math
func IsValid(x float32) bool {
	return x > -FloatLarge && x < FloatLarge
}

// IsValidVector3 reports whether all three components are valid
func IsValidVector3(v math32.Vector3) bool {
	return IsValid(v.X) && IsValid(v.Y) && IsValid(v.Z)
}

// IsValidVector4 reports whether all four components are valid
func IsValidVector4(v math32.Vector4) bool {
	return IsValid(v.X) && IsValid(v.Y) && IsValid(v.Z) && IsValid(v.W)
}
