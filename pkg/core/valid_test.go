package core

import (
	"math"
	"testing"

	"cogentcore.org/core/math32"
)

func TestIsValid(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	for _, x := range []float32{0, 1, -1, 1e17, -1e17} {
		if !IsValid(x) {
			t.Errorf("expected %v to be valid", x)
		}
	}
	for _, x := range []float32{nan, inf, -inf, 2e18, -2e18} {
		if IsValid(x) {
			t.Errorf("expected %v to be invalid", x)
		}
	}
}

func TestIsValidVectors(t *testing.T) {
	nan := float32(math.NaN())
	if !IsValidVector3(math32.Vec3(1, 2, 3)) {
		t.Error("finite vector3 reported invalid")
	}
	if IsValidVector3(math32.Vec3(1, nan, 3)) {
		t.Error("NaN lane not caught in vector3")
	}
	if !IsValidVector4(math32.Vec4(1, 2, 3, 0)) {
		t.Error("finite vector4 reported invalid")
	}
	// the radius lane participates in validity
	if IsValidVector4(math32.Vec4(1, 2, 3, nan)) {
		t.Error("NaN radius not caught in vector4")
	}
}
