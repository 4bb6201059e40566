package core

import fmath "github.com/chewxy/math32"

// BBox1 is a closed 1-D range, used for normalized time intervals
type BBox1 struct {
	Lower float32
	Upper float32
}

// NewBBox1 creates a range from lower and upper bounds
func NewBBox1(lower, upper float32) BBox1 {
	return BBox1{Lower: lower, Upper: upper}
}

// Size returns the extent of the range
func (b BBox1) Size() float32 { return b.Upper - b.Lower }

// Empty reports whether the range contains no points
func (b BBox1) Empty() bool { return b.Upper < b.Lower }

// Lerp maps t in [0,1] to the corresponding point inside the range
func (b BBox1) Lerp(t float32) float32 {
	return b.Lower + t*(b.Upper-b.Lower)
}

// Intersect returns the overlap of the two ranges
func (b BBox1) Intersect(other BBox1) BBox1 {
	return BBox1{
		Lower: fmath.Max(b.Lower, other.Lower),
		Upper: fmath.Min(b.Upper, other.Upper),
	}
}

// Contains reports whether t lies inside the range
func (b BBox1) Contains(t float32) bool {
	return t >= b.Lower && t <= b.Upper
}
