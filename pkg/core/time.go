package core

import fmath "github.com/chewxy/math32"

// TimeSegment maps a global time in [0,1] to the integer time segment
// containing it and the local fraction within that segment.
// numTimeSegments is the float segment count T-1, and must be >= 1.
func TimeSegment(time, numTimeSegments float32) (itime int, ftime float32) {
	scaled := time * numTimeSegments
	f := fmath.Floor(scaled)
	if f < 0 {
		f = 0
	} else if f > numTimeSegments-1 {
		f = numTimeSegments - 1
	}
	return int(f), scaled - f
}

// TimeSegmentRange maps a normalized time range to the inclusive range of
// integer time steps touched by it: the floor of the scaled lower end
// clamped at 0, and the ceil of the scaled upper end clamped at the segment
// count. The covered segment range is [lo, hi-1]; it is empty iff hi <= lo.
func TimeSegmentRange(timeRange BBox1, numTimeSegments float32) (lo, hi int) {
	scaled0 := fmath.Max(fmath.Floor(timeRange.Lower*numTimeSegments), 0)
	scaled1 := fmath.Min(fmath.Ceil(timeRange.Upper*numTimeSegments), numTimeSegments)
	return int(scaled0), int(scaled1)
}
