package core

import (
	"math"
	"testing"
)

func TestTimeSegment(t *testing.T) {
	tests := []struct {
		name        string
		time        float32
		numSegments float32
		wantITime   int
		wantFTime   float32
	}{
		{"start", 0, 3, 0, 0},
		{"inside first", 0.1, 3, 0, 0.3},
		{"segment boundary", 1.0 / 3.0, 3, 1, 0},
		{"inside last", 0.9, 3, 2, 0.7},
		{"end clamps to last segment", 1, 3, 2, 1},
		{"below range clamps", -0.5, 3, 0, -1.5},
		{"single segment", 0.5, 1, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itime, ftime := TimeSegment(tt.time, tt.numSegments)
			if itime != tt.wantITime {
				t.Errorf("expected itime=%d, got %d", tt.wantITime, itime)
			}
			if math.Abs(float64(ftime-tt.wantFTime)) > 1e-5 {
				t.Errorf("expected ftime=%v, got %v", tt.wantFTime, ftime)
			}
		})
	}
}

func TestTimeSegmentRange(t *testing.T) {
	tests := []struct {
		name        string
		timeRange   BBox1
		numSegments float32
		wantLo      int
		wantHi      int
	}{
		{"full range one segment", NewBBox1(0, 1), 1, 0, 1},
		{"full range three segments", NewBBox1(0, 1), 3, 0, 3},
		{"fractional snaps outward", NewBBox1(0.4, 0.6), 3, 1, 2},
		{"clamps below", NewBBox1(-1, 0.5), 2, 0, 1},
		{"clamps above", NewBBox1(0.5, 2), 2, 1, 2},
		{"point range on step", NewBBox1(0, 0), 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := TimeSegmentRange(tt.timeRange, tt.numSegments)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("expected [%d,%d], got [%d,%d]", tt.wantLo, tt.wantHi, lo, hi)
			}
		})
	}
}

func TestTimeSegmentRange_MidpointTruncates(t *testing.T) {
	// the motion-blur aligned frame picks step (lo+hi)/2 with truncation
	lo, hi := TimeSegmentRange(NewBBox1(0, 1), 3)
	if (lo+hi)/2 != 1 {
		t.Errorf("expected truncated midpoint 1, got %d", (lo+hi)/2)
	}
}
