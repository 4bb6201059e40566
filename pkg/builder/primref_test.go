package builder

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/galaxysailing/embree/pkg/core"
)

func unitBoxAt(x float32) math32.Box3 {
	return math32.B3(x, 0, 0, x+1, 1, 1)
}

func TestPrimRef(t *testing.T) {
	p := NewPrimRef(unitBoxAt(2), 7, 42)
	assert.Equal(t, uint32(7), p.GeomID)
	assert.Equal(t, uint32(42), p.PrimID)
	assert.Equal(t, unitBoxAt(2), p.Bounds())
	assert.Equal(t, math32.Vec3(5, 1, 1), p.Center2())
}

func TestPrimInfo_AddCenter2(t *testing.T) {
	pinfo := EmptyPrimInfo()
	pinfo.AddCenter2(NewPrimRef(unitBoxAt(0), 0, 0))
	pinfo.AddCenter2(NewPrimRef(unitBoxAt(3), 0, 1))

	assert.Equal(t, 2, pinfo.Num)
	assert.Equal(t, math32.B3(0, 0, 0, 4, 1, 1), pinfo.GeomBounds)
	assert.Equal(t, math32.B3(1, 1, 1, 7, 1, 1), pinfo.CentBounds)
	assert.Greater(t, pinfo.HalfArea(), float32(0))
}

func TestPrimInfo_MergeMatchesSequentialFold(t *testing.T) {
	refs := make([]PrimRef, 10)
	for i := range refs {
		refs[i] = NewPrimRef(unitBoxAt(float32(i)), 0, uint32(i))
	}

	sequential := EmptyPrimInfo()
	for _, r := range refs {
		sequential.AddCenter2(r)
	}

	// any split point must merge to the same aggregate
	for split := 0; split <= len(refs); split++ {
		left := EmptyPrimInfo()
		for _, r := range refs[:split] {
			left.AddCenter2(r)
		}
		right := EmptyPrimInfo()
		for _, r := range refs[split:] {
			right.AddCenter2(r)
		}
		left.Merge(right)
		if diff := cmp.Diff(sequential, left); diff != "" {
			t.Fatalf("split at %d diverges (-want +got):\n%s", split, diff)
		}
	}
}

func TestPrimInfoMB_Aggregation(t *testing.T) {
	lb := core.NewLBBox3(unitBoxAt(0), unitBoxAt(4))
	pinfo := EmptyPrimInfoMB()
	pinfo.AddPrimRef(NewPrimRefMB(lb, 2, 3, 0, 0))
	pinfo.AddPrimRef(NewPrimRefMB(lb, 1, 5, 0, 1))

	assert.Equal(t, 2, pinfo.Num)
	assert.Equal(t, uint32(3), pinfo.NumTimeSegments)
	assert.Equal(t, uint32(5), pinfo.MaxNumTimeSegments)

	other := EmptyPrimInfoMB()
	other.AddPrimRef(NewPrimRefMB(lb, 4, 7, 0, 2))
	pinfo.Merge(other)
	assert.Equal(t, 3, pinfo.Num)
	assert.Equal(t, uint32(7), pinfo.NumTimeSegments)
	assert.Equal(t, uint32(7), pinfo.MaxNumTimeSegments)
}

func TestPrimRefMB_Center2(t *testing.T) {
	p := NewPrimRefMB(core.NewLBBox3(unitBoxAt(0), unitBoxAt(2)), 1, 1, 0, 0)
	// box at the middle of the range is [1,2], center2 = (3,1,1)
	assert.Equal(t, math32.Vec3(3, 1, 1), p.Center2())
}

// stubSource emits one unit box per primitive, skipping every primID
// divisible by skip, mirroring how geometries filter invalid curves
type stubSource struct {
	n    int
	skip int
}

func (s stubSource) NumPrimitives() int { return s.n }

func (s stubSource) CreatePrimRefArray(prims []PrimRef, begin, end, k int) PrimInfo {
	pinfo := EmptyPrimInfo()
	for j := begin; j < end; j++ {
		if s.skip > 0 && j%s.skip == 0 {
			continue
		}
		prim := NewPrimRef(unitBoxAt(float32(j)), 1, uint32(j))
		pinfo.AddCenter2(prim)
		prims[k] = prim
		k++
	}
	return pinfo
}

func (s stubSource) CreatePrimRefMBArray(prims []PrimRefMB, t0t1 core.BBox1, begin, end, k int) PrimInfoMB {
	pinfo := EmptyPrimInfoMB()
	for j := begin; j < end; j++ {
		if s.skip > 0 && j%s.skip == 0 {
			continue
		}
		prim := NewPrimRefMB(core.NewLBBox3(unitBoxAt(float32(j)), unitBoxAt(float32(j+1))), 2, 2, 1, uint32(j))
		pinfo.AddPrimRef(prim)
		prims[k] = prim
		k++
	}
	return pinfo
}

func TestCreatePrimRefArrayParallel_EqualsSerial(t *testing.T) {
	src := stubSource{n: 1000, skip: 7}

	serialPrims := make([]PrimRef, src.n)
	serial := src.CreatePrimRefArray(serialPrims, 0, src.n, 0)

	for _, grain := range []int{1, 16, 100, 999, 5000} {
		parallelPrims := make([]PrimRef, src.n)
		parallel := CreatePrimRefArrayParallel(src, parallelPrims, grain)

		if diff := cmp.Diff(serial, parallel); diff != "" {
			t.Fatalf("grain %d aggregate diverges (-serial +parallel):\n%s", grain, diff)
		}
		if diff := cmp.Diff(serialPrims[:serial.Num], parallelPrims[:parallel.Num]); diff != "" {
			t.Fatalf("grain %d records diverge (-serial +parallel):\n%s", grain, diff)
		}
	}
}

func TestCreatePrimRefMBArrayParallel_EqualsSerial(t *testing.T) {
	src := stubSource{n: 500, skip: 3}
	t0t1 := core.NewBBox1(0, 1)

	serialPrims := make([]PrimRefMB, src.n)
	serial := src.CreatePrimRefMBArray(serialPrims, t0t1, 0, src.n, 0)

	parallelPrims := make([]PrimRefMB, src.n)
	parallel := CreatePrimRefMBArrayParallel(src, parallelPrims, t0t1, 64)

	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Fatalf("aggregate diverges (-serial +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(serialPrims[:serial.Num], parallelPrims[:parallel.Num]); diff != "" {
		t.Fatalf("records diverge (-serial +parallel):\n%s", diff)
	}
}

func TestCreatePrimRefArrayParallel_NoSkips(t *testing.T) {
	src := stubSource{n: 100}
	prims := make([]PrimRef, src.n)
	pinfo := CreatePrimRefArrayParallel(src, prims, 9)
	assert.Equal(t, 100, pinfo.Num)
	for i, p := range prims {
		assert.Equal(t, uint32(i), p.PrimID)
	}
}
