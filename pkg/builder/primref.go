// Package builder holds the primitive records and aggregates consumed by a
// bounding-volume-hierarchy builder, and helpers to generate them from
// geometries in parallel.
package builder

import (
	"cogentcore.org/core/math32"

	"github.com/galaxysailing/embree/pkg/core"
)

// PrimRef is one buildable primitive: its bounding box plus the geometry
// and primitive identifiers naming where it came from
type PrimRef struct {
	Lower  math32.Vector3
	Upper  math32.Vector3
	GeomID uint32
	PrimID uint32
}

// NewPrimRef creates a primitive reference from bounds and identifiers
func NewPrimRef(bounds math32.Box3, geomID, primID uint32) PrimRef {
	return PrimRef{Lower: bounds.Min, Upper: bounds.Max, GeomID: geomID, PrimID: primID}
}

// Bounds returns the bounding box of the primitive
func (p PrimRef) Bounds() math32.Box3 {
	return math32.Box3{Min: p.Lower, Max: p.Upper}
}

// Center2 returns twice the box center, avoiding the halving in hot
// binning loops
func (p PrimRef) Center2() math32.Vector3 {
	return p.Lower.Add(p.Upper)
}

// PrimInfo aggregates the geometry and center bounds of a set of
// primitive references
type PrimInfo struct {
	Num        int
	GeomBounds math32.Box3
	CentBounds math32.Box3
}

// EmptyPrimInfo returns the aggregate of zero primitives
func EmptyPrimInfo() PrimInfo {
	return PrimInfo{GeomBounds: math32.B3Empty(), CentBounds: math32.B3Empty()}
}

// AddCenter2 folds one primitive into the aggregate
func (pi *PrimInfo) AddCenter2(p PrimRef) {
	pi.Num++
	pi.GeomBounds.ExpandByBox(p.Bounds())
	pi.CentBounds.ExpandByPoint(p.Center2())
}

// Merge folds another aggregate into this one; the operation is associative.
// Empty bounds are skipped so that merging a zero-survivor aggregate does
// not poison the result through its inverted infinite corners.
func (pi *PrimInfo) Merge(other PrimInfo) {
	pi.Num += other.Num
	if !other.GeomBounds.IsEmpty() {
		pi.GeomBounds.ExpandByBox(other.GeomBounds)
	}
	if !other.CentBounds.IsEmpty() {
		pi.CentBounds.ExpandByBox(other.CentBounds)
	}
}

// HalfArea returns half the surface area of the geometry bounds, the
// quantity surface-area-heuristic builders compare
func (pi PrimInfo) HalfArea() float32 {
	if pi.GeomBounds.IsEmpty() {
		return 0
	}
	size := pi.GeomBounds.Size()
	return size.X*size.Y + size.Y*size.Z + size.Z*size.X
}

// PrimRefMB is one buildable motion primitive: linear bounds over its
// active time segments plus identifiers
type PrimRefMB struct {
	LBounds            core.LBBox3
	ActiveTimeSegments uint32
	TotalTimeSegments  uint32
	GeomID             uint32
	PrimID             uint32
}

// NewPrimRefMB creates a motion primitive reference
func NewPrimRefMB(lbounds core.LBBox3, activeSegments, totalSegments, geomID, primID uint32) PrimRefMB {
	return PrimRefMB{
		LBounds:            lbounds,
		ActiveTimeSegments: activeSegments,
		TotalTimeSegments:  totalSegments,
		GeomID:             geomID,
		PrimID:             primID,
	}
}

// Bounds returns the merged box over the whole time range
func (p PrimRefMB) Bounds() math32.Box3 {
	return p.LBounds.Bounds()
}

// Center2 returns twice the center of the box at the middle of the time
// range
func (p PrimRefMB) Center2() math32.Vector3 {
	mid := p.LBounds.Interpolate(0.5)
	return mid.Min.Add(mid.Max)
}

// PrimInfoMB aggregates motion primitive references
type PrimInfoMB struct {
	Num                int
	GeomBounds         core.LBBox3
	CentBounds         math32.Box3
	NumTimeSegments    uint32
	MaxNumTimeSegments uint32
}

// EmptyPrimInfoMB returns the aggregate of zero motion primitives
func EmptyPrimInfoMB() PrimInfoMB {
	return PrimInfoMB{GeomBounds: core.EmptyLBBox3(), CentBounds: math32.B3Empty()}
}

// AddPrimRef folds one motion primitive into the aggregate
func (pi *PrimInfoMB) AddPrimRef(p PrimRefMB) {
	pi.Num++
	pi.GeomBounds = pi.GeomBounds.Extend(p.LBounds)
	pi.CentBounds.ExpandByPoint(p.Center2())
	pi.NumTimeSegments += p.ActiveTimeSegments
	if p.TotalTimeSegments > pi.MaxNumTimeSegments {
		pi.MaxNumTimeSegments = p.TotalTimeSegments
	}
}

// Merge folds another aggregate into this one; the operation is associative
func (pi *PrimInfoMB) Merge(other PrimInfoMB) {
	pi.Num += other.Num
	pi.GeomBounds = pi.GeomBounds.Extend(other.GeomBounds)
	if !other.CentBounds.IsEmpty() {
		pi.CentBounds.ExpandByBox(other.CentBounds)
	}
	pi.NumTimeSegments += other.NumTimeSegments
	if other.MaxNumTimeSegments > pi.MaxNumTimeSegments {
		pi.MaxNumTimeSegments = other.MaxNumTimeSegments
	}
}
