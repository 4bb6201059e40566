package geometry

import (
	"cogentcore.org/core/math32"

	"github.com/galaxysailing/embree/pkg/core"
)

// CurveBasis is the polynomial family used to interpret user control points
type CurveBasis int

const (
	BasisLinear CurveBasis = iota
	BasisBezier
	BasisBSpline
)

func (b CurveBasis) String() string {
	switch b {
	case BasisLinear:
		return "linear"
	case BasisBezier:
		return "bezier"
	case BasisBSpline:
		return "bspline"
	default:
		return "invalid basis"
	}
}

// CurveSubtype is the rendering model of a curve
type CurveSubtype int

const (
	SubtypeRound CurveSubtype = iota // swept sphere
	SubtypeFlat                      // ribbon / polyline
)

func (s CurveSubtype) String() string {
	if s == SubtypeRound {
		return "round"
	}
	return "flat"
}

// invalidCurveIndex marks a native curve whose user index range does not
// fit the vertex array; the validity predicates filter it.
const invalidCurveIndex = 0xFFFFFFF0

// defaultTessellationRate is the initial polyline rate for flat curves
const defaultTessellationRate = 4

// Curves is an array of cubic curves over shared vertex arrays, one curve
// per start-vertex index. Users supply control points in the basis the
// container was created with; after commit the native view serves them in
// Bezier form regardless of the input basis.
//
// While the geometry is modified, buffers may be bound and mutated. After a
// successful commit all read operations are safe to call concurrently; the
// host scene must put a barrier between mutation and the read phase.
type Curves struct {
	device  *core.Device
	basis   CurveBasis
	subtype CurveSubtype
	geomID  uint32
	enabled bool
	mask    uint32
	state   core.GeometryState

	numTimeSteps     int
	tessellationRate int

	curves        core.ViewUint32   // user curve start indices
	vertices      []core.ViewVector4 // user vertex array per time step
	flags         core.ViewBytes    // optional start/end flag per curve
	vertexAttribs []core.ViewBytes  // opaque user attribute buffers

	// native view, valid while committed; nil slices mean the user views
	// are aliased directly (Bezier basis)
	nativeCurves    []uint32
	nativeVertices  [][]math32.Vector4
	nativeVertices0 []math32.Vector4
}

var _ core.Geometry = (*Curves)(nil)

func newCurves(device *core.Device, basis CurveBasis, subtype CurveSubtype) *Curves {
	g := &Curves{
		device:           device,
		basis:            basis,
		subtype:          subtype,
		geomID:           device.NextGeomID(),
		enabled:          true,
		mask:             ^uint32(0),
		state:            core.StateModified,
		numTimeSteps:     1,
		tessellationRate: defaultTessellationRate,
		vertices:         make([]core.ViewVector4, 1),
	}
	device.Logf(1, "created %s curves geometry %d (%s)", basis, g.geomID, subtype)
	return g
}

// NewBezierCurves creates a curve set interpreting user vertices as cubic
// Bezier control points
func NewBezierCurves(device *core.Device, subtype CurveSubtype) *Curves {
	return newCurves(device, BasisBezier, subtype)
}

// NewBSplineCurves creates a curve set interpreting user vertices as uniform
// cubic B-spline control points
func NewBSplineCurves(device *core.Device, subtype CurveSubtype) *Curves {
	return newCurves(device, BasisBSpline, subtype)
}

// Type returns the geometry kind
func (g *Curves) Type() core.GeometryType { return core.GeometryTypeCurves }

// Basis returns the polynomial basis of the user-supplied control points
func (g *Curves) Basis() CurveBasis { return g.basis }

// Subtype returns the rendering model
func (g *Curves) Subtype() CurveSubtype { return g.subtype }

// GeomID returns the geometry identifier recorded in primitive references
func (g *Curves) GeomID() uint32 { return g.geomID }

// SetGeomID overrides the geometry identifier
func (g *Curves) SetGeomID(id uint32) { g.geomID = id }

// State returns the lifecycle state
func (g *Curves) State() core.GeometryState { return g.state }

// Enable includes the geometry in builds
func (g *Curves) Enable() { g.enabled = true }

// Disable excludes the geometry from builds
func (g *Curves) Disable() { g.enabled = false }

// IsEnabled reports whether the geometry participates in builds
func (g *Curves) IsEnabled() bool { return g.enabled }

// SetMask sets the opaque 32-bit ray mask
func (g *Curves) SetMask(mask uint32) { g.mask = mask }

// Mask returns the ray mask
func (g *Curves) Mask() uint32 { return g.mask }

// TessellationRate returns the polyline rate used for flat-curve bounds
func (g *Curves) TessellationRate() int { return g.tessellationRate }

// SetTessellationRate sets the polyline rate; it is ignored for the round
// subtype. Rates below 1 are rejected.
func (g *Curves) SetTessellationRate(rate int) error {
	if rate < 1 {
		return g.device.ReportError(core.ErrorInvalidArgument, "tessellation rate %d < 1", rate)
	}
	g.tessellationRate = rate
	g.markModified()
	return nil
}

// NumPrimitives returns the number of curves M
func (g *Curves) NumPrimitives() int { return g.curves.Len() }

// NumTimeSteps returns the number of vertex arrays T
func (g *Curves) NumTimeSteps() int { return g.numTimeSteps }

// NumTimeSegments returns the number of motion segments T-1
func (g *Curves) NumTimeSegments() int { return g.numTimeSteps - 1 }

func (g *Curves) fnumTimeSegments() float32 { return float32(g.numTimeSteps - 1) }

// NumVertices returns the user vertex count V
func (g *Curves) NumVertices() int { return g.vertices[0].Len() }

// NumNativeVertices returns the native vertex count V'
func (g *Curves) NumNativeVertices() int {
	if g.nativeVertices != nil {
		return len(g.nativeVertices[0])
	}
	return g.vertices[0].Len()
}

// SetNumTimeSteps resizes the set of vertex buffer slots; existing bindings
// in the common prefix are preserved
func (g *Curves) SetNumTimeSteps(n int) error {
	if n < 1 {
		return g.device.ReportError(core.ErrorInvalidArgument, "number of time steps %d < 1", n)
	}
	views := make([]core.ViewVector4, n)
	copy(views, g.vertices)
	g.vertices = views
	g.numTimeSteps = n
	g.markModified()
	return nil
}

// SetVertexAttributeCount resizes the set of user attribute slots
func (g *Curves) SetVertexAttributeCount(n int) error {
	if n < 0 {
		return g.device.ReportError(core.ErrorInvalidArgument, "vertex attribute count %d < 0", n)
	}
	attribs := make([]core.ViewBytes, n)
	copy(attribs, g.vertexAttribs)
	g.vertexAttribs = attribs
	g.markModified()
	return nil
}

// SetBuffer binds a buffer region to the given type and slot. The index
// buffer must be FormatUint, vertex buffers FormatFloat4 with the slot
// naming the time step, the flags buffer FormatUchar, and attribute buffers
// may use any format. Bad type, slot or format combinations are reported
// through the device error channel and leave the geometry unchanged.
func (g *Curves) SetBuffer(btype core.BufferType, slot int, format core.Format, buf *core.Buffer, byteOffset, byteStride, count int) error {
	if buf == nil || buf.Device() != g.device {
		return g.device.ReportError(core.ErrorBufferGeometryMismatch, "buffer was not created from this geometry's device")
	}
	switch btype {
	case core.BufferTypeIndex:
		if slot != 0 {
			return g.device.ReportError(core.ErrorInvalidArgument, "index buffer slot %d not supported", slot)
		}
		if format != core.FormatUint {
			return g.device.ReportError(core.ErrorInvalidArgument, "index buffer requires uint format, got %s", format)
		}
		view, err := core.NewViewUint32(buf, byteOffset, byteStride, count)
		if err != nil {
			return g.device.ReportError(core.ErrorInvalidArgument, "index buffer region invalid: %v", err)
		}
		g.curves = view

	case core.BufferTypeVertex:
		if slot < 0 || slot >= g.numTimeSteps {
			return g.device.ReportError(core.ErrorInvalidArgument, "vertex buffer slot %d out of range [0,%d)", slot, g.numTimeSteps)
		}
		if format != core.FormatFloat4 {
			return g.device.ReportError(core.ErrorInvalidArgument, "vertex buffer requires float4 format, got %s", format)
		}
		view, err := core.NewViewVector4(buf, byteOffset, byteStride, count)
		if err != nil {
			return g.device.ReportError(core.ErrorInvalidArgument, "vertex buffer region invalid: %v", err)
		}
		g.vertices[slot] = view

	case core.BufferTypeFlags:
		if slot != 0 {
			return g.device.ReportError(core.ErrorInvalidArgument, "flags buffer slot %d not supported", slot)
		}
		if format != core.FormatUchar {
			return g.device.ReportError(core.ErrorInvalidArgument, "flags buffer requires uchar format, got %s", format)
		}
		view, err := core.NewViewBytes(buf, byteOffset, byteStride, count)
		if err != nil {
			return g.device.ReportError(core.ErrorInvalidArgument, "flags buffer region invalid: %v", err)
		}
		g.flags = view

	case core.BufferTypeVertexAttribute:
		if slot < 0 || slot >= len(g.vertexAttribs) {
			return g.device.ReportError(core.ErrorInvalidArgument, "vertex attribute slot %d out of range [0,%d)", slot, len(g.vertexAttribs))
		}
		view, err := core.NewViewBytes(buf, byteOffset, byteStride, count)
		if err != nil {
			return g.device.ReportError(core.ErrorInvalidArgument, "vertex attribute region invalid: %v", err)
		}
		g.vertexAttribs[slot] = view

	default:
		return g.device.ReportError(core.ErrorInvalidArgument, "unknown buffer type %d", btype)
	}
	g.markModified()
	return nil
}

// GetBuffer returns the raw backing storage of a bound buffer region
func (g *Curves) GetBuffer(btype core.BufferType, slot int) ([]byte, error) {
	switch btype {
	case core.BufferTypeIndex:
		if slot == 0 && !g.curves.IsNil() {
			return g.curves.Raw(), nil
		}
	case core.BufferTypeVertex:
		if slot >= 0 && slot < len(g.vertices) && !g.vertices[slot].IsNil() {
			return g.vertices[slot].Raw(), nil
		}
	case core.BufferTypeFlags:
		if slot == 0 && !g.flags.IsNil() {
			return g.flags.Raw(), nil
		}
	case core.BufferTypeVertexAttribute:
		if slot >= 0 && slot < len(g.vertexAttribs) && !g.vertexAttribs[slot].IsNil() {
			return g.vertexAttribs[slot].Raw(), nil
		}
	}
	return nil, g.device.ReportError(core.ErrorInvalidArgument, "no %s buffer bound at slot %d", btype, slot)
}

// UpdateBuffer marks a bound buffer dirty, returning the geometry to the
// modified state
func (g *Curves) UpdateBuffer(btype core.BufferType, slot int) error {
	if _, err := g.GetBuffer(btype, slot); err != nil {
		return err
	}
	g.markModified()
	return nil
}

// markModified invalidates the native view after any mutation
func (g *Curves) markModified() {
	g.state = core.StateModified
	g.nativeCurves = nil
	g.nativeVertices = nil
	g.nativeVertices0 = nil
}

// Verify checks the structural invariants of the user view: buffers bound,
// vertex arrays sharing one length across time steps, and every curve index
// range fitting the vertex count.
func (g *Curves) Verify() error {
	if g.curves.IsNil() {
		return g.device.ReportError(core.ErrorInvalidOperation, "geometry %d: no index buffer bound", g.geomID)
	}
	for t := 0; t < g.numTimeSteps; t++ {
		if g.vertices[t].IsNil() {
			return g.device.ReportError(core.ErrorInvalidOperation, "geometry %d: no vertex buffer bound at time step %d", g.geomID, t)
		}
		if g.vertices[t].Len() != g.vertices[0].Len() {
			return g.device.ReportError(core.ErrorInvalidOperation,
				"geometry %d: vertex buffer length %d at time step %d differs from %d", g.geomID, g.vertices[t].Len(), t, g.vertices[0].Len())
		}
	}
	numVertices := uint32(g.vertices[0].Len())
	for i := 0; i < g.curves.Len(); i++ {
		if g.curves.At(i)+3 >= numVertices {
			return g.device.ReportError(core.ErrorInvalidOperation,
				"geometry %d: curve %d starts at vertex %d, beyond %d vertices", g.geomID, i, g.curves.At(i), numVertices)
		}
	}
	return nil
}

// PreCommit validates the user view and derives the native (Bezier-form)
// view. Structural failures leave the geometry modified with no partial
// native data exposed; individual curves whose index range does not fit are
// marked with a sentinel index and filtered by the validity predicates
// rather than failing the whole commit.
func (g *Curves) PreCommit() error {
	if g.basis == BasisLinear {
		return g.device.ReportError(core.ErrorUnsupported, "geometry %d: linear curve basis cannot be committed", g.geomID)
	}
	if g.curves.IsNil() {
		return g.device.ReportError(core.ErrorInvalidOperation, "geometry %d: no index buffer bound", g.geomID)
	}
	numVertices := -1
	for t := 0; t < g.numTimeSteps; t++ {
		if g.vertices[t].IsNil() {
			return g.device.ReportError(core.ErrorInvalidOperation, "geometry %d: no vertex buffer bound at time step %d", g.geomID, t)
		}
		if numVertices < 0 {
			numVertices = g.vertices[t].Len()
		} else if g.vertices[t].Len() != numVertices {
			return g.device.ReportError(core.ErrorInvalidOperation,
				"geometry %d: vertex buffer length %d at time step %d differs from %d", g.geomID, g.vertices[t].Len(), t, numVertices)
		}
	}
	if numVertices == 0 {
		return g.device.ReportError(core.ErrorInvalidOperation, "geometry %d: empty vertex buffers", g.geomID)
	}

	switch g.basis {
	case BasisBezier:
		// native view aliases the user view, nothing to materialize
		g.nativeCurves = nil
		g.nativeVertices = nil
		g.nativeVertices0 = nil
	case BasisBSpline:
		g.commitBSpline(numVertices)
	}
	return nil
}

// commitBSpline materializes the Bezier form of every B-spline segment:
// four converted control points per curve per time step, with the native
// index pointing at them.
func (g *Curves) commitBSpline(numVertices int) {
	numCurves := g.curves.Len()
	nativeCurves := make([]uint32, numCurves)
	nativeVertices := make([][]math32.Vector4, g.numTimeSteps)
	for t := range nativeVertices {
		nativeVertices[t] = make([]math32.Vector4, 4*numCurves)
	}
	for i := 0; i < numCurves; i++ {
		index := g.curves.At(i)
		if index+3 >= uint32(numVertices) {
			nativeCurves[i] = invalidCurveIndex
			continue
		}
		nativeCurves[i] = uint32(4 * i)
		for t := 0; t < g.numTimeSteps; t++ {
			in := NewBSplineCurve(
				g.vertices[t].At(int(index)+0),
				g.vertices[t].At(int(index)+1),
				g.vertices[t].At(int(index)+2),
				g.vertices[t].At(int(index)+3),
			)
			out := BSplineToBezier(in)
			nativeVertices[t][4*i+0] = out.V0
			nativeVertices[t][4*i+1] = out.V1
			nativeVertices[t][4*i+2] = out.V2
			nativeVertices[t][4*i+3] = out.V3
		}
	}
	g.nativeCurves = nativeCurves
	g.nativeVertices = nativeVertices
	g.nativeVertices0 = nativeVertices[0] // fast-path alias, same backing array
}

// PostCommit publishes the native view for the concurrent read phase
func (g *Curves) PostCommit() {
	g.state = core.StateCommitted
	g.device.Logf(1, "committed %s curves geometry %d: %d curves, %d vertices, %d time steps",
		g.basis, g.geomID, g.NumPrimitives(), g.NumVertices(), g.numTimeSteps)
}

// Commit runs the full modify-to-built transition
func (g *Curves) Commit() error {
	if err := g.PreCommit(); err != nil {
		return err
	}
	g.PostCommit()
	return nil
}

// Curve returns the native start-vertex index of curve i
func (g *Curves) Curve(i int) uint32 {
	if g.nativeCurves != nil {
		return g.nativeCurves[i]
	}
	return g.curves.At(i)
}

// Vertex returns native vertex i of the first time step (fast path)
func (g *Curves) Vertex(i int) math32.Vector4 {
	if g.nativeVertices0 != nil {
		return g.nativeVertices0[i]
	}
	return g.vertices[0].At(i)
}

// VertexAt returns native vertex i of the given time step
func (g *Curves) VertexAt(i, itime int) math32.Vector4 {
	if g.nativeVertices != nil {
		return g.nativeVertices[itime][i]
	}
	return g.vertices[itime].At(i)
}

// Radius returns the radius of native vertex i of the first time step
func (g *Curves) Radius(i int) float32 { return g.Vertex(i).W }

// RadiusAt returns the radius of native vertex i of the given time step
func (g *Curves) RadiusAt(i, itime int) float32 { return g.VertexAt(i, itime).W }

// GetCurve gathers the native Bezier segment of curve i at a time step
func (g *Curves) GetCurve(i, itime int) BezierCurve {
	index := int(g.Curve(i))
	return BezierCurve{
		V0: g.VertexAt(index+0, itime),
		V1: g.VertexAt(index+1, itime),
		V2: g.VertexAt(index+2, itime),
		V3: g.VertexAt(index+3, itime),
	}
}

// GatherAtTime gathers the segment of curve i at a fractional global time,
// interpolating each control point between the two bracketing time steps
func (g *Curves) GatherAtTime(i int, time float32) BezierCurve {
	if g.numTimeSteps == 1 {
		return g.GetCurve(i, 0)
	}
	itime, ftime := core.TimeSegment(time, g.fnumTimeSegments())
	a := g.GetCurve(i, itime)
	b := g.GetCurve(i, itime+1)
	return BezierCurve{
		V0: a.V0.Lerp(b.V0, ftime),
		V1: a.V1.Lerp(b.V1, ftime),
		V2: a.V2.Lerp(b.V2, ftime),
		V3: a.V3.Lerp(b.V3, ftime),
	}
}

// StartEndBitMask packs the two low flag bits of curve i into bit positions
// 30 and 31 of the query word consumed by the intersector. Curves without a
// flags buffer report zero.
func (g *Curves) StartEndBitMask(i int) uint32 {
	if g.flags.IsNil() {
		return 0
	}
	return (uint32(g.flags.At(i)) & 0x3) << 30
}

// PrefetchL1Vertices touches the control points of curve i so they are
// resident before a bounds or intersection query. Observable only through
// performance.
func (g *Curves) PrefetchL1Vertices(i int) {
	index := int(g.Curve(i))
	_ = g.Vertex(index + 0)
	_ = g.Vertex(index + 3)
}

// PrefetchL2Vertices is the longer-range counterpart of PrefetchL1Vertices
func (g *Curves) PrefetchL2Vertices(i int) {
	index := int(g.Curve(i))
	_ = g.Vertex(index + 0)
	_ = g.Vertex(index + 3)
}
