package core

// GeometryState tracks where a geometry is in the modify/commit lifecycle
type GeometryState int

const (
	// StateModified means user buffers may be mutated and any derived
	// (native) data is invalid.
	StateModified GeometryState = iota
	// StateCommitted means the native view is published and only reads
	// are permitted until the next mutation.
	StateCommitted
)

func (s GeometryState) String() string {
	if s == StateCommitted {
		return "committed"
	}
	return "modified"
}

// GeometryType names the kind of a geometry
type GeometryType int

const (
	GeometryTypeCurves GeometryType = iota
)

// Geometry is the host-facing surface shared by all geometry kinds.
// The scene-level state machine calls PreCommit/PostCommit with a barrier
// between mutation and the concurrent read phase; all other methods that
// mutate return the geometry to StateModified.
type Geometry interface {
	Type() GeometryType
	GeomID() uint32
	SetGeomID(id uint32)

	NumPrimitives() int
	NumTimeSteps() int

	Enable()
	Disable()
	IsEnabled() bool
	SetMask(mask uint32)
	Mask() uint32

	SetNumTimeSteps(n int) error
	SetVertexAttributeCount(n int) error
	SetBuffer(btype BufferType, slot int, format Format, buf *Buffer, byteOffset, byteStride, count int) error
	GetBuffer(btype BufferType, slot int) ([]byte, error)
	UpdateBuffer(btype BufferType, slot int) error

	PreCommit() error
	PostCommit()
	Verify() error
}
