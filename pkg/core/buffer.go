package core

import (
	"unsafe"

	"cogentcore.org/core/math32"
)

// BufferType names the role a bound buffer plays for a geometry
type BufferType int

const (
	BufferTypeIndex BufferType = iota
	BufferTypeVertex
	BufferTypeFlags
	BufferTypeVertexAttribute
)

func (t BufferType) String() string {
	switch t {
	case BufferTypeIndex:
		return "index"
	case BufferTypeVertex:
		return "vertex"
	case BufferTypeFlags:
		return "flags"
	case BufferTypeVertexAttribute:
		return "vertex attribute"
	default:
		return "invalid buffer type"
	}
}

// Format describes the element layout of a bound buffer
type Format int

const (
	FormatUndefined Format = iota // opaque blob, attribute buffers only
	FormatUint                    // one 32-bit unsigned integer
	FormatFloat4                  // four 32-bit floats (xyz + radius)
	FormatUchar                   // one byte
)

func (f Format) String() string {
	switch f {
	case FormatUint:
		return "uint"
	case FormatFloat4:
		return "float4"
	case FormatUchar:
		return "uchar"
	default:
		return "undefined"
	}
}

// Buffer is raw byte storage bound to geometries through typed views.
// Device-allocated buffers own their bytes; shared buffers are non-owning
// views of caller memory, which the caller must keep stable between commits.
type Buffer struct {
	device *Device
	data   []byte
	shared bool
}

// NewBuffer allocates a device-owned buffer of the given byte size
func NewBuffer(device *Device, byteSize int) *Buffer {
	return &Buffer{device: device, data: make([]byte, byteSize)}
}

// NewSharedBuffer wraps caller-owned storage without copying it
func NewSharedBuffer(device *Device, data []byte) *Buffer {
	return &Buffer{device: device, data: data, shared: true}
}

// Size returns the byte size of the buffer
func (b *Buffer) Size() int { return len(b.data) }

// Data returns the backing byte storage
func (b *Buffer) Data() []byte { return b.data }

// Shared reports whether the buffer wraps caller-owned memory
func (b *Buffer) Shared() bool { return b.shared }

// Device returns the device the buffer was created from
func (b *Buffer) Device() *Device { return b.device }

// view is the common strided addressing over a buffer. Element i lives at
// byte offset + i*stride.
type view struct {
	data   []byte
	offset int
	stride int
	count  int
}

func (v view) ptr(i int) unsafe.Pointer {
	return unsafe.Pointer(&v.data[v.offset+i*v.stride])
}

// Len returns the number of addressable elements
func (v view) Len() int { return v.count }

// IsNil reports whether no buffer has been bound to this view
func (v view) IsNil() bool { return v.data == nil }

func makeView(buf *Buffer, elemSize, byteOffset, byteStride, count int, aligned bool) (view, error) {
	if byteStride == 0 {
		byteStride = elemSize
	}
	if byteStride < elemSize {
		return view{}, ErrInvalidArgument
	}
	if aligned && (byteOffset%4 != 0 || byteStride%4 != 0) {
		return view{}, ErrInvalidArgument
	}
	if count > 0 {
		last := byteOffset + (count-1)*byteStride + elemSize
		if byteOffset < 0 || last > len(buf.data) {
			return view{}, ErrInvalidArgument
		}
	}
	return view{data: buf.data, offset: byteOffset, stride: byteStride, count: count}, nil
}

// ViewUint32 addresses 32-bit unsigned integers in a buffer
type ViewUint32 struct{ view }

// NewViewUint32 creates a uint32 view; offset and stride must be 4-byte
// aligned and each element must fit inside the buffer.
func NewViewUint32(buf *Buffer, byteOffset, byteStride, count int) (ViewUint32, error) {
	v, err := makeView(buf, 4, byteOffset, byteStride, count, true)
	return ViewUint32{v}, err
}

// At returns element i
func (v ViewUint32) At(i int) uint32 {
	return *(*uint32)(v.ptr(i))
}

// Set stores element i
func (v ViewUint32) Set(i int, x uint32) {
	*(*uint32)(v.ptr(i)) = x
}

// ViewVector4 addresses packed (x, y, z, r) vertices in a buffer
type ViewVector4 struct{ view }

// NewViewVector4 creates a float4 view; offset and stride must be 4-byte
// aligned and each 16-byte element must fit inside the buffer.
func NewViewVector4(buf *Buffer, byteOffset, byteStride, count int) (ViewVector4, error) {
	v, err := makeView(buf, 16, byteOffset, byteStride, count, true)
	return ViewVector4{v}, err
}

// At returns element i
func (v ViewVector4) At(i int) math32.Vector4 {
	return *(*math32.Vector4)(v.ptr(i))
}

// Set stores element i
func (v ViewVector4) Set(i int, x math32.Vector4) {
	*(*math32.Vector4)(v.ptr(i)) = x
}

// ViewBytes addresses single bytes (flags) or opaque strided blobs
// (vertex attributes) in a buffer
type ViewBytes struct{ view }

// NewViewBytes creates a byte view with the given element stride
func NewViewBytes(buf *Buffer, byteOffset, byteStride, count int) (ViewBytes, error) {
	v, err := makeView(buf, 1, byteOffset, byteStride, count, false)
	return ViewBytes{v}, err
}

// At returns the first byte of element i
func (v ViewBytes) At(i int) byte {
	return *(*byte)(v.ptr(i))
}

// Set stores the first byte of element i
func (v ViewBytes) Set(i int, x byte) {
	*(*byte)(v.ptr(i)) = x
}

// Elem returns the stride-sized byte slice of element i
func (v ViewBytes) Elem(i int) []byte {
	start := v.offset + i*v.stride
	return v.data[start : start+v.stride]
}

// Raw returns the byte storage starting at the view offset
func (v view) Raw() []byte {
	if v.data == nil {
		return nil
	}
	return v.data[v.offset:]
}
