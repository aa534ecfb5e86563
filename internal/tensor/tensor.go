package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// buffer is a reference-counted byte store shared between tensors.
// Reference counting enables cheap Clone and lets backends modify a
// tensor in place when it holds the only reference.
type buffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex
}

func newBuffer(size int) *buffer {
	b := &buffer{data: make([]byte, size)}
	b.refCount.Store(1)
	return b
}

func (b *buffer) addRef() {
	b.refCount.Add(1)
}

func (b *buffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.data = nil
	}
}

func (b *buffer) isUnique() bool {
	return b.refCount.Load() == 1
}

// Tensor is a dense row-major multi-dimensional array over a
// reference-counted buffer.
type Tensor struct {
	buf    *buffer
	shape  Shape
	stride []int
	dtype  DataType
}

// New creates a zero-filled tensor with the given shape and type.
func New(shape Shape, dtype DataType) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor{
		buf:    newBuffer(shape.NumElements() * dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's row-major memory strides.
func (t *Tensor) Strides() []int {
	return t.stride
}

// DType returns the tensor's data type.
func (t *Tensor) DType() DataType {
	return t.dtype
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (t *Tensor) ByteSize() int {
	return t.NumElements() * t.dtype.Size()
}

// Data returns the raw byte slice backing the tensor.
func (t *Tensor) Data() []byte {
	return t.buf.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (t *Tensor) AsFloat32() []float32 {
	if t.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", t.dtype))
	}
	//nolint:gosec // zero-copy reinterpretation, length bounded by NumElements
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.buf.data[0])), t.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (t *Tensor) AsFloat64() []float64 {
	if t.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", t.dtype))
	}
	//nolint:gosec // zero-copy reinterpretation, length bounded by NumElements
	return unsafe.Slice((*float64)(unsafe.Pointer(&t.buf.data[0])), t.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (t *Tensor) AsUint8() []uint8 {
	if t.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", t.dtype))
	}
	return t.buf.data
}

// Clone returns a shallow copy sharing the underlying buffer.
// The buffer is reference-counted; backends copy it only when a write
// would be visible through another reference.
func (t *Tensor) Clone() *Tensor {
	t.buf.addRef()
	return &Tensor{
		buf:    t.buf,
		shape:  t.shape.Clone(),
		stride: append([]int(nil), t.stride...),
		dtype:  t.dtype,
	}
}

// Copy returns a deep copy with its own buffer.
// Use this when the copy will be mutated independently of the source,
// e.g. the optimization target cloned from the content image.
func (t *Tensor) Copy() *Tensor {
	dup := &Tensor{
		buf:    newBuffer(len(t.buf.data)),
		shape:  t.shape.Clone(),
		stride: append([]int(nil), t.stride...),
		dtype:  t.dtype,
	}
	copy(dup.buf.data, t.buf.data)
	return dup
}

// View returns a tensor sharing this tensor's buffer under a new shape.
// The element count must be unchanged. Reshape is a view, not a copy;
// the result is non-unique while both references are alive.
func (t *Tensor) View(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != t.NumElements() {
		return nil, fmt.Errorf("view %v incompatible with %v: element counts differ", shape, t.shape)
	}
	t.buf.addRef()
	return &Tensor{
		buf:    t.buf,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  t.dtype,
	}, nil
}

// Release decrements the buffer's reference count, freeing it at zero.
func (t *Tensor) Release() {
	t.buf.release()
}

// IsUnique reports whether this tensor holds the only buffer reference.
// When true, backends may modify the tensor in place.
func (t *Tensor) IsUnique() bool {
	return t.buf.isUnique()
}

// ForceNonUnique pins the buffer so in-place optimizations are disabled
// until the returned release function is called. The autodiff backend
// uses this to keep recorded inputs intact for the backward pass.
func (t *Tensor) ForceNonUnique() func() {
	t.buf.addRef()
	return func() {
		t.buf.release()
	}
}
