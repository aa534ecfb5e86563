// Package cpu implements the tensor.Backend interface with portable Go
// kernels. Heavy loops are chunked across goroutines; every goroutine
// writes a disjoint region of the output, so results are identical to a
// sequential run.
package cpu

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/parallel"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// CPUBackend executes tensor operations on the host CPU.
type CPUBackend struct {
	workers parallel.Config
}

// New creates a CPU backend with the default worker pool.
func New() *CPUBackend {
	return &CPUBackend{workers: parallel.DefaultConfig()}
}

// NewSequential creates a CPU backend that never spawns goroutines.
// Useful in tests that check against hand-computed values.
func NewSequential() *CPUBackend {
	return &CPUBackend{workers: parallel.Config{}}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with NumPy-style broadcasting.
// When a uniquely owns its buffer and no broadcasting is needed the
// addition happens in place and a is returned.
func (cpu *CPUBackend) Add(a, b *tensor.Tensor) *tensor.Tensor {
	return cpu.binaryOp("add", a, b, addInplaceFloat32, addFloat32, addBroadcastFloat32)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.Tensor) *tensor.Tensor {
	return cpu.binaryOp("sub", a, b, subInplaceFloat32, subFloat32, subBroadcastFloat32)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.Tensor) *tensor.Tensor {
	return cpu.binaryOp("mul", a, b, mulInplaceFloat32, mulFloat32, mulBroadcastFloat32)
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.Tensor) *tensor.Tensor {
	return cpu.binaryOp("div", a, b, divInplaceFloat32, divFloat32, divBroadcastFloat32)
}

type inplaceFn func(a, b []float32)
type vectorFn func(dst, a, b []float32)
type broadcastFn func(dst, a, b []float32, aShape, bShape, outShape tensor.Shape)

// binaryOp dispatches an element-wise binary operation, choosing
// between the in-place, same-shape and broadcasting kernels.
func (cpu *CPUBackend) binaryOp(name string, a, b *tensor.Tensor, inplace inplaceFn, vector vectorFn, broadcast broadcastFn) *tensor.Tensor {
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	if a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			inplace(a.AsFloat32(), b.AsFloat32())
			return a
		}
		result, err := tensor.New(a.Shape(), tensor.Float32)
		if err != nil {
			panic(fmt.Sprintf("%s: %v", name, err))
		}
		vector(result.AsFloat32(), a.AsFloat32(), b.AsFloat32())
		return result
	}

	outShape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	result, err := tensor.New(outShape, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	broadcast(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape)
	return result
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.Tensor, scalar float32) *tensor.Tensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("mulscalar: unsupported dtype %s", x.DType()))
	}

	if x.IsUnique() {
		data := x.AsFloat32()
		for i := range data {
			data[i] *= scalar
		}
		return x
	}

	result, err := tensor.New(x.Shape(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("mulscalar: %v", err))
	}
	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i := range src {
		dst[i] = src[i] * scalar
	}
	return result
}

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.Tensor) *tensor.Tensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("relu: unsupported dtype %s", x.DType()))
	}

	result, err := tensor.New(x.Shape(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("relu: %v", err))
	}
	src := x.AsFloat32()
	dst := result.AsFloat32()
	for i, v := range src {
		if v > 0 {
			dst[i] = v
		}
	}
	return result
}

// Reshape returns a view of t under a new shape. The data is shared,
// not copied, so reshaping large activations is free.
func (cpu *CPUBackend) Reshape(t *tensor.Tensor, newShape tensor.Shape) *tensor.Tensor {
	view, err := t.View(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return view
}

// Mean reduces the whole tensor to a single-element tensor holding the
// arithmetic mean. Accumulation is sequential left-to-right so repeated
// runs produce bit-identical results.
func (cpu *CPUBackend) Mean(x *tensor.Tensor) *tensor.Tensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("mean: unsupported dtype %s", x.DType()))
	}

	result, err := tensor.New(tensor.Shape{1}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("mean: %v", err))
	}
	var sum float32
	for _, v := range x.AsFloat32() {
		sum += v
	}
	result.AsFloat32()[0] = sum / float32(x.NumElements())
	return result
}
