// Package autodiff implements reverse-mode automatic differentiation
// with the decorator pattern: AutodiffBackend wraps any tensor.Backend
// and records every operation on a GradientTape during the forward
// pass. Walking the tape backwards yields gradients for exactly the
// tensors that need them.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	// ... forward pass ...
//	grads := backend.Tape().Backward(seed, backend)
package autodiff

import (
	"github.com/born-ml/neuralstyle/internal/autodiff/ops"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// AutodiffBackend wraps a Backend and records operations for
// backpropagation. It implements tensor.Backend itself, so it can be
// used anywhere the wrapped backend could.
//
// Every operation pins its operands for the duration of the inner
// call. Pinning makes the operand look shared, which blocks the inner
// backend's in-place fast paths; a tensor recorded on the tape must
// still hold its forward-pass values when the backward pass reads it.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for recording control and backward
// passes.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(x, y *tensor.Tensor) *tensor.Tensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	result := b.inner.Add(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddOp(x, y, result))
	}
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(x, y *tensor.Tensor) *tensor.Tensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	result := b.inner.Sub(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewSubOp(x, y, result))
	}
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(x, y *tensor.Tensor) *tensor.Tensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	result := b.inner.Mul(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulOp(x, y, result))
	}
	return result
}

// Div performs element-wise division and records the operation.
func (b *AutodiffBackend[B]) Div(x, y *tensor.Tensor) *tensor.Tensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	result := b.inner.Div(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewDivOp(x, y, result))
	}
	return result
}

// MulScalar multiplies by a scalar and records the operation.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.Tensor, scalar float32) *tensor.Tensor {
	defer x.ForceNonUnique()()

	result := b.inner.MulScalar(x, scalar)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMulScalarOp(x, result, scalar))
	}
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *AutodiffBackend[B]) MatMul(x, y *tensor.Tensor) *tensor.Tensor {
	defer x.ForceNonUnique()()
	defer y.ForceNonUnique()()

	result := b.inner.MatMul(x, y)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMatMulOp(x, y, result))
	}
	return result
}

// Conv2D performs 2D convolution and records the operation. When the
// kernel is registered constant on the tape, the recorded op skips the
// kernel gradient in backward, which halves the cost of
// backpropagating through a frozen feature extractor.
func (b *AutodiffBackend[B]) Conv2D(input, kernel *tensor.Tensor, stride, padding int) *tensor.Tensor {
	defer input.ForceNonUnique()()
	defer kernel.ForceNonUnique()()

	result := b.inner.Conv2D(input, kernel, stride, padding)
	if b.tape.IsRecording() {
		kernelNeedsGrad := !b.tape.IsConstant(kernel)
		b.tape.Record(ops.NewConv2DOp(input, kernel, result, stride, padding, kernelNeedsGrad))
	}
	return result
}

// Conv2DInputBackward delegates to the wrapped backend. Gradient
// computations are not themselves differentiated.
func (b *AutodiffBackend[B]) Conv2DInputBackward(input, kernel, grad *tensor.Tensor, stride, padding int) *tensor.Tensor {
	return b.inner.Conv2DInputBackward(input, kernel, grad, stride, padding)
}

// Conv2DKernelBackward delegates to the wrapped backend.
func (b *AutodiffBackend[B]) Conv2DKernelBackward(input, kernel, grad *tensor.Tensor, stride, padding int) *tensor.Tensor {
	return b.inner.Conv2DKernelBackward(input, kernel, grad, stride, padding)
}

// MaxPool2D performs max pooling and records the operation, capturing
// the max positions for gradient routing.
func (b *AutodiffBackend[B]) MaxPool2D(input *tensor.Tensor, kernelSize, stride int) *tensor.Tensor {
	defer input.ForceNonUnique()()

	result := b.inner.MaxPool2D(input, kernelSize, stride)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMaxPool2DOp(input, result, kernelSize, stride))
	}
	return result
}

// MaxPool2DBackward delegates to the wrapped backend.
func (b *AutodiffBackend[B]) MaxPool2DBackward(input, grad *tensor.Tensor, maxIndices []int, kernelSize, stride int) *tensor.Tensor {
	return b.inner.MaxPool2DBackward(input, grad, maxIndices, kernelSize, stride)
}

// ReLU applies the activation and records the operation.
func (b *AutodiffBackend[B]) ReLU(x *tensor.Tensor) *tensor.Tensor {
	defer x.ForceNonUnique()()

	result := b.inner.ReLU(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewReLUOp(x, result))
	}
	return result
}

// Reshape reinterprets the tensor's shape and records the operation.
func (b *AutodiffBackend[B]) Reshape(t *tensor.Tensor, newShape tensor.Shape) *tensor.Tensor {
	defer t.ForceNonUnique()()

	result := b.inner.Reshape(t, newShape)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewReshapeOp(t, result))
	}
	return result
}

// Transpose permutes dimensions and records the operation.
func (b *AutodiffBackend[B]) Transpose(t *tensor.Tensor, axes ...int) *tensor.Tensor {
	defer t.ForceNonUnique()()

	// Resolve the default permutation here so the recorded op always
	// holds the concrete axes.
	if len(axes) == 0 {
		ndim := len(t.Shape())
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	result := b.inner.Transpose(t, axes...)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewTransposeOp(t, result, axes))
	}
	return result
}

// Mean reduces to a single-element tensor and records the operation.
func (b *AutodiffBackend[B]) Mean(x *tensor.Tensor) *tensor.Tensor {
	defer x.ForceNonUnique()()

	result := b.inner.Mean(x)
	if b.tape.IsRecording() {
		b.tape.Record(ops.NewMeanOp(x, result))
	}
	return result
}
