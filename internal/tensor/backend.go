package tensor

// Backend is the compute interface behind all tensor operations.
//
// The CPU backend implements the math; the autodiff backend wraps any
// Backend and records operations for the backward pass. All operations
// allocate a new result tensor unless the receiver argument holds the
// only reference to its buffer, in which case element-wise operations
// may update it in place.
//
// Shape violations are programmer errors and panic.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *Tensor) *Tensor
	Sub(a, b *Tensor) *Tensor
	Mul(a, b *Tensor) *Tensor
	Div(a, b *Tensor) *Tensor

	// MulScalar multiplies every element by a scalar.
	MulScalar(x *Tensor, scalar float32) *Tensor

	// MatMul multiplies two 2-D matrices: (M,K) @ (K,N) -> (M,N).
	MatMul(a, b *Tensor) *Tensor

	// Convolution and pooling over NCHW tensors, with their gradients.
	Conv2D(input, kernel *Tensor, stride, padding int) *Tensor
	Conv2DInputBackward(input, kernel, grad *Tensor, stride, padding int) *Tensor
	Conv2DKernelBackward(input, kernel, grad *Tensor, stride, padding int) *Tensor
	MaxPool2D(input *Tensor, kernelSize, stride int) *Tensor
	MaxPool2DBackward(input, grad *Tensor, maxIndices []int, kernelSize, stride int) *Tensor

	// ReLU applies max(0, x) element-wise.
	ReLU(x *Tensor) *Tensor

	// Shape operations.
	Reshape(t *Tensor, newShape Shape) *Tensor
	Transpose(t *Tensor, axes ...int) *Tensor

	// Mean reduces the whole tensor to a single-element tensor.
	Mean(x *Tensor) *Tensor

	// Name identifies the backend in logs and errors.
	Name() string
}
