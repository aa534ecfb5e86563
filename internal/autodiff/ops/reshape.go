package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// ReshapeOp records output = reshape(input).
//
// Reshape only reinterprets the layout, so the gradient is the output
// gradient viewed under the input's shape. Without this op on the tape,
// gradients would stop at reshaped tensors and never reach what they
// were reshaped from, e.g. a bias viewed as [1,C,1,1] for broadcasting.
type ReshapeOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewReshapeOp creates a ReshapeOp.
func NewReshapeOp(input, output *tensor.Tensor) *ReshapeOp {
	return &ReshapeOp{input: input, output: output}
}

// Backward views the output gradient under the input's shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.Reshape(outputGrad, op.input.Shape())}
}

// Inputs returns [input].
func (op *ReshapeOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the reshaped tensor.
func (op *ReshapeOp) Output() *tensor.Tensor {
	return op.output
}
