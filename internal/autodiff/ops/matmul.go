package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// MatMulOp records output = a @ b.
//
// Backward:
//
//	dL/da = grad @ b^T
//	dL/db = a^T @ grad
type MatMulOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewMatMulOp creates a MatMulOp.
func NewMatMulOp(a, b, output *tensor.Tensor) *MatMulOp {
	return &MatMulOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes input gradients for matrix multiplication.
func (op *MatMulOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]

	gradA := backend.MatMul(outputGrad, backend.Transpose(b, 1, 0))
	gradB := backend.MatMul(backend.Transpose(a, 1, 0), outputGrad)

	return []*tensor.Tensor{gradA, gradB}
}

// Inputs returns [a, b].
func (op *MatMulOp) Inputs() []*tensor.Tensor {
	return op.inputs
}

// Output returns a @ b.
func (op *MatMulOp) Output() *tensor.Tensor {
	return op.output
}
