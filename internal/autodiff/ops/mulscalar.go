package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// MulScalarOp records output = x * scalar.
//
// Loss weighting uses this: total = content*cw + style*sw.
type MulScalarOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
	scalar float32
}

// NewMulScalarOp creates a MulScalarOp.
func NewMulScalarOp(input, output *tensor.Tensor, scalar float32) *MulScalarOp {
	return &MulScalarOp{input: input, output: output, scalar: scalar}
}

// Backward computes dL/dx = grad * scalar.
func (op *MulScalarOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{backend.MulScalar(outputGrad, op.scalar)}
}

// Inputs returns [x].
func (op *MulScalarOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns x * scalar.
func (op *MulScalarOp) Output() *tensor.Tensor {
	return op.output
}
