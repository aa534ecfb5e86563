package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// SubOp records output = a - b.
type SubOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewSubOp creates a SubOp.
func NewSubOp(a, b, output *tensor.Tensor) *SubOp {
	return &SubOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes [dL/da, dL/db] = [grad, -grad].
func (op *SubOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	negGrad := backend.MulScalar(outputGrad, -1)
	return []*tensor.Tensor{
		reduceBroadcast(outputGrad, op.inputs[0].Shape(), backend),
		reduceBroadcast(negGrad, op.inputs[1].Shape(), backend),
	}
}

// Inputs returns [a, b].
func (op *SubOp) Inputs() []*tensor.Tensor {
	return op.inputs
}

// Output returns a - b.
func (op *SubOp) Output() *tensor.Tensor {
	return op.output
}
