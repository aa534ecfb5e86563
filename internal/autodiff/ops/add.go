package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// AddOp records output = a + b.
//
// The output gradient flows unchanged to both inputs, folded back
// through any broadcast.
type AddOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewAddOp creates an AddOp.
func NewAddOp(a, b, output *tensor.Tensor) *AddOp {
	return &AddOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes [dL/da, dL/db].
func (op *AddOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	return []*tensor.Tensor{
		reduceBroadcast(outputGrad, op.inputs[0].Shape(), backend),
		reduceBroadcast(outputGrad, op.inputs[1].Shape(), backend),
	}
}

// Inputs returns [a, b].
func (op *AddOp) Inputs() []*tensor.Tensor {
	return op.inputs
}

// Output returns a + b.
func (op *AddOp) Output() *tensor.Tensor {
	return op.output
}
