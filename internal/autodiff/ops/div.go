package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// DivOp records output = a / b (element-wise).
type DivOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
}

// NewDivOp creates a DivOp.
func NewDivOp(a, b, output *tensor.Tensor) *DivOp {
	return &DivOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes [grad / b, -grad * a / b^2].
func (op *DivOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]

	gradA := backend.Div(outputGrad, b)

	bSquared := backend.Mul(b, b)
	gradB := backend.MulScalar(backend.Div(backend.Mul(outputGrad, a), bSquared), -1)

	return []*tensor.Tensor{
		reduceBroadcast(gradA, a.Shape(), backend),
		reduceBroadcast(gradB, b.Shape(), backend),
	}
}

// Inputs returns [a, b].
func (op *DivOp) Inputs() []*tensor.Tensor {
	return op.inputs
}

// Output returns a / b.
func (op *DivOp) Output() *tensor.Tensor {
	return op.output
}
