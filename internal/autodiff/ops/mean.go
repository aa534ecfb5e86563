package ops

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

// MeanOp records output = mean(input) over all elements, the reduction
// at the heart of the MSE losses.
//
// Backward: every input element contributed 1/n, so each receives
// grad/n.
type MeanOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewMeanOp creates a MeanOp.
func NewMeanOp(input, output *tensor.Tensor) *MeanOp {
	return &MeanOp{input: input, output: output}
}

// Backward spreads grad/n over the input's shape.
func (op *MeanOp) Backward(outputGrad *tensor.Tensor, _ tensor.Backend) []*tensor.Tensor {
	n := op.input.NumElements()

	inputGrad, err := tensor.New(op.input.Shape(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("mean backward: %v", err))
	}

	scaled := outputGrad.AsFloat32()[0] / float32(n)
	data := inputGrad.AsFloat32()
	for i := range data {
		data[i] = scaled
	}
	return []*tensor.Tensor{inputGrad}
}

// Inputs returns [input].
func (op *MeanOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the single-element mean tensor.
func (op *MeanOp) Output() *tensor.Tensor {
	return op.output
}
