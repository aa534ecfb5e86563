package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// TransposeOp records output = transpose(input, axes).
//
// The gradient is transposed by the inverse permutation: if axis i of
// the output came from axis axes[i] of the input, the input gradient's
// axis axes[i] comes from axis i of the output gradient.
type TransposeOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
	axes   []int
}

// NewTransposeOp creates a TransposeOp. axes must be the resolved
// permutation, not empty.
func NewTransposeOp(input, output *tensor.Tensor, axes []int) *TransposeOp {
	return &TransposeOp{input: input, output: output, axes: axes}
}

// Backward transposes the output gradient back to the input layout.
func (op *TransposeOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}
	return []*tensor.Tensor{backend.Transpose(outputGrad, inverse...)}
}

// Inputs returns [input].
func (op *TransposeOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the transposed tensor.
func (op *TransposeOp) Output() *tensor.Tensor {
	return op.output
}
