package ops

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

// ReLUOp records output = max(0, input).
//
// Backward: the gradient passes where the input was positive and is
// zero elsewhere.
type ReLUOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewReLUOp creates a ReLUOp.
func NewReLUOp(input, output *tensor.Tensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

// Backward masks the output gradient by input > 0.
func (op *ReLUOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	mask := reluMask(op.input)
	return []*tensor.Tensor{backend.Mul(outputGrad, mask)}
}

// Inputs returns [input].
func (op *ReLUOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns max(0, input).
func (op *ReLUOp) Output() *tensor.Tensor {
	return op.output
}

// reluMask builds a tensor holding 1 where input > 0 and 0 elsewhere.
func reluMask(input *tensor.Tensor) *tensor.Tensor {
	mask, err := tensor.New(input.Shape(), tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("relu mask: %v", err))
	}
	src := input.AsFloat32()
	dst := mask.AsFloat32()
	for i, v := range src {
		if v > 0 {
			dst[i] = 1
		}
	}
	return mask
}
