package ops

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

// reduceBroadcast folds a gradient back to the shape an operand had
// before broadcasting: dimensions the operand exposed as 1 (or did not
// have at all) are summed.
//
// Example: a[1,C,1,1] + b[1,C,H,W] -> grad_a sums over H and W.
func reduceBroadcast(grad *tensor.Tensor, target tensor.Shape, backend tensor.Backend) *tensor.Tensor {
	if grad.Shape().Equal(target) {
		// Clone so accumulation cannot write through a shared gradient.
		return grad.Clone()
	}

	result := grad
	offset := len(result.Shape()) - len(target)
	for d := 0; d < len(result.Shape()); d++ {
		targetDim := 1
		if d-offset >= 0 {
			targetDim = target[d-offset]
		}
		if targetDim == 1 && result.Shape()[d] > 1 {
			result = sumAlongDimension(result, d)
		}
	}

	if !result.Shape().Equal(target) {
		result = backend.Reshape(result, target)
	}
	return result
}

// sumAlongDimension sums over one dimension, keeping it as size 1.
func sumAlongDimension(t *tensor.Tensor, dim int) *tensor.Tensor {
	shape := t.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumAlongDimension: invalid dimension %d for shape %v", dim, shape))
	}

	outShape := shape.Clone()
	outShape[dim] = 1

	result, err := tensor.New(outShape, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("sumAlongDimension: %v", err))
	}

	src := t.AsFloat32()
	dst := result.AsFloat32()
	strides := shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()

	for i, v := range src {
		idx := i
		outIdx := 0
		for d := 0; d < len(shape); d++ {
			coord := idx / strides[d]
			idx %= strides[d]
			if d != dim {
				outIdx += coord * outStrides[d]
			}
		}
		dst[outIdx] += v
	}
	return result
}
