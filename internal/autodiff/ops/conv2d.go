package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// Conv2DOp records output = Conv2D(input, kernel, stride, padding).
//
// Backward:
//   - input gradient: transposed convolution of the output gradient
//     with the kernel
//   - kernel gradient: convolution of the input with the output
//     gradient, skipped entirely when the kernel is frozen
//
// Skipping the kernel gradient matters here: a feature extractor with
// pretrained weights never updates them, and the kernel backward pass
// is as expensive as the forward convolution.
type Conv2DOp struct {
	input           *tensor.Tensor
	kernel          *tensor.Tensor
	output          *tensor.Tensor
	stride          int
	padding         int
	kernelNeedsGrad bool
}

// NewConv2DOp creates a Conv2DOp. kernelNeedsGrad false suppresses the
// kernel gradient computation.
func NewConv2DOp(input, kernel, output *tensor.Tensor, stride, padding int, kernelNeedsGrad bool) *Conv2DOp {
	return &Conv2DOp{
		input:           input,
		kernel:          kernel,
		output:          output,
		stride:          stride,
		padding:         padding,
		kernelNeedsGrad: kernelNeedsGrad,
	}
}

// Backward computes [inputGrad, kernelGrad]; kernelGrad is nil for a
// frozen kernel.
func (op *Conv2DOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	inputGrad := backend.Conv2DInputBackward(op.input, op.kernel, outputGrad, op.stride, op.padding)

	var kernelGrad *tensor.Tensor
	if op.kernelNeedsGrad {
		kernelGrad = backend.Conv2DKernelBackward(op.input, op.kernel, outputGrad, op.stride, op.padding)
	}

	return []*tensor.Tensor{inputGrad, kernelGrad}
}

// Inputs returns [input, kernel].
func (op *Conv2DOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input, op.kernel}
}

// Output returns the convolution result.
func (op *Conv2DOp) Output() *tensor.Tensor {
	return op.output
}
