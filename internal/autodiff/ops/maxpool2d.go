package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// MaxPool2DOp records output = MaxPool2D(input, kernelSize, stride).
//
// The winning position of every pooling window is captured at record
// time; backward routes each output gradient to its winner and leaves
// the rest of the window at zero.
type MaxPool2DOp struct {
	input      *tensor.Tensor
	output     *tensor.Tensor
	maxIndices []int
	kernelSize int
	stride     int
}

// NewMaxPool2DOp creates a MaxPool2DOp, computing the max indices from
// the forward input.
func NewMaxPool2DOp(input, output *tensor.Tensor, kernelSize, stride int) *MaxPool2DOp {
	return &MaxPool2DOp{
		input:      input,
		output:     output,
		maxIndices: computeMaxIndices(input, output, kernelSize, stride),
		kernelSize: kernelSize,
		stride:     stride,
	}
}

// computeMaxIndices finds the flat input index of the maximum in every
// pooling window. Ties resolve to the first element in scan order, the
// same element the forward pass picked.
func computeMaxIndices(input, output *tensor.Tensor, kernelSize, stride int) []int {
	inputShape := input.Shape()
	outputShape := output.Shape()

	n := inputShape[0]
	c := inputShape[1]
	h := inputShape[2]
	w := inputShape[3]
	hOut := outputShape[2]
	wOut := outputShape[3]

	inputData := input.AsFloat32()
	maxIndices := make([]int, n*c*hOut*wOut)

	outIdx := 0
	for batch := 0; batch < n; batch++ {
		for ch := 0; ch < c; ch++ {
			planeOffset := (batch*c + ch) * h * w
			for outH := 0; outH < hOut; outH++ {
				hStart := outH * stride
				for outW := 0; outW < wOut; outW++ {
					wStart := outW * stride

					maxPos := planeOffset + hStart*w + wStart
					maxVal := inputData[maxPos]
					for kh := 0; kh < kernelSize; kh++ {
						rowOffset := planeOffset + (hStart+kh)*w
						for kw := 0; kw < kernelSize; kw++ {
							idx := rowOffset + wStart + kw
							if inputData[idx] > maxVal {
								maxVal = inputData[idx]
								maxPos = idx
							}
						}
					}

					maxIndices[outIdx] = maxPos
					outIdx++
				}
			}
		}
	}
	return maxIndices
}

// Backward routes output gradients to the recorded max positions.
func (op *MaxPool2DOp) Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor {
	inputGrad := backend.MaxPool2DBackward(op.input, outputGrad, op.maxIndices, op.kernelSize, op.stride)
	return []*tensor.Tensor{inputGrad}
}

// Inputs returns [input].
func (op *MaxPool2DOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the pooled tensor.
func (op *MaxPool2DOp) Output() *tensor.Tensor {
	return op.output
}
