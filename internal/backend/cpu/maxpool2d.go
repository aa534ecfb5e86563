package cpu

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/parallel"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// MaxPool2D performs 2D max pooling over NCHW tensors.
//
// Each output element is the maximum of a kernelSize x kernelSize
// window; windows advance by stride and never cross the input edge:
//
//	out_h = (H - kernelSize)/stride + 1
//	out_w = (W - kernelSize)/stride + 1
//
// Channels are pooled independently, so the (batch, channel) planes are
// processed in parallel.
func (cpu *CPUBackend) MaxPool2D(input *tensor.Tensor, kernelSize, stride int) *tensor.Tensor {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("maxpool2d: expected 4D input [N,C,H,W], got %dD", len(inputShape)))
	}
	if input.DType() != tensor.Float32 {
		panic(fmt.Sprintf("maxpool2d: unsupported dtype %s", input.DType()))
	}

	n := inputShape[0]
	c := inputShape[1]
	h := inputShape[2]
	w := inputShape[3]

	if kernelSize <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid stride %d", stride))
	}
	if kernelSize > h || kernelSize > w {
		panic(fmt.Sprintf("maxpool2d: kernel size %d too large for input %dx%d", kernelSize, h, w))
	}

	hOut := (h-kernelSize)/stride + 1
	wOut := (w-kernelSize)/stride + 1

	output, err := tensor.New(tensor.Shape{n, c, hOut, wOut}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("maxpool2d: %v", err))
	}

	inputData := input.AsFloat32()
	outputData := output.AsFloat32()

	parallel.ForBatch(n, c, func(batch, ch int) {
		inPlane := inputData[(batch*c+ch)*h*w : (batch*c+ch+1)*h*w]
		outPlane := outputData[(batch*c+ch)*hOut*wOut : (batch*c+ch+1)*hOut*wOut]

		for outH := 0; outH < hOut; outH++ {
			hStart := outH * stride
			for outW := 0; outW < wOut; outW++ {
				wStart := outW * stride

				maxVal := inPlane[hStart*w+wStart]
				for kh := 0; kh < kernelSize; kh++ {
					row := inPlane[(hStart+kh)*w : (hStart+kh)*w+w]
					for kw := 0; kw < kernelSize; kw++ {
						if v := row[wStart+kw]; v > maxVal {
							maxVal = v
						}
					}
				}

				outPlane[outH*wOut+outW] = maxVal
			}
		}
	}, cpu.workers)

	return output
}
