package cpu

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/parallel"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Conv2DInputBackward computes the convolution gradient w.r.t. input,
// the transposed convolution of the output gradient with the kernel.
//
// Each output position distributes its gradient to the K_h*K_w input
// positions under the kernel. Work is split per (batch, in-channel)
// plane, so every goroutine accumulates into its own plane and the
// result is schedule-independent.
//
// Reference: "A guide to convolution arithmetic for deep learning"
// (Dumoulin & Visin, 2016).
func (cpu *CPUBackend) Conv2DInputBackward(input, kernel, grad *tensor.Tensor, stride, padding int) *tensor.Tensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()
	gradShape := grad.Shape()

	n := inputShape[0]
	cIn := inputShape[1]
	h := inputShape[2]
	w := inputShape[3]
	cOut := kernelShape[0]
	kH := kernelShape[2]
	kW := kernelShape[3]
	hOut := gradShape[2]
	wOut := gradShape[3]

	inputGrad, err := tensor.New(inputShape, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("conv2dinputbackward: %v", err))
	}

	inputGradData := inputGrad.AsFloat32()
	gradData := grad.AsFloat32()
	kernelData := kernel.AsFloat32()

	parallel.ForBatch(n, cIn, func(batch, inChan int) {
		planeOffset := (batch*cIn + inChan) * h * w
		plane := inputGradData[planeOffset : planeOffset+h*w]

		gradBatch := gradData[batch*cOut*hOut*wOut : (batch+1)*cOut*hOut*wOut]

		for outChan := 0; outChan < cOut; outChan++ {
			gradPlane := gradBatch[outChan*hOut*wOut : (outChan+1)*hOut*wOut]
			kernelPlane := kernelData[(outChan*cIn+inChan)*kH*kW : (outChan*cIn+inChan+1)*kH*kW]

			for outH := 0; outH < hOut; outH++ {
				for outW := 0; outW < wOut; outW++ {
					gradVal := gradPlane[outH*wOut+outW]

					for kh := 0; kh < kH; kh++ {
						hPos := outH*stride - padding + kh
						if hPos < 0 || hPos >= h {
							continue
						}
						for kw := 0; kw < kW; kw++ {
							wPos := outW*stride - padding + kw
							if wPos < 0 || wPos >= w {
								continue
							}
							plane[hPos*w+wPos] += gradVal * kernelPlane[kh*kW+kw]
						}
					}
				}
			}
		}
	}, cpu.workers)

	return inputGrad
}

// Conv2DKernelBackward computes the convolution gradient w.r.t. kernel:
// each kernel weight accumulates input * outputGrad over every batch
// sample and output position that touched it. Work is split per
// (out-channel, in-channel) kernel plane.
func (cpu *CPUBackend) Conv2DKernelBackward(input, kernel, grad *tensor.Tensor, stride, padding int) *tensor.Tensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()
	gradShape := grad.Shape()

	n := inputShape[0]
	cIn := inputShape[1]
	h := inputShape[2]
	w := inputShape[3]
	cOut := kernelShape[0]
	kH := kernelShape[2]
	kW := kernelShape[3]
	hOut := gradShape[2]
	wOut := gradShape[3]

	kernelGrad, err := tensor.New(tensor.Shape{cOut, cIn, kH, kW}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("conv2dkernelbackward: %v", err))
	}

	kernelGradData := kernelGrad.AsFloat32()
	gradData := grad.AsFloat32()
	inputData := input.AsFloat32()

	parallel.ForBatch(cOut, cIn, func(outChan, inChan int) {
		kernelPlane := kernelGradData[(outChan*cIn+inChan)*kH*kW : (outChan*cIn+inChan+1)*kH*kW]

		for kh := 0; kh < kH; kh++ {
			for kw := 0; kw < kW; kw++ {
				sum := float32(0)

				for batch := 0; batch < n; batch++ {
					inPlane := inputData[(batch*cIn+inChan)*h*w : (batch*cIn+inChan+1)*h*w]
					gradPlane := gradData[(batch*cOut+outChan)*hOut*wOut : (batch*cOut+outChan+1)*hOut*wOut]

					for outH := 0; outH < hOut; outH++ {
						hPos := outH*stride - padding + kh
						if hPos < 0 || hPos >= h {
							continue
						}
						for outW := 0; outW < wOut; outW++ {
							wPos := outW*stride - padding + kw
							if wPos < 0 || wPos >= w {
								continue
							}
							sum += inPlane[hPos*w+wPos] * gradPlane[outH*wOut+outW]
						}
					}
				}

				kernelPlane[kh*kW+kw] = sum
			}
		}
	}, cpu.workers)

	return kernelGrad
}
