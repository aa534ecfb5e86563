package cpu

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/parallel"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape:  [N, C_in, H, W]
// Kernel shape: [C_out, C_in, K_h, K_w]
// Output shape: [N, C_out, H_out, W_out]
//
// Input patches are unrolled into a column matrix, the kernel is viewed
// as a [C_out, C_in*K_h*K_w] matrix, and the convolution reduces to one
// matrix multiplication per output channel row.
//
// Reference: "High Performance Convolutional Neural Networks for
// Document Processing" (Chellapilla et al., 2006).
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.Tensor, stride, padding int) *tensor.Tensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if input.DType() != tensor.Float32 || kernel.DType() != tensor.Float32 {
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	n := inputShape[0]
	cIn := inputShape[1]
	h := inputShape[2]
	w := inputShape[3]
	cOut := kernelShape[0]
	kH := kernelShape[2]
	kW := kernelShape[3]

	if cIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", cIn, kernelShape[1]))
	}

	hOut := (h+2*padding-kH)/stride + 1
	wOut := (w+2*padding-kW)/stride + 1
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions %dx%d (kernel=%dx%d, stride=%d, padding=%d)",
			hOut, wOut, kH, kW, stride, padding))
	}

	output, err := tensor.New(tensor.Shape{n, cOut, hOut, wOut}, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("conv2d: %v", err))
	}

	conv2dFloat32(output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(),
		n, cIn, h, w, cOut, kH, kW, hOut, wOut, stride, padding, cpu.workers)
	return output
}

// conv2dFloat32 unrolls the input with im2col, then contracts each
// output channel against the column matrix.
//
// colBuf rows correspond to output positions in (n, h_out, w_out)
// order; columns correspond to kernel weights in (c_in, kh, kw) order.
// The kernel is already laid out row-major as [C_out, C_in*K_h*K_w], so
// output[n, c, oh, ow] = kernelRow(c) . colRow(n, oh, ow).
func conv2dFloat32(output, input, kernel []float32,
	n, cIn, h, w, cOut, kH, kW, hOut, wOut, stride, padding int, workers parallel.Config,
) {
	colWidth := cIn * kH * kW
	colHeight := n * hOut * wOut
	colBuf := make([]float32, colHeight*colWidth)

	im2colFloat32(colBuf, input, n, cIn, h, w, kH, kW, hOut, wOut, stride, padding, workers)

	planeSize := hOut * wOut
	parallel.ForBatch(n, cOut, func(batch, c int) {
		kernelRow := kernel[c*colWidth : (c+1)*colWidth]
		outPlane := output[(batch*cOut+c)*planeSize : (batch*cOut+c+1)*planeSize]
		colBase := batch * planeSize
		for p := 0; p < planeSize; p++ {
			colRow := colBuf[(colBase+p)*colWidth : (colBase+p+1)*colWidth]
			sum := float32(0)
			for k := 0; k < colWidth; k++ {
				sum += kernelRow[k] * colRow[k]
			}
			outPlane[p] = sum
		}
	}, workers)
}

// im2colFloat32 writes one colBuf row per output position, each row
// holding the input patch under the kernel at that position. Positions
// that fall into padding read as zero.
func im2colFloat32(colBuf, input []float32,
	n, c, h, w, kH, kW, hOut, wOut, stride, padding int, workers parallel.Config,
) {
	colWidth := c * kH * kW

	parallel.For(n*hOut*wOut, func(colIdx int) {
		outW := colIdx % wOut
		outH := (colIdx / wOut) % hOut
		batch := colIdx / (hOut * wOut)

		hStart := outH*stride - padding
		wStart := outW*stride - padding

		row := colBuf[colIdx*colWidth : (colIdx+1)*colWidth]
		bufIdx := 0
		for ch := 0; ch < c; ch++ {
			chPlane := input[(batch*c+ch)*h*w : (batch*c+ch+1)*h*w]
			for kh := 0; kh < kH; kh++ {
				hPos := hStart + kh
				for kw := 0; kw < kW; kw++ {
					wPos := wStart + kw
					if hPos >= 0 && hPos < h && wPos >= 0 && wPos < w {
						row[bufIdx] = chPlane[hPos*w+wPos]
					} else {
						row[bufIdx] = 0
					}
					bufIdx++
				}
			}
		}
	}, workers)
}
