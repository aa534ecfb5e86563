package cpu

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/parallel"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// MaxPool2DBackward routes output gradients to the input positions that
// won the max in the forward pass; every other position in a window
// gets zero. maxIndices holds the flat input index of the winner for
// each output element, recorded during the forward pass.
//
// A window never crosses channel planes, so routing is parallel per
// (batch, channel) plane.
func (cpu *CPUBackend) MaxPool2DBackward(input, grad *tensor.Tensor, maxIndices []int, kernelSize, stride int) *tensor.Tensor {
	inputShape := input.Shape()
	gradShape := grad.Shape()

	n := inputShape[0]
	c := inputShape[1]
	hOut := gradShape[2]
	wOut := gradShape[3]

	if expected := n * c * hOut * wOut; len(maxIndices) != expected {
		panic(fmt.Sprintf("maxpool2dbackward: maxIndices length %d != expected %d", len(maxIndices), expected))
	}

	inputGrad, err := tensor.New(inputShape, tensor.Float32)
	if err != nil {
		panic(fmt.Sprintf("maxpool2dbackward: %v", err))
	}

	inputGradData := inputGrad.AsFloat32()
	gradData := grad.AsFloat32()
	planeSize := hOut * wOut

	parallel.ForBatch(n, c, func(batch, ch int) {
		base := (batch*c + ch) * planeSize
		for p := 0; p < planeSize; p++ {
			inputGradData[maxIndices[base+p]] += gradData[base+p]
		}
	}, cpu.workers)

	return inputGrad
}
