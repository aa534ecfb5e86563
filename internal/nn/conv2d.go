package nn

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Conv2D is a 2D convolutional layer built from pretrained weights.
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [out_channels, in_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding - kernel_h) / stride + 1
//	out_w = (width + 2*padding - kernel_w) / stride + 1
type Conv2D struct {
	name        string
	inChannels  int
	outChannels int
	kernelSize  [2]int
	stride      int
	padding     int

	weight *Parameter
	bias   *Parameter // holds a [1, out_channels, 1, 1] view, or nil

	backend tensor.Backend
}

// NewConv2D creates a convolutional layer around pretrained tensors.
//
// The weight must be 4D [out_channels, in_channels, kernel_h, kernel_w].
// The bias may be nil; otherwise it must be 1D [out_channels]. The bias
// is stored as a [1, out_channels, 1, 1] view so Forward can add it with
// a single broadcast.
func NewConv2D(name string, weight, bias *tensor.Tensor, stride, padding int, backend tensor.Backend) *Conv2D {
	weightShape := weight.Shape()
	if len(weightShape) != 4 {
		panic(fmt.Sprintf("conv2d %s: expected 4D weight, got %v", name, weightShape))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("conv2d %s: invalid stride %d", name, stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("conv2d %s: invalid padding %d", name, padding))
	}

	outChannels := weightShape[0]
	inChannels := weightShape[1]

	var biasParam *Parameter
	if bias != nil {
		biasShape := bias.Shape()
		if len(biasShape) != 1 || biasShape[0] != outChannels {
			panic(fmt.Sprintf("conv2d %s: bias shape %v does not match %d output channels",
				name, biasShape, outChannels))
		}
		biasView, err := bias.View(tensor.Shape{1, outChannels, 1, 1})
		if err != nil {
			panic(fmt.Sprintf("conv2d %s: %v", name, err))
		}
		biasParam = NewParameter(name+".bias", biasView)
	}

	return &Conv2D{
		name:        name,
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  [2]int{weightShape[2], weightShape[3]},
		stride:      stride,
		padding:     padding,
		weight:      NewParameter(name+".weight", weight),
		bias:        biasParam,
		backend:     backend,
	}
}

// Forward performs the forward pass.
//
// Input: [batch, in_channels, height, width]
// Output: [batch, out_channels, out_h, out_w].
func (c *Conv2D) Forward(input *tensor.Tensor) *tensor.Tensor {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d %s: expected 4D input [N,C,H,W], got %dD", c.name, len(inputShape)))
	}
	if inputShape[1] != c.inChannels {
		panic(fmt.Sprintf("conv2d %s: input channels %d != expected %d", c.name, inputShape[1], c.inChannels))
	}

	output := c.backend.Conv2D(input, c.weight.Tensor(), c.stride, c.padding)

	if c.bias != nil {
		output = c.backend.Add(output, c.bias.Tensor())
	}

	return output
}

// Parameters returns the weight and, if present, the bias.
func (c *Conv2D) Parameters() []*Parameter {
	if c.bias != nil {
		return []*Parameter{c.weight, c.bias}
	}
	return []*Parameter{c.weight}
}

// String returns a string representation of the layer.
func (c *Conv2D) String() string {
	return fmt.Sprintf("Conv2D(%s, in_channels=%d, out_channels=%d, kernel_size=(%d, %d), stride=%d, padding=%d)",
		c.name, c.inChannels, c.outChannels,
		c.kernelSize[0], c.kernelSize[1],
		c.stride, c.padding)
}

// InChannels returns the number of input channels.
func (c *Conv2D) InChannels() int {
	return c.inChannels
}

// OutChannels returns the number of output channels.
func (c *Conv2D) OutChannels() int {
	return c.outChannels
}

// KernelSize returns the kernel size [height, width].
func (c *Conv2D) KernelSize() [2]int {
	return c.kernelSize
}
