package nn

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

// MaxPool2D is a 2D max pooling layer.
//
// Max pooling reduces spatial dimensions by taking the maximum value in
// each window. It has no parameters.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, out_height, out_width]
//
// Where:
//
//	out_height = (height - kernelSize) / stride + 1
//	out_width = (width - kernelSize) / stride + 1
type MaxPool2D struct {
	kernelSize int
	stride     int
	backend    tensor.Backend
}

// NewMaxPool2D creates a max pooling layer.
//
// The classifier networks this package feeds all use non-overlapping
// 2x2 windows, NewMaxPool2D(2, 2, backend).
func NewMaxPool2D(kernelSize, stride int, backend tensor.Backend) *MaxPool2D {
	if kernelSize <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid stride %d", stride))
	}

	return &MaxPool2D{
		kernelSize: kernelSize,
		stride:     stride,
		backend:    backend,
	}
}

// Forward performs the forward pass.
//
// Input: [batch, channels, height, width]
// Output: [batch, channels, out_height, out_width].
func (m *MaxPool2D) Forward(input *tensor.Tensor) *tensor.Tensor {
	if len(input.Shape()) != 4 {
		panic(fmt.Sprintf("maxpool2d: expected 4D input [N,C,H,W], got %dD", len(input.Shape())))
	}

	return m.backend.MaxPool2D(input, m.kernelSize, m.stride)
}

// Parameters returns an empty slice. Pooling has nothing to train.
func (m *MaxPool2D) Parameters() []*Parameter {
	return nil
}

// String returns a string representation of the layer.
func (m *MaxPool2D) String() string {
	return fmt.Sprintf("MaxPool2D(kernel_size=%d, stride=%d)", m.kernelSize, m.stride)
}
