// Package nn implements the neural network layers used by the style
// transfer pipeline.
//
// The package provides the building blocks of a convolutional feature
// extractor:
//   - Module interface: base interface for all layers
//   - Parameter: a named tensor with an optional gradient
//   - Conv2D: 2D convolution constructed from pretrained weights
//   - MaxPool2D: 2D max pooling
//   - ReLU: rectified linear activation
//
// Layers carry no initialization logic. Weights always come from a
// pretrained bundle, so constructors accept the weight tensors directly.
package nn

import (
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Module is the base interface for all neural network layers.
//
// A module computes an output from an input and exposes its parameters.
// Layers without parameters (pooling, activations) return an empty slice.
type Module interface {
	// Forward computes the output of the module given an input tensor.
	//
	// Convolutional modules expect [batch, channels, height, width].
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Parameters returns all parameters of this module.
	Parameters() []*Parameter
}
