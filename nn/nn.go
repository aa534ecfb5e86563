// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/neuralstyle/internal/nn"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Module interface defines the common interface for all layers.
type Module = nn.Module

// Parameter represents a named tensor held by a layer.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Layers

// Conv2D represents a 2D convolutional layer with fixed weights.
type Conv2D = nn.Conv2D

// NewConv2D creates a convolution around pretrained weights.
//
// The weight tensor is (outChannels, inChannels, kH, kW) and the bias
// is (outChannels).
//
// Example:
//
//	conv := nn.NewConv2D("features.0", weight, bias, 1, 1, backend)
func NewConv2D(name string, weight, bias *tensor.Tensor, stride, padding int, backend tensor.Backend) *Conv2D {
	return nn.NewConv2D(name, weight, bias, stride, padding, backend)
}

// MaxPool2D represents a 2D max pooling layer.
type MaxPool2D = nn.MaxPool2D

// NewMaxPool2D creates a max pooling layer.
func NewMaxPool2D(kernelSize, stride int, backend tensor.Backend) *MaxPool2D {
	return nn.NewMaxPool2D(kernelSize, stride, backend)
}

// ReLU represents the rectified linear activation.
type ReLU = nn.ReLU

// NewReLU creates a ReLU activation layer.
func NewReLU(backend tensor.Backend) *ReLU {
	return nn.NewReLU(backend)
}
