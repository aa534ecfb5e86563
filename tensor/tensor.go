// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Tensor is a dense n-dimensional array. Buffers are reference counted;
// backends reuse uniquely owned buffers for in-place fast paths.
type Tensor = tensor.Tensor

// Shape represents the dimensions of a tensor.
// Example: Shape{1, 3, 400, 400} is a normalized RGB image batch.
type Shape = tensor.Shape

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Uint8   DataType = tensor.Uint8
)

// New creates an uninitialized tensor with the given shape and dtype.
func New(shape Shape, dtype DataType) (*Tensor, error) {
	return tensor.New(shape, dtype)
}

// FromFloat32 creates a Float32 tensor holding a copy of data.
//
// Example:
//
//	t, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromFloat32(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromFloat32(data, shape)
}

// Zeros creates a Float32 tensor filled with zeros.
func Zeros(shape Shape) (*Tensor, error) {
	return tensor.Zeros(shape)
}

// Ones creates a Float32 tensor filled with ones.
func Ones(shape Shape) (*Tensor, error) {
	return tensor.Ones(shape)
}

// Full creates a Float32 tensor filled with value.
func Full(shape Shape, value float32) (*Tensor, error) {
	return tensor.Full(shape, value)
}

// BroadcastShapes computes the NumPy-style broadcast of two shapes.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}
