// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/neuralstyle/tensor"
)

func TestPublicAPI_Creation(t *testing.T) {
	x, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, 6, x.NumElements())

	ones, err := tensor.Ones(tensor.Shape{4})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1, 1}, ones.AsFloat32())
}

func TestPublicAPI_BroadcastShapes(t *testing.T) {
	out, err := tensor.BroadcastShapes(tensor.Shape{1, 64, 1, 1}, tensor.Shape{1, 64, 8, 8})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 64, 8, 8}, out)

	_, err = tensor.BroadcastShapes(tensor.Shape{2}, tensor.Shape{3})
	assert.Error(t, err)
}
