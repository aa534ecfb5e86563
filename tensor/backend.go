// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Backend is the interface compute devices implement: element-wise
// arithmetic, matrix multiplication, 2D convolution and pooling with
// their backward passes, plus shape operations.
//
// Implementations live in backend/cpu and can be wrapped by
// autodiff.New for gradient recording.
type Backend = tensor.Backend
