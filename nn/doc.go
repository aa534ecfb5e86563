// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network building blocks used by the
// style transfer pipeline.
//
// # Overview
//
// This package contains:
//   - Conv2D: 2D convolution with pretrained weights
//   - MaxPool2D: 2D max pooling
//   - ReLU: rectified linear activation
//   - Parameter: a named tensor, frozen or optimized in place
//
// Layers here never initialize their own weights; the feature extractor
// is always built from a pretrained checkpoint.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/neuralstyle/backend/cpu"
//	    "github.com/born-ml/neuralstyle/nn"
//	)
//
//	backend := cpu.New()
//	conv := nn.NewConv2D("features.0", weight, bias, 1, 1, backend)
//	out := conv.Forward(input)
package nn
