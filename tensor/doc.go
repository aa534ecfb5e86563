// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations.
//
// # Overview
//
// This package exposes the core types shared by every compute layer:
//   - Tensor: a dense n-dimensional array with copy-on-write buffers
//   - Shape: tensor dimensions, e.g. Shape{1, 3, 400, 400}
//   - DataType: runtime element type information
//   - Backend: the interface compute devices implement
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/neuralstyle/backend/cpu"
//	    "github.com/born-ml/neuralstyle/tensor"
//	)
//
//	backend := cpu.New()
//	x, err := tensor.Ones(tensor.Shape{2, 3})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := backend.MulScalar(x, 2)
package tensor
