// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col algorithm for efficient convolutions
//   - Worker-pool parallelism with deterministic results
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/neuralstyle/backend/cpu"
//	    "github.com/born-ml/neuralstyle/tensor"
//	)
//
//	backend := cpu.New()
//	x, _ := tensor.Ones(tensor.Shape{2, 3})
//	y := backend.MulScalar(x, 2)
package cpu
