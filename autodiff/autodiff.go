// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation
// (backpropagation) using a gradient tape. It wraps any backend to add
// autodiff capabilities.
//
// Example:
//
//	import (
//	    "github.com/born-ml/neuralstyle/autodiff"
//	    "github.com/born-ml/neuralstyle/backend/cpu"
//	    "github.com/born-ml/neuralstyle/tensor"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    backend.Tape().StartRecording()
//
//	    // ... forward pass through backend ...
//
//	    seed, _ := tensor.Ones(tensor.Shape{1})
//	    grads := backend.Tape().Backward(seed, backend)
//	}
package autodiff

import (
	"github.com/born-ml/neuralstyle/internal/autodiff"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Backend is the autodiff-enabled backend. It implements tensor.Backend
// itself, so it can be used anywhere the wrapped backend could.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}
