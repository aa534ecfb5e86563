// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/neuralstyle/internal/backend/cpu"
	"github.com/born-ml/neuralstyle/tensor"
)

// Backend represents the CPU backend implementation.
//
// Heavy loops are chunked across goroutines; every goroutine writes a
// disjoint region of the output, so results match a sequential run
// bit for bit.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend with the default worker pool.
//
// Example:
//
//	backend := cpu.New()
//	fmt.Println(backend.Name()) // "CPU"
func New() *Backend {
	return internalcpu.New()
}

// NewSequential creates a CPU backend that never spawns goroutines.
func NewSequential() *Backend {
	return internalcpu.NewSequential()
}
