// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the optimizer driving image synthesis.
//
// # Overview
//
// This package contains:
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Style transfer never updates network weights. The only parameter the
// optimizer sees is the synthesized image, so the package stays small.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/neuralstyle/nn"
//	    "github.com/born-ml/neuralstyle/optim"
//	)
//
//	func main() {
//	    target := nn.NewParameter("target", pixels)
//
//	    optimizer := optim.NewAdam(
//	        []*nn.Parameter{target},
//	        optim.AdamConfig{LR: 0.003},
//	    )
//
//	    // Synthesis loop
//	    for step := 0; step < steps; step++ {
//	        // 1. Forward pass: extract features, compute loss
//	        loss := totalLoss(target)
//
//	        // 2. Backward pass
//	        grads := tape.Backward(seed, backend)
//
//	        // 3. Update the image in place
//	        optimizer.Step(grads)
//
//	        // 4. Reset for the next step
//	        optimizer.ZeroGrad()
//	        tape.Clear()
//	    }
//	}
//
// # Adam
//
// Adam keeps exponential moving averages of the gradient and the squared
// gradient, with bias correction for the zero initialization:
//
//	optimizer := optim.NewAdam(
//	    params,
//	    optim.AdamConfig{
//	        LR:    0.003,
//	        Betas: [2]float32{0.9, 0.999},
//	        Eps:   1e-8,
//	    },
//	)
//
// Zero-valued config fields fall back to the standard defaults.
package optim
