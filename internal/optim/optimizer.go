// Package optim implements the optimizer driving the image synthesis loop.
//
// Unlike a training setup, the optimizer here never touches network
// weights. The only parameter it updates is the synthesized image, so
// the package is deliberately small: an Optimizer interface and Adam.
//
// Example usage:
//
//	target := nn.NewParameter("target", pixels)
//	optimizer := optim.NewAdam([]*nn.Parameter{target}, optim.AdamConfig{
//	    LR: 0.003,
//	})
//
//	for step := 0; step < steps; step++ {
//	    loss := computeLoss(target)
//	    grads := tape.Backward(seed, backend)
//	    optimizer.Step(grads)
//	    optimizer.ZeroGrad()
//	}
package optim

import (
	"github.com/born-ml/neuralstyle/internal/nn"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Optimizer applies gradient updates to parameters.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient
	// in the map. Parameters are modified in place. Parameters absent
	// from the map are skipped.
	Step(grads map[*tensor.Tensor]*tensor.Tensor)

	// ZeroGrad clears the gradients attached to all parameters.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// getGradient looks up the gradient recorded for a parameter's tensor.
//
// Returns nil if the parameter did not participate in the recorded
// computation.
func getGradient(param *nn.Parameter, grads map[*tensor.Tensor]*tensor.Tensor) *tensor.Tensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor()]
}
