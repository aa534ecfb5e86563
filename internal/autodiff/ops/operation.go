// Package ops defines the differentiable operations recorded on the
// gradient tape. Each operation keeps references to its forward-pass
// tensors and knows how to turn an output gradient into input gradients.
package ops

import "github.com/born-ml/neuralstyle/internal/tensor"

// Operation is one recorded step of the forward pass.
type Operation interface {
	// Backward computes gradients for the inputs given the gradient of
	// the loss w.r.t. this operation's output. The returned slice is
	// parallel to Inputs(); a nil entry means no gradient flows to that
	// input.
	Backward(outputGrad *tensor.Tensor, backend tensor.Backend) []*tensor.Tensor

	// Inputs returns the tensors this operation consumed.
	Inputs() []*tensor.Tensor

	// Output returns the tensor this operation produced.
	Output() *tensor.Tensor
}
