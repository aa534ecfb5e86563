package nn

import (
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Parameter is a named tensor held by a layer.
//
// In this pipeline parameters play two roles. The extractor's pretrained
// weights are parameters that stay frozen for the whole run. The
// synthesized image is a parameter that the optimizer updates in place.
//
// Example:
//
//	target := nn.NewParameter("target", pixels)
//	target.SetGrad(grads[pixels])
type Parameter struct {
	name   string
	tensor *tensor.Tensor
	grad   *tensor.Tensor
}

// NewParameter creates a parameter around an initialized tensor.
//
// The gradient starts out nil and is attached after a backward pass.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name, e.g. "features.0.weight".
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before any backward pass.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// SetGrad attaches a gradient computed by a backward pass.
func (p *Parameter) SetGrad(grad *tensor.Tensor) {
	p.grad = grad
}

// ZeroGrad drops the gradient so the next step starts fresh.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
