package nn

import (
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// ReLU is a rectified linear activation module.
//
// Applies the element-wise function f(x) = max(0, x).
type ReLU struct {
	backend tensor.Backend
}

// NewReLU creates a ReLU activation module.
func NewReLU(backend tensor.Backend) *ReLU {
	return &ReLU{backend: backend}
}

// Forward applies the activation.
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	return r.backend.ReLU(input)
}

// Parameters returns an empty slice. ReLU has nothing to train.
func (r *ReLU) Parameters() []*Parameter {
	return nil
}

// String returns a string representation of the layer.
func (r *ReLU) String() string {
	return "ReLU()"
}
