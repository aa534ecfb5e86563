package transfer

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Gram computes the Gram matrix of a convolutional feature map.
//
// The (1, C, H, W) feature map is flattened to (C, H*W) and multiplied
// with its own transpose, giving a (C, C) matrix of channel
// correlations. Spatial arrangement is discarded, which is what makes
// the matrix a texture descriptor rather than a content one.
//
// The result is unnormalized; loss terms divide by the feature map size
// where needed. Entries scale with the square of the feature values.
func Gram(feature *tensor.Tensor, backend tensor.Backend) *tensor.Tensor {
	shape := feature.Shape()
	if len(shape) != 4 || shape[0] != 1 {
		panic(fmt.Sprintf("gram: feature must have shape (1, C, H, W), got %v", shape))
	}
	c, h, w := shape[1], shape[2], shape[3]

	flat := backend.Reshape(feature, tensor.Shape{c, h * w})
	return backend.MatMul(flat, backend.Transpose(flat))
}
