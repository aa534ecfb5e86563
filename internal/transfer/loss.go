package transfer

import (
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// mseLoss returns the mean squared error between two equally shaped
// tensors as a single-element tensor.
func mseLoss(backend tensor.Backend, got, want *tensor.Tensor) *tensor.Tensor {
	diff := backend.Sub(got, want)
	return backend.Mean(backend.Mul(diff, diff))
}

// styleLayerLoss scores one layer: the mean squared error between the
// feature map's Gram matrix and the precomputed style Gram, scaled by
// the layer weight and normalized by the feature map size C*H*W. The
// weight and the normalization fold into a single scalar multiply.
func styleLayerLoss(backend tensor.Backend, feature, styleGram *tensor.Tensor, weight float32) *tensor.Tensor {
	shape := feature.Shape()
	c, h, w := shape[1], shape[2], shape[3]

	diff := backend.Sub(Gram(feature, backend), styleGram)
	loss := backend.Mean(backend.Mul(diff, diff))
	return backend.MulScalar(loss, weight/float32(c*h*w))
}

// styleLoss sums the per-layer losses. Layers are visited in the fixed
// forward-pass order so the accumulation is reproducible run to run.
func styleLoss(
	backend tensor.Backend,
	features map[string]*tensor.Tensor,
	styleGrams map[string]*tensor.Tensor,
	layers []string,
	weights map[string]float32,
) *tensor.Tensor {
	var total *tensor.Tensor
	for _, name := range layers {
		term := styleLayerLoss(backend, features[name], styleGrams[name], weights[name])
		if total == nil {
			total = term
		} else {
			total = backend.Add(total, term)
		}
	}
	return total
}
