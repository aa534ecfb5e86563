package vgg

import (
	"fmt"

	"github.com/born-ml/neuralstyle/internal/onnx"
	"github.com/born-ml/neuralstyle/internal/tensor"
	"github.com/born-ml/neuralstyle/internal/weights"
)

// BundleFromONNX extracts the VGG19 feature weights from a parsed ONNX
// model into a bundle under canonical torchvision names.
//
// Two export styles are handled. When the initializers carry torchvision
// names ("features.0.weight", ...) they are matched by name. Otherwise
// the 4-D float32 initializers are taken in graph order as the sixteen
// convolution kernels, and each 1-D initializer following a kernel with
// a matching channel count becomes its bias. Classifier matrices (2-D)
// and non-float tensors are ignored either way.
func BundleFromONNX(model *onnx.ModelProto) (*weights.Bundle, error) {
	if model.Graph == nil {
		return nil, fmt.Errorf("%w: model has no graph", ErrWeightMismatch)
	}
	if hasCanonicalNames(model.Graph) {
		return bundleByName(model.Graph)
	}
	return bundleByPosition(model.Graph)
}

func hasCanonicalNames(g *onnx.GraphProto) bool {
	for _, spec := range featureTable {
		if spec.op != opConv {
			continue
		}
		if _, ok := g.Initializer(weightKey(spec.index)); !ok {
			return false
		}
	}
	return true
}

func bundleByName(g *onnx.GraphProto) (*weights.Bundle, error) {
	bundle := weights.NewBundle()
	for _, spec := range featureTable {
		if spec.op != opConv {
			continue
		}
		for _, key := range []string{weightKey(spec.index), biasKey(spec.index)} {
			t, ok := g.Initializer(key)
			if !ok {
				return nil, fmt.Errorf("%w: missing %s", ErrWeightMismatch, key)
			}
			if err := addTensor(bundle, key, t); err != nil {
				return nil, err
			}
		}
	}
	return bundle, nil
}

// convRows returns the convolution rows of the feature table in order.
func convRows() []layerSpec {
	rows := make([]layerSpec, 0, len(featureTable))
	for _, spec := range featureTable {
		if spec.op == opConv {
			rows = append(rows, spec)
		}
	}
	return rows
}

func bundleByPosition(g *onnx.GraphProto) (*weights.Bundle, error) {
	rows := convRows()
	bundle := weights.NewBundle()

	next := 0             // conv row awaiting its kernel
	var pending *layerSpec // conv row whose bias has not arrived yet
	for i := range g.Initializers {
		t := &g.Initializers[i]
		if t.DataType != onnx.TensorProtoFloat {
			continue
		}
		switch len(t.Dims) {
		case 4:
			if pending != nil {
				return nil, fmt.Errorf("%w: no bias found for %s", ErrWeightMismatch, pending.name)
			}
			if next >= len(rows) {
				return nil, fmt.Errorf("%w: more than %d convolution kernels", ErrWeightMismatch, len(rows))
			}
			row := rows[next]
			want := tensor.Shape{row.out, row.in, kernelSize, kernelSize}
			if !tensor.Shape(t.Shape()).Equal(want) {
				return nil, fmt.Errorf("%w: kernel %q has shape %v, want %v for %s",
					ErrWeightMismatch, t.Name, t.Shape(), want, row.name)
			}
			if err := addTensor(bundle, weightKey(row.index), t); err != nil {
				return nil, err
			}
			pending = &rows[next]
			next++
		case 1:
			if pending == nil || int(t.Dims[0]) != pending.out {
				continue
			}
			if err := addTensor(bundle, biasKey(pending.index), t); err != nil {
				return nil, err
			}
			pending = nil
		}
	}
	if pending != nil {
		return nil, fmt.Errorf("%w: no bias found for %s", ErrWeightMismatch, pending.name)
	}
	if next != len(rows) {
		return nil, fmt.Errorf("%w: found %d convolution kernels, want %d", ErrWeightMismatch, next, len(rows))
	}
	return bundle, nil
}

func addTensor(bundle *weights.Bundle, name string, t *onnx.TensorProto) error {
	values, err := t.Floats()
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", t.Name, err)
	}
	if err := bundle.Add(name, t.Shape(), values); err != nil {
		return fmt.Errorf("failed to collect %s: %w", t.Name, err)
	}
	return nil
}
