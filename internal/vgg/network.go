package vgg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/born-ml/neuralstyle/internal/nn"
	"github.com/born-ml/neuralstyle/internal/onnx"
	"github.com/born-ml/neuralstyle/internal/tensor"
	"github.com/born-ml/neuralstyle/internal/weights"
)

// ErrWeightMismatch indicates the provided weights do not line up with
// the VGG19 feature stack.
var ErrWeightMismatch = errors.New("weights do not match the vgg19 feature stack")

// stage is one executable row of the feature table, either a
// convolution (followed by an implied ReLU) or a pooling layer.
type stage struct {
	spec layerSpec
	conv *nn.Conv2D
	pool *nn.MaxPool2D
}

// Network is the VGG19 feature stack with pretrained weights. It is a
// pure feature extractor; it never updates its parameters.
type Network struct {
	stages  []stage
	relu    *nn.ReLU
	params  []*nn.Parameter
	backend tensor.Backend
}

// NewNetwork builds the feature stack from a weight bundle. The bundle
// must hold float32 tensors under torchvision names ("features.0.weight",
// "features.0.bias", ...) with VGG19 shapes.
func NewNetwork(bundle *weights.Bundle, backend tensor.Backend) (*Network, error) {
	net := &Network{
		stages:  make([]stage, 0, len(featureTable)),
		relu:    nn.NewReLU(backend),
		backend: backend,
	}
	for _, spec := range featureTable {
		if spec.op == opPool {
			net.stages = append(net.stages, stage{
				spec: spec,
				pool: nn.NewMaxPool2D(poolSize, poolStride, backend),
			})
			continue
		}
		conv, err := buildConv(spec, bundle, backend)
		if err != nil {
			return nil, err
		}
		net.stages = append(net.stages, stage{spec: spec, conv: conv})
		net.params = append(net.params, conv.Parameters()...)
	}
	return net, nil
}

func buildConv(spec layerSpec, bundle *weights.Bundle, backend tensor.Backend) (*nn.Conv2D, error) {
	wEntry, ok := bundle.Get(weightKey(spec.index))
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrWeightMismatch, weightKey(spec.index))
	}
	wantShape := tensor.Shape{spec.out, spec.in, kernelSize, kernelSize}
	if !tensor.Shape(wEntry.Shape).Equal(wantShape) {
		return nil, fmt.Errorf("%w: %s has shape %v, want %v",
			ErrWeightMismatch, wEntry.Name, wEntry.Shape, wantShape)
	}

	bEntry, ok := bundle.Get(biasKey(spec.index))
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrWeightMismatch, biasKey(spec.index))
	}
	if !tensor.Shape(bEntry.Shape).Equal(tensor.Shape{spec.out}) {
		return nil, fmt.Errorf("%w: %s has shape %v, want [%d]",
			ErrWeightMismatch, bEntry.Name, bEntry.Shape, spec.out)
	}

	weight, err := tensor.FromFloat32(wEntry.Values, wantShape)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", wEntry.Name, err)
	}
	bias, err := tensor.FromFloat32(bEntry.Values, tensor.Shape{spec.out})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", bEntry.Name, err)
	}

	name := fmt.Sprintf("features.%d", spec.index)
	return nn.NewConv2D(name, weight, bias, convStride, convPad, backend), nil
}

// Load reads VGG19 weights from path and builds the network. The file
// may be a native .nsw bundle, a SafeTensors checkpoint with
// torchvision names, or an ONNX export of torchvision's vgg19; the
// format is detected from the leading bytes.
func Load(path string, backend tensor.Backend) (*Network, error) {
	bundle, err := loadBundle(path)
	if err != nil {
		return nil, err
	}
	return NewNetwork(bundle, backend)
}

func loadBundle(path string) (*weights.Bundle, error) {
	prefix, err := sniffPrefix(path)
	if err != nil {
		return nil, err
	}

	switch {
	case string(prefix[:4]) == weights.MagicBytes:
		r, err := weights.Open(path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.ReadBundle()

	case weights.IsSafeTensors(prefix):
		// The classifier head is dead weight here; only the feature
		// stack is loaded.
		return weights.ReadSafeTensors(path, func(name string) bool {
			return strings.HasPrefix(name, "features.")
		})

	default:
		model, err := onnx.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s as onnx: %w", path, err)
		}
		return BundleFromONNX(model)
	}
}

func sniffPrefix(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open weights: %w", err)
	}
	defer f.Close()

	prefix := make([]byte, 9)
	if _, err := io.ReadFull(f, prefix); err != nil {
		return nil, fmt.Errorf("failed to read weights: %w", err)
	}
	return prefix, nil
}

// Parameters returns every weight and bias in the network. Callers that
// record gradients mark these as constants so the backward pass skips
// them.
func (n *Network) Parameters() []*nn.Parameter {
	return n.params
}

// Backend returns the backend the network runs on.
func (n *Network) Backend() tensor.Backend {
	return n.backend
}

// Extract runs a forward pass over input and returns the activations of
// the requested layers, keyed by layer name. Convolution activations
// are captured before the following ReLU. The pass stops at the deepest
// requested layer.
//
// The input must be [1, 3, H, W]. Unknown layer names panic; validate
// user-supplied names with KnownLayer first.
func (n *Network) Extract(input *tensor.Tensor, layers []string) map[string]*tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 4 || shape[0] != 1 || shape[1] != 3 {
		panic(fmt.Sprintf("vgg: expected input [1,3,H,W], got %v", shape))
	}

	want := make(map[string]bool, len(layers))
	for _, name := range layers {
		if !KnownLayer(name) {
			panic(fmt.Sprintf("vgg: unknown layer %q", name))
		}
		want[name] = true
	}

	captured := make(map[string]*tensor.Tensor, len(want))
	remaining := len(want)
	x := input
	for _, s := range n.stages {
		if remaining == 0 {
			break
		}
		if s.conv != nil {
			x = s.conv.Forward(x)
			if want[s.spec.name] {
				captured[s.spec.name] = x
				remaining--
			}
			x = n.relu.Forward(x)
			continue
		}
		x = s.pool.Forward(x)
		if want[s.spec.name] {
			captured[s.spec.name] = x
			remaining--
		}
	}
	return captured
}
