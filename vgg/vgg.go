// Package vgg provides the pretrained VGG19 feature extractor used for
// style transfer.
//
// This package wraps the internal implementation and exports the
// pieces a caller needs: loading weights from disk, building a network
// on a backend, and extracting named feature maps.
//
// Example usage:
//
//	import (
//	    "github.com/born-ml/neuralstyle/autodiff"
//	    "github.com/born-ml/neuralstyle/backend/cpu"
//	    "github.com/born-ml/neuralstyle/vgg"
//	)
//
//	backend := autodiff.New(cpu.New())
//	net, err := vgg.Load("vgg19.nsw", backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	features := net.Extract(image, []string{"conv4_2"})
package vgg

import (
	"github.com/born-ml/neuralstyle/internal/onnx"
	"github.com/born-ml/neuralstyle/internal/tensor"
	internalvgg "github.com/born-ml/neuralstyle/internal/vgg"
	"github.com/born-ml/neuralstyle/internal/weights"
)

// Network is the VGG19 feature stack up to the last style layer.
type Network = internalvgg.Network

// ErrWeightMismatch reports a weight file whose tensors do not match
// the VGG19 feature stack.
var ErrWeightMismatch = internalvgg.ErrWeightMismatch

// Load reads VGG19 weights from a file and builds the network on the
// given backend. The format (.nsw, SafeTensors or ONNX) is detected by
// content, not file extension.
//
// Example:
//
//	net, err := vgg.Load("vgg19.safetensors", backend)
func Load(path string, backend tensor.Backend) (*Network, error) {
	return internalvgg.Load(path, backend)
}

// NewNetwork builds the feature stack from an already loaded bundle.
func NewNetwork(bundle *weights.Bundle, backend tensor.Backend) (*Network, error) {
	return internalvgg.NewNetwork(bundle, backend)
}

// BundleFromONNX extracts VGG19 feature weights from a parsed ONNX
// model, by name when the export kept torchvision names and by
// position otherwise.
func BundleFromONNX(model *onnx.ModelProto) (*weights.Bundle, error) {
	return internalvgg.BundleFromONNX(model)
}

// LayerNames returns every extractable layer name in forward order,
// "conv1_1" through "conv5_4" plus the five pools.
func LayerNames() []string {
	return internalvgg.LayerNames()
}

// KnownLayer reports whether name is an extractable layer.
func KnownLayer(name string) bool {
	return internalvgg.KnownLayer(name)
}
