package vgg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/neuralstyle/internal/backend/cpu"
	"github.com/born-ml/neuralstyle/internal/onnx"
)

// onnxVGG builds a parsed model carrying zero-filled VGG19 feature
// weights. rename maps canonical tensor names to whatever the export
// under test would call them.
func onnxVGG(rename func(string) string) *onnx.ModelProto {
	g := &onnx.GraphProto{Name: "torch_jit"}
	for _, spec := range convRows() {
		n := spec.out * spec.in * kernelSize * kernelSize
		g.Initializers = append(g.Initializers,
			onnx.TensorProto{
				Name:      rename(weightKey(spec.index)),
				DataType:  onnx.TensorProtoFloat,
				Dims:      []int64{int64(spec.out), int64(spec.in), kernelSize, kernelSize},
				FloatData: make([]float32, n),
			},
			onnx.TensorProto{
				Name:      rename(biasKey(spec.index)),
				DataType:  onnx.TensorProtoFloat,
				Dims:      []int64{int64(spec.out)},
				FloatData: make([]float32, spec.out),
			},
		)
	}
	return &onnx.ModelProto{Graph: g}
}

func keepName(name string) string { return name }

func TestBundleFromONNX_CanonicalNames(t *testing.T) {
	bundle, err := BundleFromONNX(onnxVGG(keepName))
	require.NoError(t, err)
	assert.Equal(t, 32, bundle.Len())

	e, ok := bundle.Get("features.0.weight")
	require.True(t, ok)
	assert.Equal(t, []int{64, 3, 3, 3}, e.Shape)

	e, ok = bundle.Get("features.34.bias")
	require.True(t, ok)
	assert.Equal(t, []int{512}, e.Shape)
}

func TestBundleFromONNX_PositionalFallback(t *testing.T) {
	// Exports traced through torch.jit lose the module names.
	serial := 0
	model := onnxVGG(func(string) string {
		serial++
		return fmt.Sprintf("onnx::Conv_%d", serial)
	})

	// Classifier leftovers after the features must be ignored: a Gemm
	// matrix and its bias.
	model.Graph.Initializers = append(model.Graph.Initializers,
		onnx.TensorProto{
			Name:      "classifier.0.weight",
			DataType:  onnx.TensorProtoFloat,
			Dims:      []int64{10, 20},
			FloatData: make([]float32, 200),
		},
		onnx.TensorProto{
			Name:      "classifier.0.bias",
			DataType:  onnx.TensorProtoFloat,
			Dims:      []int64{10},
			FloatData: make([]float32, 10),
		},
	)

	bundle, err := BundleFromONNX(model)
	require.NoError(t, err)
	assert.Equal(t, 32, bundle.Len())

	// Tensors come out under canonical names regardless of input names.
	for _, spec := range convRows() {
		assert.True(t, bundle.Has(weightKey(spec.index)), spec.name)
		assert.True(t, bundle.Has(biasKey(spec.index)), spec.name)
	}
	assert.False(t, bundle.Has("classifier.0.weight"))
}

func TestBundleFromONNX_WrongKernelShape(t *testing.T) {
	model := &onnx.ModelProto{Graph: &onnx.GraphProto{
		Initializers: []onnx.TensorProto{{
			Name:      "w0",
			DataType:  onnx.TensorProtoFloat,
			Dims:      []int64{2, 1, 2, 2},
			FloatData: make([]float32, 8),
		}},
	}}

	_, err := BundleFromONNX(model)
	assert.True(t, errors.Is(err, ErrWeightMismatch))
}

func TestBundleFromONNX_TooFewKernels(t *testing.T) {
	model := &onnx.ModelProto{Graph: &onnx.GraphProto{
		Initializers: []onnx.TensorProto{
			{
				Name:      "w0",
				DataType:  onnx.TensorProtoFloat,
				Dims:      []int64{64, 3, 3, 3},
				FloatData: make([]float32, 64*3*3*3),
			},
			{
				Name:      "b0",
				DataType:  onnx.TensorProtoFloat,
				Dims:      []int64{64},
				FloatData: make([]float32, 64),
			},
		},
	}}

	_, err := BundleFromONNX(model)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWeightMismatch))
	assert.Contains(t, err.Error(), "want 16")
}

func TestBundleFromONNX_ExternalData(t *testing.T) {
	model := onnxVGG(keepName)
	model.Graph.Initializers[0].DataLocation = onnx.DataLocationExternal

	_, err := BundleFromONNX(model)
	assert.True(t, errors.Is(err, onnx.ErrExternalData))
}

func TestBundleFromONNX_NoGraph(t *testing.T) {
	_, err := BundleFromONNX(&onnx.ModelProto{})
	assert.True(t, errors.Is(err, ErrWeightMismatch))
}

func TestBundleFromONNX_RoundTripsIntoNetwork(t *testing.T) {
	bundle, err := BundleFromONNX(onnxVGG(keepName))
	require.NoError(t, err)

	net, err := NewNetwork(bundle, cpu.New())
	require.NoError(t, err)
	assert.Len(t, net.Parameters(), 32)
}
