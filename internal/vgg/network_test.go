package vgg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/neuralstyle/internal/backend/cpu"
	"github.com/born-ml/neuralstyle/internal/tensor"
	"github.com/born-ml/neuralstyle/internal/weights"
)

// fullBundle builds a zero-filled weight set with the real VGG19 shapes.
// Entry value slices are shared with the bundle, so tests may fill in
// values before handing the bundle to NewNetwork.
func fullBundle(t *testing.T) *weights.Bundle {
	t.Helper()
	b := weights.NewBundle()
	for _, spec := range featureTable {
		if spec.op != opConv {
			continue
		}
		n := spec.out * spec.in * kernelSize * kernelSize
		require.NoError(t, b.Add(weightKey(spec.index),
			[]int{spec.out, spec.in, kernelSize, kernelSize}, make([]float32, n)))
		require.NoError(t, b.Add(biasKey(spec.index),
			[]int{spec.out}, make([]float32, spec.out)))
	}
	return b
}

func input4D(t *testing.T, batch, channels, h, w int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.Ones(tensor.Shape{batch, channels, h, w})
	require.NoError(t, err)
	return x
}

func TestNewNetwork_BuildsFeatureStack(t *testing.T) {
	net, err := NewNetwork(fullBundle(t), cpu.New())
	require.NoError(t, err)

	// 16 convolutions, each contributing a weight and a bias.
	assert.Len(t, net.Parameters(), 32)

	t.Run("capture shapes", func(t *testing.T) {
		got := net.Extract(input4D(t, 1, 3, 16, 16), []string{"conv1_1", "conv4_2"})
		require.Len(t, got, 2)
		// conv1_1 sees the full resolution; conv4_2 sits behind three
		// pooling layers.
		assert.Equal(t, tensor.Shape{1, 64, 16, 16}, got["conv1_1"].Shape())
		assert.Equal(t, tensor.Shape{1, 512, 2, 2}, got["conv4_2"].Shape())
	})

	t.Run("batch dimension stays one", func(t *testing.T) {
		for _, size := range [][2]int{{16, 16}, {24, 32}} {
			got := net.Extract(input4D(t, 1, 3, size[0], size[1]), LayerNames()[:6])
			for name, feat := range got {
				assert.Equal(t, 1, feat.Shape()[0], "%s at %dx%d", name, size[0], size[1])
			}
		}
	})

	t.Run("unknown layer panics", func(t *testing.T) {
		assert.Panics(t, func() {
			net.Extract(input4D(t, 1, 3, 8, 8), []string{"conv9_9"})
		})
	})

	t.Run("rejects batch greater than one", func(t *testing.T) {
		assert.Panics(t, func() {
			net.Extract(input4D(t, 2, 3, 8, 8), []string{"conv1_1"})
		})
	})

	t.Run("rejects non-rgb input", func(t *testing.T) {
		assert.Panics(t, func() {
			net.Extract(input4D(t, 1, 1, 8, 8), []string{"conv1_1"})
		})
	})
}

func TestExtract_CapturesBeforeReLU(t *testing.T) {
	bundle := fullBundle(t)

	// Zero kernels plus a negative bias make every conv1_1 activation
	// -1. A post-ReLU capture would read all zeros instead.
	bias, ok := bundle.Get(biasKey(0))
	require.True(t, ok)
	for i := range bias.Values {
		bias.Values[i] = -1
	}

	net, err := NewNetwork(bundle, cpu.New())
	require.NoError(t, err)

	got := net.Extract(input4D(t, 1, 3, 4, 4), []string{"conv1_1", "conv1_2"})
	for _, v := range got["conv1_1"].AsFloat32() {
		assert.Equal(t, float32(-1), v)
	}
	// conv1_2 sees ReLU(conv1_1) = 0 and has zero weights and bias.
	for _, v := range got["conv1_2"].AsFloat32() {
		assert.Equal(t, float32(0), v)
	}

	t.Run("stops after deepest requested layer", func(t *testing.T) {
		// A 16x16 input shrinks to 1x1 after pool4. pool5 cannot run on
		// a 1x1 map, so reaching conv5_1 without a panic shows the pass
		// stopped there.
		got := net.Extract(input4D(t, 1, 3, 16, 16), []string{"conv5_1"})
		assert.Equal(t, tensor.Shape{1, 512, 1, 1}, got["conv5_1"].Shape())
	})
}

func TestNewNetwork_MissingTensor(t *testing.T) {
	b := weights.NewBundle()
	require.NoError(t, b.Add("features.0.weight", []int{64, 3, 3, 3}, make([]float32, 64*3*3*3)))

	_, err := NewNetwork(b, cpu.New())
	assert.True(t, errors.Is(err, ErrWeightMismatch))
	assert.Contains(t, err.Error(), "features.0.bias")
}

func TestNewNetwork_ShapeMismatch(t *testing.T) {
	t.Run("kernel", func(t *testing.T) {
		b := weights.NewBundle()
		require.NoError(t, b.Add("features.0.weight", []int{64, 4, 3, 3}, make([]float32, 64*4*3*3)))
		require.NoError(t, b.Add("features.0.bias", []int{64}, make([]float32, 64)))

		_, err := NewNetwork(b, cpu.New())
		assert.True(t, errors.Is(err, ErrWeightMismatch))
	})

	t.Run("bias", func(t *testing.T) {
		b := weights.NewBundle()
		require.NoError(t, b.Add("features.0.weight", []int{64, 3, 3, 3}, make([]float32, 64*3*3*3)))
		require.NoError(t, b.Add("features.0.bias", []int{32}, make([]float32, 32)))

		_, err := NewNetwork(b, cpu.New())
		assert.True(t, errors.Is(err, ErrWeightMismatch))
	})
}

func TestLoad_SniffsFormat(t *testing.T) {
	t.Run("nsw branch", func(t *testing.T) {
		// A valid bundle that is not a VGG19 weight set proves the .nsw
		// reader handled the file: the failure is a weight mismatch,
		// not a parse error.
		path := filepath.Join(t.TempDir(), "tiny.nsw")
		b := weights.NewBundle()
		require.NoError(t, b.Add("w", []int{2}, []float32{1, 2}))
		w, err := weights.NewWriter(path)
		require.NoError(t, err)
		require.NoError(t, w.Write(b, weights.Header{}))
		require.NoError(t, w.Close())

		_, err = Load(path, cpu.New())
		assert.True(t, errors.Is(err, ErrWeightMismatch))
	})

	t.Run("safetensors branch", func(t *testing.T) {
		// One feature tensor with a non-VGG shape: reaching the weight
		// mismatch proves the SafeTensors reader handled the file.
		header := []byte(`{"features.0.weight":{"dtype":"F32","shape":[2],"data_offsets":[0,8]}}`)
		var raw bytes.Buffer
		var size [8]byte
		binary.LittleEndian.PutUint64(size[:], uint64(len(header)))
		raw.Write(size[:])
		raw.Write(header)
		raw.Write(make([]byte, 8))

		path := filepath.Join(t.TempDir(), "tiny.safetensors")
		require.NoError(t, os.WriteFile(path, raw.Bytes(), 0o600))

		_, err := Load(path, cpu.New())
		assert.True(t, errors.Is(err, ErrWeightMismatch))
	})

	t.Run("onnx branch", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bogus.onnx")
		require.NoError(t, os.WriteFile(path, []byte("not a model at all"), 0o600))

		_, err := Load(path, cpu.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "onnx")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.nsw"), cpu.New())
		assert.Error(t, err)
	})
}
