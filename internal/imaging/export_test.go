package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

func TestToImage_InvertsNormalization(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	colors := []color.RGBA{
		{R: 0, G: 128, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 10, G: 200, B: 90, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 64, G: 64, B: 64, A: 255},
	}
	for i, c := range colors {
		src.SetRGBA(i%3, i/3, c)
	}

	packed, err := toTensor(src)
	require.NoError(t, err)
	got := ToImage(packed)

	// Normalize then denormalize costs at most one 8-bit step.
	for i, want := range colors {
		c := got.RGBAAt(i%3, i/3)
		assert.InDelta(t, want.R, c.R, 1)
		assert.InDelta(t, want.G, c.G, 1)
		assert.InDelta(t, want.B, c.B, 1)
		assert.EqualValues(t, 255, c.A)
	}
}

func TestToImage_ClampsOutOfRange(t *testing.T) {
	// Pixel values that denormalize to 2.0 and -1.0 must saturate at
	// white and black.
	data := make([]float32, 3*2)
	for ch := 0; ch < 3; ch++ {
		data[ch*2+0] = (2 - Mean[ch]) / Std[ch]
		data[ch*2+1] = (-1 - Mean[ch]) / Std[ch]
	}
	packed, err := tensor.FromFloat32(data, tensor.Shape{1, 3, 1, 2})
	require.NoError(t, err)

	got := ToImage(packed)
	high := got.RGBAAt(0, 0)
	low := got.RGBAAt(1, 0)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, high)
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 0, A: 255}, low)
}

func TestToImage_PanicsOnWrongShape(t *testing.T) {
	bad, err := tensor.Zeros(tensor.Shape{3, 4, 4})
	require.NoError(t, err)
	assert.Panics(t, func() { ToImage(bad) })

	batched, err := tensor.Zeros(tensor.Shape{2, 3, 4, 4})
	require.NoError(t, err)
	assert.Panics(t, func() { ToImage(batched) })
}

func TestSavePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 50), B: 100, A: 255})
		}
	}
	packed, err := toTensor(src)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SavePNG(packed, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 5), decoded.Bounds())
}
