package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

// ToImage denormalizes a [1, 3, H, W] tensor back to pixel space,
// clamps each channel to [0, 1] and returns an 8-bit RGBA image.
// Optimization drives pixel values slightly outside the valid range, so
// clamping is part of the export contract.
func ToImage(t *tensor.Tensor) *image.RGBA {
	shape := t.Shape()
	if len(shape) != 4 || shape[0] != 1 || shape[1] != 3 {
		panic(fmt.Sprintf("imaging: expected [1,3,H,W] tensor, got %v", shape))
	}
	h, w := shape[2], shape[3]
	plane := h * w
	data := t.AsFloat32()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			r := clamp01(data[i]*Std[0] + Mean[0])
			g := clamp01(data[plane+i]*Std[1] + Mean[1])
			b := clamp01(data[2*plane+i]*Std[2] + Mean[2])
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(r*255 + 0.5),
				G: uint8(g*255 + 0.5),
				B: uint8(b*255 + 0.5),
				A: 255,
			})
		}
	}
	return img
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SavePNG denormalizes the tensor and writes it to path as a PNG.
func SavePNG(t *tensor.Tensor, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, ToImage(t)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
