// Package imaging provides image loading and export for the style
// transfer pipeline.
//
// This package wraps the internal implementation and exports a clean
// public API: Load turns a file path or HTTP(S) URL into a normalized
// [1, 3, H, W] float32 tensor, and ToImage / SavePNG invert the
// transform for export.
//
// Example usage:
//
//	import "github.com/born-ml/neuralstyle/imaging"
//
//	content, err := imaging.Load("content.jpg", imaging.LoadOptions{
//	    MaxSize: 400,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... synthesize ...
//
//	if err := imaging.SavePNG(target, "out.png"); err != nil {
//	    log.Fatal(err)
//	}
package imaging

import (
	"image"

	"github.com/born-ml/neuralstyle/internal/imaging"
	"github.com/born-ml/neuralstyle/internal/tensor"
)

// ImageNet channel statistics used for normalization.
var (
	Mean = imaging.Mean
	Std  = imaging.Std
)

// DefaultMaxSize caps the longer image side when no explicit shape is
// requested.
const DefaultMaxSize = imaging.DefaultMaxSize

// LoadOptions controls the resize policy and the HTTP client used for
// URL sources.
type LoadOptions = imaging.LoadOptions

// RetrievalError reports an image source that could not be fetched or
// decoded.
type RetrievalError = imaging.RetrievalError

// Load reads an image from a path or URL and returns it as a
// normalized [1, 3, height, width] tensor.
//
// PNG, JPEG, GIF and WebP sources are decoded; the alpha channel, if
// present, is dropped. Failures to fetch or decode are reported as
// *RetrievalError.
func Load(source string, opts LoadOptions) (*tensor.Tensor, error) {
	return imaging.Load(source, opts)
}

// ToImage denormalizes a [1, 3, H, W] tensor into an RGBA image,
// clamping values to the displayable range.
func ToImage(t *tensor.Tensor) *image.RGBA {
	return imaging.ToImage(t)
}

// SavePNG denormalizes a tensor and writes it to path as a PNG file.
func SavePNG(t *tensor.Tensor, path string) error {
	return imaging.SavePNG(t, path)
}
