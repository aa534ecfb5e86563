// Package imaging converts raster images to and from the normalized
// tensors the feature extractor consumes.
//
// Load fetches an image from a filesystem path or an HTTP(S) URL,
// decodes it (PNG, JPEG, GIF and WebP), applies the resize policy and
// returns a [1, 3, H, W] float32 tensor normalized with the ImageNet
// channel statistics. ToImage and SavePNG invert the transform for
// export.
package imaging

import (
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"

	"github.com/born-ml/neuralstyle/internal/tensor"
)

// Mean and Std are the ImageNet channel statistics the feature
// extractor was pretrained with. Tensors produced by Load are
// normalized as (value - mean) / std per channel.
var (
	Mean = [3]float32{0.485, 0.456, 0.406}
	Std  = [3]float32{0.229, 0.224, 0.225}
)

// DefaultMaxSize caps the longer image side when no explicit shape is
// requested. Style transfer cost grows quadratically with resolution,
// so inputs are kept small by default.
const DefaultMaxSize = 400

const defaultFetchTimeout = 30 * time.Second

// RetrievalError reports an image source that could not be fetched or
// decoded. It aborts a run before the optimization loop starts.
type RetrievalError struct {
	Source string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to retrieve image %s: %v", e.Source, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// LoadOptions controls the resize policy and the HTTP client used for
// URL sources.
type LoadOptions struct {
	// MaxSize caps the longer side of the decoded image. Zero means
	// DefaultMaxSize. Images already within the cap are not resized.
	MaxSize int

	// Shape, when both dimensions are positive, forces the output to
	// exactly (height, width) and overrides MaxSize. The style image is
	// loaded this way so its tensor matches the content image's shape.
	Shape [2]int

	// Client fetches URL sources. Nil means a default client with a
	// 30 second timeout.
	Client *http.Client
}

// Load reads an image from a path or URL and returns it as a normalized
// [1, 3, height, width] tensor. The alpha channel, if present, is
// dropped. Failures to fetch or decode are reported as *RetrievalError.
func Load(source string, opts LoadOptions) (*tensor.Tensor, error) {
	body, err := fetch(source, opts.Client)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	img, _, err := image.Decode(body)
	if err != nil {
		return nil, &RetrievalError{Source: source, Err: fmt.Errorf("failed to decode: %w", err)}
	}

	return toTensor(applyResizePolicy(img, opts))
}

func fetch(source string, client *http.Client) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if client == nil {
			client = &http.Client{Timeout: defaultFetchTimeout}
		}
		resp, err := client.Get(source)
		if err != nil {
			return nil, &RetrievalError{Source: source, Err: err}
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &RetrievalError{Source: source, Err: fmt.Errorf("bad response status: %s", resp.Status)}
		}
		return resp.Body, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, &RetrievalError{Source: source, Err: err}
	}
	return f, nil
}

// applyResizePolicy scales the image per the options: an explicit shape
// wins; otherwise the longer side is capped at MaxSize and the aspect
// ratio is preserved. Images are never upsized by the cap.
func applyResizePolicy(img image.Image, opts LoadOptions) image.Image {
	if opts.Shape[0] > 0 && opts.Shape[1] > 0 {
		return resize.Resize(uint(opts.Shape[1]), uint(opts.Shape[0]), img, resize.Bilinear)
	}

	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longer := w
	if h > w {
		longer = h
	}
	if longer <= maxSize {
		return img
	}
	if h >= w {
		return resize.Resize(0, uint(maxSize), img, resize.Bilinear)
	}
	return resize.Resize(uint(maxSize), 0, img, resize.Bilinear)
}

// toTensor packs the image into channel planes (all red values, then
// green, then blue) and normalizes each channel.
func toTensor(img image.Image) (*tensor.Tensor, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	plane := h * w

	data := make([]float32, 3*plane)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			data[i] = (float32(r>>8)/255 - Mean[0]) / Std[0]
			data[plane+i] = (float32(g>>8)/255 - Mean[1]) / Std[1]
			data[2*plane+i] = (float32(b>>8)/255 - Mean[2]) / Std[2]
			i++
		}
	}

	return tensor.FromFloat32(data, tensor.Shape{1, 3, h, w})
}
