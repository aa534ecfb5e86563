package transfer

import (
	"fmt"
	"strings"

	"github.com/born-ml/neuralstyle/internal/vgg"
)

// Config holds the optimization hyperparameters.
//
// Build it with DefaultConfig and override fields as needed. A zero
// StyleWeight is meaningful (it disables the style term), so the zero
// value of Config is not a usable configuration.
type Config struct {
	// ContentWeight scales the content loss term (alpha).
	ContentWeight float32

	// StyleWeight scales the summed style loss term (beta). The
	// style-to-content ratio, not either value alone, controls how
	// strongly the result is stylized.
	StyleWeight float32

	// StyleWeights maps style layer names to their per-layer weights.
	// Earlier layers emphasize fine texture, later ones larger motifs.
	StyleWeights map[string]float32

	// ContentLayer names the layer whose activations define the
	// content representation.
	ContentLayer string

	// LearningRate is the Adam step size for the pixel updates.
	LearningRate float32

	// Steps is the total number of optimization iterations.
	Steps int

	// ShowEvery is the reporting interval in steps. Step 0 is always
	// reported, so a run sees Steps/ShowEvery + 1 reports. Zero
	// disables reporting.
	ShowEvery int
}

// DefaultConfig returns the standard Gatys configuration: content from
// conv4_2, style from the first convolution of each block with weights
// decaying from 1.0 to 0.1, and a style-to-content ratio of 1e6.
func DefaultConfig() Config {
	return Config{
		ContentWeight: 1,
		StyleWeight:   1e6,
		StyleWeights: map[string]float32{
			"conv1_1": 1.0,
			"conv2_1": 0.8,
			"conv3_1": 0.5,
			"conv4_1": 0.3,
			"conv5_1": 0.1,
		},
		ContentLayer: "conv4_2",
		LearningRate: 0.003,
		Steps:        2001,
		ShowEvery:    200,
	}
}

// validate checks the configuration before a run.
func (c Config) validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %g", c.LearningRate)
	}
	if c.ShowEvery < 0 {
		return fmt.Errorf("show every must not be negative, got %d", c.ShowEvery)
	}
	if c.ContentWeight < 0 {
		return fmt.Errorf("content weight must not be negative, got %g", c.ContentWeight)
	}
	if c.StyleWeight < 0 {
		return fmt.Errorf("style weight must not be negative, got %g", c.StyleWeight)
	}
	if !vgg.KnownLayer(c.ContentLayer) {
		return fmt.Errorf("unknown content layer %q, valid layers: %s",
			c.ContentLayer, strings.Join(vgg.LayerNames(), ", "))
	}
	if len(c.StyleWeights) == 0 {
		return fmt.Errorf("at least one style layer weight is required")
	}
	for name, weight := range c.StyleWeights {
		if !vgg.KnownLayer(name) {
			return fmt.Errorf("unknown style layer %q, valid layers: %s",
				name, strings.Join(vgg.LayerNames(), ", "))
		}
		if weight < 0 {
			return fmt.Errorf("style layer %s has negative weight %g", name, weight)
		}
	}
	return nil
}
