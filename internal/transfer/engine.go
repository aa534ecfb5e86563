package transfer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/born-ml/neuralstyle/internal/autodiff"
	"github.com/born-ml/neuralstyle/internal/imaging"
	"github.com/born-ml/neuralstyle/internal/nn"
	"github.com/born-ml/neuralstyle/internal/optim"
	"github.com/born-ml/neuralstyle/internal/tensor"
	"github.com/born-ml/neuralstyle/internal/vgg"
)

// ErrDiverged reports that the total loss left the range of finite
// floats, usually from a learning rate far too large.
var ErrDiverged = errors.New("loss diverged")

// Engine runs the style transfer optimization loop.
//
// The engine owns nothing but references: the extractor network, the
// autodiff backend whose tape records the forward passes, and the
// reporters that observe progress. One engine can run any number of
// times; every run starts from a fresh copy of the content image.
type Engine[B tensor.Backend] struct {
	config    Config
	backend   *autodiff.AutodiffBackend[B]
	net       *vgg.Network
	logger    *logrus.Logger
	reporters []Reporter

	// styleLayers holds the configured style layers in forward-pass
	// order; layers additionally includes the content layer.
	styleLayers []string
	layers      []string
}

// New creates an engine. The network must have been built on the same
// backend, otherwise its forward passes would bypass the engine's tape
// and no gradients could reach the pixels.
func New[B tensor.Backend](
	config Config,
	backend *autodiff.AutodiffBackend[B],
	net *vgg.Network,
	logger *logrus.Logger,
	reporters ...Reporter,
) (*Engine[B], error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if net.Backend() != tensor.Backend(backend) {
		return nil, errors.New("network must be built on the engine's autodiff backend")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	styleLayers, layers := planLayers(config)
	return &Engine[B]{
		config:      config,
		backend:     backend,
		net:         net,
		logger:      logger,
		reporters:   reporters,
		styleLayers: styleLayers,
		layers:      layers,
	}, nil
}

// planLayers orders the configured layers to match the forward pass, so
// loss accumulation visits them in the same order every run.
func planLayers(config Config) (styleLayers, layers []string) {
	for _, name := range vgg.LayerNames() {
		_, isStyle := config.StyleWeights[name]
		if isStyle {
			styleLayers = append(styleLayers, name)
		}
		if isStyle || name == config.ContentLayer {
			layers = append(layers, name)
		}
	}
	return styleLayers, layers
}

// Run synthesizes a new image from a content and a style image.
//
// Both tensors must be normalized (1, 3, H, W) batches with identical
// shapes; load the style image with its Shape option set to the content
// image's height and width. The returned tensor holds the final
// normalized pixels, and history holds one entry per reported step.
//
// The loop is single threaded; parallelism lives inside the backend's
// operations. Run fails with ErrDiverged if the loss stops being
// finite.
func (e *Engine[B]) Run(content, style *tensor.Tensor) (*tensor.Tensor, []Metrics, error) {
	if !content.Shape().Equal(style.Shape()) {
		return nil, nil, fmt.Errorf("style shape %v does not match content shape %v",
			style.Shape(), content.Shape())
	}

	tape := e.backend.Tape()
	tape.StopRecording()
	tape.Clear()
	defer func() {
		tape.StopRecording()
		tape.Clear()
	}()

	// The extractor stays frozen; its weights never take gradients.
	for _, p := range e.net.Parameters() {
		tape.MarkConstant(p.Tensor())
	}

	// Reference activations are fixed for the whole run, so they are
	// computed once with recording off.
	contentTarget := e.net.Extract(content, []string{e.config.ContentLayer})[e.config.ContentLayer]
	tape.MarkConstant(contentTarget)

	styleFeatures := e.net.Extract(style, e.styleLayers)
	styleGrams := make(map[string]*tensor.Tensor, len(e.styleLayers))
	for _, name := range e.styleLayers {
		gram := Gram(styleFeatures[name], e.backend)
		tape.MarkConstant(gram)
		styleGrams[name] = gram
	}

	// The synthesized image starts as a deep copy of the content
	// pixels. The optimizer writes through this buffer in place, so it
	// must not share storage with the caller's tensor.
	target := content.Copy()
	param := nn.NewParameter("target", target)
	optimizer := optim.NewAdam([]*nn.Parameter{param}, optim.AdamConfig{
		LR: e.config.LearningRate,
	})

	e.logger.WithFields(logrus.Fields{
		"steps":         e.config.Steps,
		"learning_rate": e.config.LearningRate,
		"content_layer": e.config.ContentLayer,
		"style_layers":  len(e.styleLayers),
		"shape":         content.Shape(),
	}).Info("starting style transfer")

	start := time.Now()
	var history []Metrics
	var last Metrics

	tape.StartRecording()
	for step := 0; step < e.config.Steps; step++ {
		features := e.net.Extract(target, e.layers)

		contentLoss := mseLoss(e.backend, features[e.config.ContentLayer], contentTarget)
		styleTerm := styleLoss(e.backend, features, styleGrams, e.styleLayers, e.config.StyleWeights)
		totalLoss := e.backend.Add(
			e.backend.MulScalar(contentLoss, e.config.ContentWeight),
			e.backend.MulScalar(styleTerm, e.config.StyleWeight),
		)

		last = Metrics{
			Step:    step,
			Content: contentLoss.AsFloat32()[0],
			Style:   styleTerm.AsFloat32()[0],
			Total:   totalLoss.AsFloat32()[0],
		}
		if math.IsNaN(float64(last.Total)) || math.IsInf(float64(last.Total), 0) {
			return nil, history, fmt.Errorf("%w at step %d: total loss %g", ErrDiverged, step, last.Total)
		}

		if e.config.ShowEvery > 0 && step%e.config.ShowEvery == 0 {
			history = append(history, last)
			e.publish(last, target)
		}

		seed, err := tensor.Ones(tensor.Shape{1})
		if err != nil {
			return nil, history, fmt.Errorf("failed to seed backward pass: %w", err)
		}
		grads := tape.Backward(seed, e.backend)
		optimizer.Step(grads)
		tape.Clear()
	}

	e.logger.WithFields(logrus.Fields{
		"steps":      e.config.Steps,
		"total_loss": last.Total,
		"duration":   time.Since(start).Round(time.Millisecond),
	}).Info("style transfer complete")

	return target, history, nil
}

// publish renders the target once and fans it out to every reporter.
func (e *Engine[B]) publish(m Metrics, target *tensor.Tensor) {
	if len(e.reporters) == 0 {
		return
	}
	img := imaging.ToImage(target)
	for _, r := range e.reporters {
		r.Report(m)
		r.Snapshot(m.Step, img)
	}
}
