// Package transfer provides the neural style transfer engine.
//
// This package wraps the internal implementation and provides a clean
// public API for synthesizing an image that keeps one image's content
// and another's style.
//
// Components:
//   - Engine: the optimization loop over the synthesized pixels
//   - Config: loss weights, layer choices and loop parameters
//   - Reporter: progress sinks (logs, JSONL history, PNG snapshots)
//
// Example usage:
//
//	import (
//	    "github.com/born-ml/neuralstyle/autodiff"
//	    "github.com/born-ml/neuralstyle/backend/cpu"
//	    "github.com/born-ml/neuralstyle/imaging"
//	    "github.com/born-ml/neuralstyle/transfer"
//	    "github.com/born-ml/neuralstyle/vgg"
//	)
//
//	backend := autodiff.New(cpu.New())
//	net, err := vgg.Load("vgg19.nsw", backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	engine, err := transfer.New(transfer.DefaultConfig(), backend, net, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	target, history, err := engine.Run(content, style)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = imaging.SavePNG(target, "out.png")
package transfer

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/born-ml/neuralstyle/internal/autodiff"
	"github.com/born-ml/neuralstyle/internal/tensor"
	"github.com/born-ml/neuralstyle/internal/transfer"
	"github.com/born-ml/neuralstyle/internal/vgg"
)

// Configuration

// Config holds the knobs of a style transfer run.
type Config = transfer.Config

// DefaultConfig returns the parameters used for the reference results:
// content weight 1, style weight 1e6, content layer conv4_2, the five
// classic style layers, Adam at 0.003 for 2001 steps.
func DefaultConfig() Config {
	return transfer.DefaultConfig()
}

// Engine

// Engine runs the style transfer optimization loop.
type Engine[B tensor.Backend] = transfer.Engine[B]

// ErrDiverged reports a run whose total loss left the float32 range.
var ErrDiverged = transfer.ErrDiverged

// New creates an engine. The network must have been built on the same
// autodiff backend.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	net, _ := vgg.Load("vgg19.nsw", backend)
//	engine, err := transfer.New(transfer.DefaultConfig(), backend, net, nil)
func New[B tensor.Backend](
	config Config,
	backend *autodiff.AutodiffBackend[B],
	net *vgg.Network,
	logger *logrus.Logger,
	reporters ...Reporter,
) (*Engine[B], error) {
	return transfer.New(config, backend, net, logger, reporters...)
}

// Reporting

// Metrics is one step's loss breakdown.
type Metrics = transfer.Metrics

// Reporter receives metrics and image snapshots during a run.
type Reporter = transfer.Reporter

// LogReporter writes metrics to a structured logger.
type LogReporter = transfer.LogReporter

// NewLogReporter creates a reporter that logs each reported step.
func NewLogReporter(logger *logrus.Logger) *LogReporter {
	return transfer.NewLogReporter(logger)
}

// HistoryWriter appends metrics to a writer as JSON lines.
type HistoryWriter = transfer.HistoryWriter

// NewHistoryWriter creates a reporter that records the loss history.
func NewHistoryWriter(w io.Writer) *HistoryWriter {
	return transfer.NewHistoryWriter(w)
}

// SnapshotWriter saves intermediate images into a directory.
type SnapshotWriter = transfer.SnapshotWriter

// NewSnapshotWriter creates a reporter that writes step_NNNNN.png
// files into dir. The directory must exist.
func NewSnapshotWriter(dir string) *SnapshotWriter {
	return transfer.NewSnapshotWriter(dir)
}

// Gram computes the channel co-activation matrix of a feature map.
// Exported for callers building custom style losses.
func Gram(feature *tensor.Tensor, backend tensor.Backend) *tensor.Tensor {
	return transfer.Gram(feature, backend)
}
