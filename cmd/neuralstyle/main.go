// Package main provides the neuralstyle CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/born-ml/neuralstyle/internal/autodiff"
	"github.com/born-ml/neuralstyle/internal/backend/cpu"
	"github.com/born-ml/neuralstyle/internal/imaging"
	"github.com/born-ml/neuralstyle/internal/onnx"
	"github.com/born-ml/neuralstyle/internal/transfer"
	"github.com/born-ml/neuralstyle/internal/vgg"
	"github.com/born-ml/neuralstyle/internal/weights"
)

const version = "v0.1.0"

func main() {
	logger := logrus.New()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(os.Args[2:], logger)
	case "convert":
		err = convertCmd(os.Args[2:], logger)
	case "version":
		fmt.Printf("neuralstyle %s\n", version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.WithError(err).Fatal("command failed")
	}
}

func usage() {
	fmt.Println("neuralstyle - neural style transfer on the CPU")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  run        Synthesize an image from a content and a style image")
	fmt.Println("  convert    Convert VGG19 weights from ONNX to the native format")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("Run 'neuralstyle <command> -h' for command flags.")
}

func runCmd(args []string, logger *logrus.Logger) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)

	defaults := transfer.DefaultConfig()
	var (
		contentPath   = fs.String("content", "", "content image: file path or http(s) URL (required)")
		stylePath     = fs.String("style", "", "style image: file path or http(s) URL (required)")
		weightsPath   = fs.String("weights", "", "VGG19 weights: .nsw, .safetensors or .onnx (required)")
		outPath       = fs.String("out", "target.png", "output image path")
		maxSize       = fs.Int("max-size", imaging.DefaultMaxSize, "cap on the longer image side in pixels")
		steps         = fs.Int("steps", defaults.Steps, "number of optimization steps")
		learningRate  = fs.Float64("lr", float64(defaults.LearningRate), "Adam learning rate")
		contentWeight = fs.Float64("content-weight", float64(defaults.ContentWeight), "content loss weight (alpha)")
		styleWeight   = fs.Float64("style-weight", float64(defaults.StyleWeight), "style loss weight (beta)")
		showEvery     = fs.Int("show-every", defaults.ShowEvery, "reporting interval in steps")
		historyPath   = fs.String("history", "", "write per-report losses as JSON lines to this file")
		snapshotDir   = fs.String("snapshots", "", "write intermediate images into this directory")
		verbose       = fs.Bool("verbose", false, "log at debug level")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *contentPath == "" || *stylePath == "" || *weightsPath == "" {
		fs.Usage()
		return fmt.Errorf("-content, -style and -weights are required")
	}
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	content, err := imaging.Load(*contentPath, imaging.LoadOptions{MaxSize: *maxSize})
	if err != nil {
		return err
	}
	shape := content.Shape()
	logger.WithFields(logrus.Fields{
		"source": *contentPath,
		"height": shape[2],
		"width":  shape[3],
	}).Info("loaded content image")

	// The style image is forced to the content's size so feature maps
	// line up at every layer.
	style, err := imaging.Load(*stylePath, imaging.LoadOptions{Shape: [2]int{shape[2], shape[3]}})
	if err != nil {
		return err
	}
	logger.WithField("source", *stylePath).Info("loaded style image")

	backend := autodiff.New(cpu.New())
	net, err := vgg.Load(*weightsPath, backend)
	if err != nil {
		return err
	}
	logger.WithField("path", *weightsPath).Info("loaded vgg19 weights")

	config := defaults
	config.Steps = *steps
	config.LearningRate = float32(*learningRate)
	config.ContentWeight = float32(*contentWeight)
	config.StyleWeight = float32(*styleWeight)
	config.ShowEvery = *showEvery

	reporters := []transfer.Reporter{transfer.NewLogReporter(logger)}

	var history *transfer.HistoryWriter
	if *historyPath != "" {
		file, err := os.Create(*historyPath)
		if err != nil {
			return fmt.Errorf("failed to create history file: %w", err)
		}
		defer file.Close()
		history = transfer.NewHistoryWriter(file)
		reporters = append(reporters, history)
	}

	var snapshots *transfer.SnapshotWriter
	if *snapshotDir != "" {
		if err := os.MkdirAll(*snapshotDir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		snapshots = transfer.NewSnapshotWriter(*snapshotDir)
		reporters = append(reporters, snapshots)
	}

	engine, err := transfer.New(config, backend, net, logger, reporters...)
	if err != nil {
		return err
	}

	target, _, err := engine.Run(content, style)
	if err != nil {
		return err
	}
	if history != nil && history.Err() != nil {
		return history.Err()
	}
	if snapshots != nil && snapshots.Err() != nil {
		return snapshots.Err()
	}

	if err := imaging.SavePNG(target, *outPath); err != nil {
		return err
	}
	logger.WithField("path", *outPath).Info("wrote synthesized image")
	return nil
}

func convertCmd(args []string, logger *logrus.Logger) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var (
		inPath  = fs.String("in", "", "ONNX model file holding VGG19 weights (required)")
		outPath = fs.String("out", "", "output weights file (default: input with .nsw extension)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		fs.Usage()
		return fmt.Errorf("-in is required")
	}
	if *outPath == "" {
		*outPath = strings.TrimSuffix(*inPath, filepath.Ext(*inPath)) + ".nsw"
	}

	model, err := onnx.ParseFile(*inPath)
	if err != nil {
		return err
	}
	bundle, err := vgg.BundleFromONNX(model)
	if err != nil {
		return err
	}

	writer, err := weights.NewWriter(*outPath)
	if err != nil {
		return err
	}
	header := weights.Header{
		Producer: "neuralstyle " + version,
		Arch:     "vgg19",
		Metadata: map[string]string{"source": filepath.Base(*inPath)},
	}
	if err := writer.Write(bundle, header); err != nil {
		writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"tensors": bundle.Len(),
		"path":    *outPath,
	}).Info("converted weights")
	return nil
}
