// Package onnx provides ONNX weight extraction for the style transfer
// pipeline.
//
// This package parses the ONNX (Open Neural Network Exchange) protobuf
// format far enough to pull initializer tensors out of a model file.
// It is not an inference runtime: graph nodes, attributes and type
// annotations are skipped.
//
// # Supported Features
//
//   - ONNX protobuf parsing without a generated protobuf dependency
//   - Initializer (weight) extraction by name
//   - Raw little-endian and legacy float_data encodings
//   - Float32 tensors
//
// # Example Usage
//
//	import "github.com/born-ml/neuralstyle/onnx"
//
//	model, err := onnx.ParseFile("vgg19.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Producer:", model.ProducerName)
//	fmt.Println("Opset:", model.OpsetVersion())
//
//	weight, ok := model.Graph.Initializer("features.0.weight")
//	if ok {
//	    values, err := weight.Floats()
//	    // ...
//	}
//
// Tensors stored in external data files report [ErrExternalData] from
// Floats.
package onnx

import (
	internalonnx "github.com/born-ml/neuralstyle/internal/onnx"
)

// ModelProto represents a parsed ONNX model.
type ModelProto = internalonnx.ModelProto

// GraphProto represents the computation graph of a model.
type GraphProto = internalonnx.GraphProto

// TensorProto represents a weight tensor.
type TensorProto = internalonnx.TensorProto

// ONNX data types (TensorProto.DataType).
const (
	TensorProtoFloat  = internalonnx.TensorProtoFloat
	TensorProtoDouble = internalonnx.TensorProtoDouble
)

// TensorProto.DataLocation values.
const (
	DataLocationDefault  = internalonnx.DataLocationDefault
	DataLocationExternal = internalonnx.DataLocationExternal
)

// ErrExternalData reports a tensor whose payload lives in an external
// data file next to the model.
var ErrExternalData = internalonnx.ErrExternalData

// ParseFile reads and parses an ONNX model from disk.
//
// Example:
//
//	model, err := onnx.ParseFile("vgg19.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d initializers\n", len(model.Graph.Initializers))
func ParseFile(path string) (*ModelProto, error) {
	return internalonnx.ParseFile(path)
}

// Parse parses an ONNX model from raw bytes.
//
// This is useful when the model is embedded in the binary or loaded
// from a network source.
func Parse(data []byte) (*ModelProto, error) {
	return internalonnx.Parse(data)
}
