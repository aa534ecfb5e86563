package onnx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrExternalData reports a tensor whose payload lives in a side file
// (TensorProto.data_location == EXTERNAL). Such models must be
// re-exported with the weights inlined before they can be converted.
var ErrExternalData = errors.New("onnx: tensor data is stored externally")

// OpsetVersion returns the default-domain opset version, or 0 if the
// model does not declare one.
func (m *ModelProto) OpsetVersion() int64 {
	for _, opset := range m.OpsetImport {
		if opset.Domain == "" || opset.Domain == "ai.onnx" {
			return opset.Version
		}
	}
	return 0
}

// Initializer looks up a weight tensor by name.
func (g *GraphProto) Initializer(name string) (*TensorProto, bool) {
	for i := range g.Initializers {
		if g.Initializers[i].Name == name {
			return &g.Initializers[i], true
		}
	}
	return nil, false
}

// Shape returns the tensor dimensions as ints.
func (t *TensorProto) Shape() []int {
	shape := make([]int, len(t.Dims))
	for i, d := range t.Dims {
		shape[i] = int(d)
	}
	return shape
}

// NumElements returns the element count implied by the dims.
func (t *TensorProto) NumElements() int {
	n := 1
	for _, d := range t.Dims {
		n *= int(d)
	}
	return n
}

// Floats returns the tensor's float32 payload.
//
// Handles both encodings ONNX exporters emit: raw little-endian bytes
// (raw_data) and the legacy packed float_data field. The payload length
// is validated against the dims.
func (t *TensorProto) Floats() ([]float32, error) {
	if t.DataLocation == DataLocationExternal {
		return nil, fmt.Errorf("%w: %s", ErrExternalData, t.Name)
	}
	if t.DataType != TensorProtoFloat {
		return nil, fmt.Errorf("onnx: tensor %s has data type %d, want float32", t.Name, t.DataType)
	}

	n := t.NumElements()

	if len(t.RawData) > 0 {
		if len(t.RawData) != 4*n {
			return nil, fmt.Errorf("onnx: tensor %s has %d raw bytes, want %d for shape %v",
				t.Name, len(t.RawData), 4*n, t.Dims)
		}
		out := make([]float32, n)
		for i := range out {
			bits := binary.LittleEndian.Uint32(t.RawData[4*i:])
			out[i] = math.Float32frombits(bits)
		}
		return out, nil
	}

	if len(t.FloatData) > 0 {
		if len(t.FloatData) != n {
			return nil, fmt.Errorf("onnx: tensor %s has %d float values, want %d for shape %v",
				t.Name, len(t.FloatData), n, t.Dims)
		}
		out := make([]float32, n)
		copy(out, t.FloatData)
		return out, nil
	}

	return nil, fmt.Errorf("onnx: tensor %s has no data", t.Name)
}
