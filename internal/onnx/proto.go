package onnx

// ONNX protobuf data structures (hand-written).
//
// Only the messages on the weight-extraction path are modeled. Graph
// nodes, attributes and type annotations are skipped by the parser.

// ModelProto represents an ONNX model.
type ModelProto struct {
	IRVersion       int64           // IR version (e.g., 7, 8, 9)
	OpsetImport     []OperatorSetID // Opset version(s)
	ProducerName    string          // Framework name (e.g., "pytorch")
	ProducerVersion string          // Framework version
	Graph           *GraphProto     // Computation graph
}

// GraphProto represents the computation graph.
//
// For weight extraction only the initializers matter; inputs and
// outputs are retained for diagnostics.
type GraphProto struct {
	Name         string           // Graph name
	Initializers []TensorProto    // Weight tensors
	Inputs       []ValueInfoProto // Graph inputs
	Outputs      []ValueInfoProto // Graph outputs
}

// TensorProto represents a weight tensor.
type TensorProto struct {
	Name         string    // Tensor name (e.g., "features.0.weight")
	DataType     int32     // Element data type
	Dims         []int64   // Tensor shape
	RawData      []byte    // Raw little-endian data (most common)
	FloatData    []float32 // Float32 data (legacy encoding)
	DataLocation int64     // 0 = inline, 1 = external file
}

// ValueInfoProto names a graph input or output. Type annotations are
// not parsed.
type ValueInfoProto struct {
	Name string
}

// OperatorSetID identifies an opset version.
type OperatorSetID struct {
	Domain  string // Operator domain (empty for default)
	Version int64  // Opset version number
}

// ONNX data types (TensorProto.DataType).
const (
	TensorProtoUndefined = 0
	TensorProtoFloat     = 1  // float32
	TensorProtoUint8     = 2  // uint8
	TensorProtoInt8      = 3  // int8
	TensorProtoUint16    = 4  // uint16
	TensorProtoInt16     = 5  // int16
	TensorProtoInt32     = 6  // int32
	TensorProtoInt64     = 7  // int64
	TensorProtoString    = 8  // string
	TensorProtoBool      = 9  // bool
	TensorProtoFloat16   = 10 // float16
	TensorProtoDouble    = 11 // float64
)

// TensorProto.DataLocation values.
const (
	DataLocationDefault  = 0
	DataLocationExternal = 1
)
