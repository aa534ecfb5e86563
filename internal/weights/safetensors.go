package weights

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// SafeTensors layout:
//
//	[8 bytes: header size (uint64 LE)]
//	[header size bytes: JSON header]
//	[tensor data: raw bytes]
//
// The JSON header maps tensor names to their dtype, shape and data
// offsets, plus an optional "__metadata__" object.

// safeTensorInfo describes one tensor in a SafeTensors header.
type safeTensorInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// IsSafeTensors reports whether the first bytes of a file look like a
// SafeTensors header: a sane little-endian header size followed by the
// opening brace of the JSON header.
func IsSafeTensors(prefix []byte) bool {
	if len(prefix) < 9 {
		return false
	}
	size := binary.LittleEndian.Uint64(prefix[:8])
	return size > 0 && size <= maxHeaderSize && prefix[8] == '{'
}

// ReadSafeTensors loads a SafeTensors file into a Bundle.
//
// Only F32 tensors are supported; files produced from half-precision
// checkpoints must be converted first. When keep is non-nil, tensors it
// rejects are skipped without being read. Entries are added in data
// offset order, so the bundle follows the file layout.
func ReadSafeTensors(path string, keep func(name string) bool) (*Bundle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize == 0 || headerSize > maxHeaderSize {
		return nil, fmt.Errorf("header size %d: %w", headerSize, ErrHeaderTooLarge)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rawHeader map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &rawHeader); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	type namedInfo struct {
		name string
		info safeTensorInfo
	}
	infos := make([]namedInfo, 0, len(rawHeader))
	for name, raw := range rawHeader {
		if name == "__metadata__" {
			continue
		}
		var info safeTensorInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, fmt.Errorf("failed to parse tensor %s: %w", name, err)
		}
		if keep != nil && !keep(name) {
			continue
		}
		infos = append(infos, namedInfo{name: name, info: info})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].info.DataOffsets[0] < infos[j].info.DataOffsets[0]
	})

	dataOffset := int64(8) + int64(headerSize)
	bundle := NewBundle()
	for _, entry := range infos {
		values, err := readSafeTensorValues(file, dataOffset, entry.name, entry.info)
		if err != nil {
			return nil, err
		}
		if err := bundle.Add(entry.name, entry.info.Shape, values); err != nil {
			return nil, fmt.Errorf("failed to collect %s: %w", entry.name, err)
		}
	}
	return bundle, nil
}

// readSafeTensorValues reads and decodes one tensor's data section.
func readSafeTensorValues(file *os.File, dataOffset int64, name string, info safeTensorInfo) ([]float32, error) {
	if info.DType != "F32" {
		return nil, fmt.Errorf("tensor %s has dtype %s, only F32 is supported", name, info.DType)
	}

	elements := 1
	for _, dim := range info.Shape {
		if dim <= 0 {
			return nil, fmt.Errorf("tensor %s has invalid dimension %d", name, dim)
		}
		elements *= dim
	}

	start, end := info.DataOffsets[0], info.DataOffsets[1]
	if start < 0 || end < start {
		return nil, fmt.Errorf("tensor %s has invalid data offsets [%d, %d]", name, start, end)
	}
	if end-start != int64(elements)*4 {
		return nil, fmt.Errorf("tensor %s data size %d does not match shape %v",
			name, end-start, info.Shape)
	}

	data := make([]byte, end-start)
	if _, err := file.ReadAt(data, dataOffset+start); err != nil {
		return nil, fmt.Errorf("failed to read tensor %s: %w", name, err)
	}

	values := make([]float32, elements)
	for i := range values {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		values[i] = math.Float32frombits(bits)
	}
	return values, nil
}
