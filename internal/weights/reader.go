package weights

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Reader opens .nsw files and loads their tensors.
//
// Open parses and validates the headers; the data section is only read
// (and its checksum verified) when ReadBundle is called, so inspecting
// a file's tensor table stays cheap.
type Reader struct {
	file       *os.File
	header     Header
	checksum   [ChecksumSize]byte
	dataOffset int64
	dataSize   int64
	closed     bool
}

// Open opens a weight bundle and parses its headers. The caller must
// call Close.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open weight bundle: %w", err)
	}
	r := &Reader{file: file}
	if err := r.readHeader(); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) readHeader() error {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r.file, fixed); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixed[0:4]) != MagicBytes {
		return fmt.Errorf("%w: got %q, expected %q", ErrInvalidMagic, fixed[0:4], MagicBytes)
	}
	version := binary.LittleEndian.Uint32(fixed[0x04:])
	if version != FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	headerSize := binary.LittleEndian.Uint64(fixed[0x10:])
	if headerSize == 0 || headerSize > maxHeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}
	r.dataSize = int64(binary.LittleEndian.Uint64(fixed[0x18:]))
	if r.dataSize < 0 {
		return fmt.Errorf("invalid data section size %d", r.dataSize)
	}
	copy(r.checksum[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r.file, headerJSON); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if err := json.Unmarshal(headerJSON, &r.header); err != nil {
		return fmt.Errorf("failed to parse header: %w", err)
	}

	r.dataOffset = int64(FixedHeaderSize) + int64(headerSize)
	r.dataOffset += paddingFor(r.dataOffset)

	return r.validateTensorTable()
}

// validateTensorTable checks every tensor record against the data
// section bounds before anything is read.
func (r *Reader) validateTensorTable() error {
	for i := range r.header.Tensors {
		m := &r.header.Tensors[i]
		if m.Name == "" {
			return fmt.Errorf("tensor %d has no name", i)
		}
		if m.DType != DTypeFloat32 {
			return fmt.Errorf("tensor %q has unsupported dtype %q", m.Name, m.DType)
		}
		for _, d := range m.Shape {
			if d <= 0 {
				return fmt.Errorf("tensor %q has invalid shape %v", m.Name, m.Shape)
			}
		}
		if m.Size != m.NumElements()*4 {
			return fmt.Errorf("tensor %q: shape %v does not match size %d bytes", m.Name, m.Shape, m.Size)
		}
		if m.Offset < 0 || m.Offset+m.Size > r.dataSize {
			return fmt.Errorf("%w: tensor %q at [%d, %d)", ErrOutOfBounds, m.Name, m.Offset, m.Offset+m.Size)
		}
	}
	return nil
}

// Header returns the parsed JSON header.
func (r *Reader) Header() Header {
	return r.header
}

// TensorNames returns tensor names in file order.
func (r *Reader) TensorNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, m := range r.header.Tensors {
		names[i] = m.Name
	}
	return names
}

// ReadBundle reads the full data section, verifies its checksum and
// decodes every tensor.
func (r *Reader) ReadBundle() (*Bundle, error) {
	if r.closed {
		return nil, errors.New("reader is closed")
	}
	data := make([]byte, r.dataSize)
	if _, err := r.file.ReadAt(data, r.dataOffset); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if sha256.Sum256(data) != r.checksum {
		return nil, ErrChecksumMismatch
	}

	bundle := NewBundle()
	for _, m := range r.header.Tensors {
		raw := data[m.Offset : m.Offset+m.Size]
		values := make([]float32, m.Size/4)
		for i := range values {
			values[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		if err := bundle.Add(m.Name, m.Shape, values); err != nil {
			return nil, fmt.Errorf("failed to decode tensor table: %w", err)
		}
	}
	return bundle, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}
