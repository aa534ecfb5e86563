package weights

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// Writer serializes bundles to .nsw files.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates the output file. The caller must call Close.
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create weight bundle: %w", err)
	}
	return &Writer{file: file}, nil
}

// Write serializes the bundle. Producer, Arch and Metadata may be
// pre-filled in header; the format version, creation time and tensor
// table are owned by the writer and overwritten here. Tensors land in
// the data section in bundle order.
func (w *Writer) Write(bundle *Bundle, header Header) error {
	if w.closed {
		return errors.New("writer is closed")
	}

	header.FormatVersion = FormatVersion
	header.CreatedAt = time.Now().UTC()
	header.Tensors = make([]TensorMeta, 0, bundle.Len())

	var data bytes.Buffer
	for _, e := range bundle.Entries() {
		size := int64(len(e.Values)) * 4
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   e.Name,
			DType:  DTypeFloat32,
			Shape:  append([]int(nil), e.Shape...),
			Offset: int64(data.Len()),
			Size:   size,
		})
		buf := make([]byte, size)
		for i, v := range e.Values {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
		}
		data.Write(buf)
	}

	headerJSON, err := json.Marshal(&header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > maxHeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, len(headerJSON))
	}

	checksum := sha256.Sum256(data.Bytes())

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[0x04:], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[0x08:], 0) // flags
	binary.LittleEndian.PutUint64(fixed[0x10:], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[0x18:], uint64(data.Len()))
	copy(fixed[ChecksumOffset:], checksum[:])

	if _, err := w.file.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.file.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if pad := paddingFor(int64(FixedHeaderSize + len(headerJSON))); pad > 0 {
		if _, err := w.file.Write(make([]byte, pad)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}
	if _, err := w.file.Write(data.Bytes()); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to sync weight bundle: %w", err)
	}
	return w.file.Close()
}
