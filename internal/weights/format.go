package weights

import "time"

// Format constants.
const (
	MagicBytes      = "NSWB"
	FormatVersion   = 1
	FixedHeaderSize = 64   // fixed binary header size (0x40 bytes)
	HeaderAlignment = 64   // tensor data starts on a 64-byte boundary
	ChecksumSize    = 32   // SHA-256
	ChecksumOffset  = 0x20 // checksum position in the fixed header

	// maxHeaderSize caps the JSON header so a corrupted size field
	// cannot trigger a huge allocation.
	maxHeaderSize = 64 << 20
)

// DTypeFloat32 is the only element type the format carries today.
// Pretrained convolution weights ship as float32 and the pipeline never
// needs anything wider.
const DTypeFloat32 = "float32"

// Header is the JSON metadata block following the fixed header.
type Header struct {
	FormatVersion int               `json:"format_version"`
	Producer      string            `json:"producer,omitempty"` // tool that wrote the file
	Arch          string            `json:"arch,omitempty"`     // network family, e.g. "vgg19"
	CreatedAt     time.Time         `json:"created_at"`
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`   // bytes
}

// NumElements returns the element count implied by the shape.
func (m *TensorMeta) NumElements() int64 {
	n := int64(1)
	for _, d := range m.Shape {
		n *= int64(d)
	}
	return n
}

// paddingFor returns the number of zero bytes needed to advance pos to
// the next HeaderAlignment boundary.
func paddingFor(pos int64) int64 {
	return (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment
}
