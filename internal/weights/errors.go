package weights

import "errors"

// Common errors. Readers wrap these with context; test with errors.Is.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrOutOfBounds        = errors.New("tensor extends beyond data section")
	ErrDuplicateTensor    = errors.New("duplicate tensor name")
	ErrTensorNotFound     = errors.New("tensor not found")
)
