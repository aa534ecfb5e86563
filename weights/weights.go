// Package weights provides weight bundle reading and writing for the
// style transfer pipeline.
//
// This package wraps the internal implementation and exports a clean
// public API for the native .nsw format plus a SafeTensors reader for
// checkpoints published on model hubs.
//
// Example usage:
//
//	import "github.com/born-ml/neuralstyle/weights"
//
//	// Open a converted bundle
//	reader, err := weights.Open("vgg19.nsw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	fmt.Printf("Arch: %s\n", reader.Header().Arch)
//	fmt.Printf("Tensors: %v\n", reader.TensorNames())
//
//	bundle, err := reader.ReadBundle()
//	if err != nil {
//	    log.Fatal(err)
//	}
package weights

import (
	"github.com/born-ml/neuralstyle/internal/weights"
)

// Format constants for .nsw files.
const (
	MagicBytes    = weights.MagicBytes
	FormatVersion = weights.FormatVersion
)

// Sentinel errors reported by the reader.
var (
	ErrInvalidMagic       = weights.ErrInvalidMagic
	ErrUnsupportedVersion = weights.ErrUnsupportedVersion
	ErrChecksumMismatch   = weights.ErrChecksumMismatch
	ErrHeaderTooLarge     = weights.ErrHeaderTooLarge
	ErrOutOfBounds        = weights.ErrOutOfBounds
	ErrDuplicateTensor    = weights.ErrDuplicateTensor
	ErrTensorNotFound     = weights.ErrTensorNotFound
)

// Bundle is a flat collection of named float32 tensors.
type Bundle = weights.Bundle

// Entry is one named tensor in a bundle.
type Entry = weights.Entry

// Header is the JSON metadata block of a .nsw file.
type Header = weights.Header

// TensorMeta describes one tensor in a .nsw data section.
type TensorMeta = weights.TensorMeta

// Reader reads .nsw weight bundles.
type Reader = weights.Reader

// Writer writes .nsw weight bundles.
type Writer = weights.Writer

// NewBundle creates an empty bundle.
func NewBundle() *Bundle {
	return weights.NewBundle()
}

// Open opens a .nsw file and parses its headers. The caller must call
// Close.
//
// Example:
//
//	reader, err := weights.Open("vgg19.nsw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
func Open(path string) (*Reader, error) {
	return weights.Open(path)
}

// NewWriter creates a writer for a new .nsw file at path.
func NewWriter(path string) (*Writer, error) {
	return weights.NewWriter(path)
}

// IsSafeTensors reports whether a file prefix looks like the
// SafeTensors format.
func IsSafeTensors(prefix []byte) bool {
	return weights.IsSafeTensors(prefix)
}

// ReadSafeTensors loads float32 tensors from a SafeTensors file into a
// bundle. The keep filter selects tensors by name; a nil filter keeps
// everything.
//
// Example:
//
//	bundle, err := weights.ReadSafeTensors("vgg19.safetensors",
//	    func(name string) bool {
//	        return strings.HasPrefix(name, "features.")
//	    })
func ReadSafeTensors(path string, keep func(name string) bool) (*Bundle, error) {
	return weights.ReadSafeTensors(path, keep)
}
