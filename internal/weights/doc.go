// Package weights implements the .nsw weight bundle format.
//
// A bundle is a flat collection of named float32 tensors with enough
// metadata to rebuild them: name, shape, and byte range. The on-disk
// layout is a fixed 64-byte binary header, a JSON metadata block, and
// the raw tensor data concatenated in declaration order:
//
//	[fixed header: 64 bytes]
//	[JSON header: variable]
//	[padding to 64-byte boundary]
//	[tensor data: concatenated float32 little-endian]
//
// Fixed header layout:
//
//	Offset  Size  Field
//	0x00    4     Magic bytes "NSWB"
//	0x04    4     Format version (uint32 LE)
//	0x08    4     Flags (uint32 LE, currently zero)
//	0x0C    4     Reserved
//	0x10    8     JSON header size in bytes (uint64 LE)
//	0x18    8     Data section size in bytes (uint64 LE)
//	0x20    32    SHA-256 checksum of the data section
//
// The checksum covers the tensor data only, so a reader can reject a
// truncated or corrupted download before handing weights to a network.
// Tensor data is 64-byte aligned relative to the start of the file.
//
// The format stores raw tensors and nothing else. Which tensor feeds
// which layer is the caller's concern; see internal/vgg for the mapping
// used by the style transfer pipeline.
package weights
