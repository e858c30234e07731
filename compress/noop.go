package compress

import "github.com/parzip/parzip/format"

// NoOpCodec passes chunk data through without compression.
//
// Useful for measuring pipeline overhead without codec cost, and for inputs
// that are already compressed or encrypted and would only waste CPU.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a new pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns the input data unchanged.
//
// Note: The returned slice shares the input's underlying memory. The
// pipeline treats codec input as immutable after hand-off, so no copy is
// needed.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data unchanged.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// Type reports the codec's compression type.
func (c NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}
