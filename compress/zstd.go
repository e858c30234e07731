package compress

import "github.com/parzip/parzip/format"

// ZstdCodec provides Zstandard compression for chunks.
//
// Zstd gives the best compression ratio of the supported codecs at moderate
// speed, making it the right choice when the archive is written once and
// read rarely. The Zstd frame format records the original size, so
// decompression needs no buffer-doubling loop.
//
// Two implementations exist behind build tags: the default pure-Go
// klauspost/compress encoder, and a cgo libzstd binding (build tag "gozstd")
// for environments where the native library's throughput matters.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type reports the codec's compression type.
func (c ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
