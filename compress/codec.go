package compress

import (
	"fmt"

	"github.com/parzip/parzip/format"
)

// DefaultSizeHint is the decompression buffer starting size used when a
// codec is constructed without an explicit chunk-size hint.
const DefaultSizeHint = 1 << 20 // 1MiB

// maxChunkOutput caps how far a decompression buffer may grow for a single
// chunk. Hitting the cap means the input is corrupt or hostile, not that the
// chunk is legitimately this large.
const maxChunkOutput = 1 << 30 // 1GiB

// Compressor compresses one self-contained chunk buffer.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reconstructs the original bytes of one compressed chunk.
//
// The input must be a complete stream previously produced by the matching
// Compressor. Implementations validate the stream and return an error
// wrapping errs.ErrDecompressFailed if the data is truncated or corrupt —
// a stream that never reaches its end marker must never decode silently.
//
// Memory management mirrors Compressor: the returned slice is newly
// allocated and owned by the caller, and the input slice is not modified.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the specified
// compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Flate, Zstd, S2, or LZ4)
//   - level: Compression intensity for level-aware codecs (Flate); other
//     codecs ignore it
//   - sizeHint: Nominal chunk size, used as the starting decompression
//     buffer size (DefaultSizeHint when <= 0)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type or level error
func CreateCodec(compressionType format.CompressionType, level int, sizeHint int) (Codec, error) {
	if sizeHint <= 0 {
		sizeHint = DefaultSizeHint
	}

	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionFlate:
		return NewFlateCodec(level, sizeHint)
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionS2:
		return NewS2Codec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(sizeHint), nil
	default:
		return nil, fmt.Errorf("invalid compression type: %s", compressionType)
	}
}
