package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/parzip/parzip/errs"
	"github.com/parzip/parzip/format"
)

// S2Codec provides S2 compression for chunks, trading some ratio for
// substantially faster encoding than Zstd or Flate.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Compress compresses the input data using S2 compression.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses the input data using S2 decompression.
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompressFailed, err)
	}

	return decompressed, nil
}

// Type reports the codec's compression type.
func (c S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}
