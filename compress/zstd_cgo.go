//go:build gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/parzip/parzip/errs"
)

// Compress compresses the input data using the cgo libzstd binding.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd-compressed data using the cgo libzstd binding.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompressFailed, err)
	}

	return decompressed, nil
}
