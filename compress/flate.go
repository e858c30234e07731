package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/parzip/parzip/errs"
	"github.com/parzip/parzip/format"
)

// FlateCodec compresses chunks as self-contained DEFLATE streams.
//
// This is the container's default codec. Each chunk becomes a complete
// DEFLATE stream with its own end-of-stream marker, so chunks decode
// independently on any worker.
type FlateCodec struct {
	level    int
	sizeHint int
}

var _ Codec = (*FlateCodec)(nil)

// NewFlateCodec creates a Flate codec with the given compression level and
// decompression size hint.
//
// The level must be within the DEFLATE range -2..9; format.LevelDefault (-1)
// selects the library's balanced default. An out-of-range level returns an
// error wrapping errs.ErrInvalidLevel.
func NewFlateCodec(level, sizeHint int) (*FlateCodec, error) {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, fmt.Errorf("%w: flate level %d not in [%d, %d]",
			errs.ErrInvalidLevel, level, flate.HuffmanOnly, flate.BestCompression)
	}

	if sizeHint <= 0 {
		sizeHint = DefaultSizeHint
	}

	return &FlateCodec{level: level, sizeHint: sizeHint}, nil
}

// flateBound returns a worst-case output size for compressing n input bytes.
// DEFLATE stored blocks add 5 bytes per 64KiB window plus stream overhead.
func flateBound(n int) int {
	return n + 5*(n>>14+1) + 16
}

// Compress compresses the input data as one DEFLATE stream.
//
// The output buffer is grown to the worst-case bound before encoding and
// trimmed to the produced length, so a single allocation covers even
// incompressible input.
func (c *FlateCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(flateBound(len(data)))

	fw, err := flate.NewWriter(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressFailed, err)
	}

	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressFailed, err)
	}

	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCompressFailed, err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses one DEFLATE stream back to the original bytes.
//
// Unlike compression, the output bound is unknown up front: the buffer
// starts at the configured chunk-size hint and doubles whenever the decoder
// exhausts available space before reaching the stream's end marker. A stream
// that ends without a clean end marker, or that expands past the safety
// limit, fails with errs.ErrDecompressFailed or errs.ErrOutputTooLarge.
func (c *FlateCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()

	buf := make([]byte, c.sizeHint)
	total := 0

	for {
		if total == len(buf) {
			if len(buf) >= maxChunkOutput {
				return nil, fmt.Errorf("%w: flate chunk exceeded %d bytes",
					errs.ErrOutputTooLarge, maxChunkOutput)
			}

			grown := make([]byte, len(buf)*2)
			copy(grown, buf)
			buf = grown
		}

		n, err := fr.Read(buf[total:])
		total += n

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrDecompressFailed, err)
		}
	}

	return buf[:total], nil
}

// Level reports the configured compression level.
func (c *FlateCodec) Level() int {
	return c.level
}

// Type reports the codec's compression type.
func (c *FlateCodec) Type() format.CompressionType {
	return format.CompressionFlate
}
