package pipeline

import "time"

// Stats summarizes one compression or decompression run.
type Stats struct {
	// Chunks is the number of chunks processed (frames in the container).
	Chunks int

	// OriginalSize is the uncompressed data size in bytes.
	OriginalSize int64

	// CompressedSize is the total container size in bytes, header included.
	CompressedSize int64

	// Digest is the xxHash64 of the uncompressed bytes in chunk-index
	// order. Comparing the compress-side and decompress-side digests gives
	// end-to-end integrity assurance without any extra wire data.
	Digest uint64

	// Workers is the pool size used for the run.
	Workers int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// CompressionRatio returns compressed size / original size.
//
// Values less than 1.0 indicate successful compression; values above 1.0
// indicate overhead (small or incompressible inputs). Returns 0 when the
// original size is zero.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100 for
// effective compression, negative when the container is larger than the
// input).
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}
