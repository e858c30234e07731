// Package errs defines the sentinel errors shared across parzip packages.
//
// Call sites wrap these sentinels with context using fmt.Errorf("%w: ...")
// so callers can classify failures with errors.Is while still seeing the
// specific detail of what went wrong.
package errs

import "errors"

// Container format errors.
var (
	// ErrInvalidMagic is returned when a container's magic constant does not
	// match the expected value. The input is not a parzip archive, or it was
	// produced with a different magic configuration.
	ErrInvalidMagic = errors.New("invalid container magic")

	// ErrInvalidHeaderSize is returned when the container is too short to
	// hold a complete header.
	ErrInvalidHeaderSize = errors.New("invalid container header size")

	// ErrFrameTooLarge is returned when a frame's declared payload length
	// exceeds the bytes remaining in the container.
	ErrFrameTooLarge = errors.New("frame length exceeds remaining input")

	// ErrTruncatedFrame is returned when a frame's payload ends before its
	// declared length is reached.
	ErrTruncatedFrame = errors.New("truncated frame payload")

	// ErrSizeMismatch is returned when the reassembled output length does
	// not equal the original size recorded in the container header.
	ErrSizeMismatch = errors.New("decompressed size mismatch")
)

// Codec errors.
var (
	// ErrCompressFailed is returned when the compression primitive reports
	// a fatal status for a chunk.
	ErrCompressFailed = errors.New("chunk compression failed")

	// ErrDecompressFailed is returned when the decompression primitive
	// reports a fatal status for a chunk, including truncated or corrupt
	// streams that never reach a clean end-of-stream marker.
	ErrDecompressFailed = errors.New("chunk decompression failed")

	// ErrInvalidLevel is returned when a compression level is outside the
	// codec's supported range.
	ErrInvalidLevel = errors.New("invalid compression level")

	// ErrOutputTooLarge is returned when a chunk's decompressed output
	// exceeds the codec's expansion safety limit, which indicates corrupt
	// input rather than a legitimately large chunk.
	ErrOutputTooLarge = errors.New("decompressed output exceeds safety limit")
)

// Pipeline errors.
var (
	// ErrPipelineStalled is returned when the pool is quiescent (no pending
	// and no in-flight tasks) while the writer still expects more chunks.
	// A task was lost, which is an internal invariant violation; the
	// condition is never retried.
	ErrPipelineStalled = errors.New("pipeline stalled: expected chunk never completed")

	// ErrPoolClosed is returned when a task is submitted to a pool that has
	// already stopped accepting new work.
	ErrPoolClosed = errors.New("worker pool closed")
)
