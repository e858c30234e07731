package section

import (
	"fmt"
	"io"
	"math"

	"github.com/parzip/parzip/errs"
)

// FramePrefixSize is the size of a frame's length prefix in bytes.
const FramePrefixSize = 4

// MaxFramePayload is the largest compressed payload one frame can carry.
const MaxFramePayload = math.MaxUint32

// WriteFrame writes one frame (length prefix plus payload) to w.
//
// Returns:
//   - int: Total bytes written (FramePrefixSize + len(payload))
//   - error: errs.ErrFrameTooLarge if the payload exceeds MaxFramePayload,
//     or the writer's error
func WriteFrame(w io.Writer, payload []byte) (int, error) {
	if uint64(len(payload)) > MaxFramePayload {
		return 0, fmt.Errorf("%w: payload %d bytes", errs.ErrFrameTooLarge, len(payload))
	}

	var prefix [FramePrefixSize]byte
	engine.PutUint32(prefix[:], uint32(len(payload)))

	if _, err := w.Write(prefix[:]); err != nil {
		return 0, err
	}

	if _, err := w.Write(payload); err != nil {
		return FramePrefixSize, err
	}

	return FramePrefixSize + len(payload), nil
}

// FrameReader reads length-prefixed frames from a container body.
//
// The reader tracks the bytes remaining in the container so a frame whose
// declared length exceeds the remaining input is rejected before any read
// is attempted, distinguishing a malformed length (errs.ErrFrameTooLarge)
// from an input that simply ends early (errs.ErrTruncatedFrame).
type FrameReader struct {
	r         io.Reader
	remaining uint64
}

// NewFrameReader creates a FrameReader over r, where remaining is the number
// of container bytes following the header.
func NewFrameReader(r io.Reader, remaining uint64) *FrameReader {
	return &FrameReader{r: r, remaining: remaining}
}

// Next reads the next frame and returns its payload.
//
// Returns:
//   - []byte: Frame payload, newly allocated and owned by the caller
//   - error: io.EOF at the clean end of the container, errs.ErrFrameTooLarge
//     when a declared length exceeds the remaining input, or
//     errs.ErrTruncatedFrame when the payload ends early
func (fr *FrameReader) Next() ([]byte, error) {
	if fr.remaining == 0 {
		return nil, io.EOF
	}

	if fr.remaining < FramePrefixSize {
		return nil, fmt.Errorf("%w: %d trailing bytes cannot hold a length prefix",
			errs.ErrTruncatedFrame, fr.remaining)
	}

	var prefix [FramePrefixSize]byte
	if _, err := io.ReadFull(fr.r, prefix[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTruncatedFrame, err)
	}
	fr.remaining -= FramePrefixSize

	length := uint64(engine.Uint32(prefix[:]))
	if length > fr.remaining {
		return nil, fmt.Errorf("%w: frame declares %d bytes, %d remain",
			errs.ErrFrameTooLarge, length, fr.remaining)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTruncatedFrame, err)
	}
	fr.remaining -= length

	return payload, nil
}

// Remaining reports the container bytes not yet consumed.
func (fr *FrameReader) Remaining() uint64 {
	return fr.remaining
}
