package section

import (
	"fmt"
	"io"

	"github.com/parzip/parzip/endian"
	"github.com/parzip/parzip/errs"
)

// DefaultMagic is the container magic constant, 0x436F4D50 ("CoMP").
const DefaultMagic uint32 = 0x436F4D50

// HeaderSize is the fixed size of the container header in bytes.
const HeaderSize = 12

// engine is the wire byte order. The container is always little-endian.
var engine = endian.GetLittleEndianEngine()

// Header is the fixed-size section at the start of every container.
type Header struct {
	// Magic identifies the container format.
	Magic uint32 // byte offset 0-3
	// OriginalSize is the total uncompressed size of the archived data.
	// The decompressor uses it both to know when all chunks have been
	// reassembled and to validate full reconstruction.
	OriginalSize uint64 // byte offset 4-11
}

// NewHeader creates a Header with the given magic and original size.
func NewHeader(magic uint32, originalSize uint64) Header {
	return Header{Magic: magic, OriginalSize: originalSize}
}

// Bytes serializes the header into a fixed-width little-endian byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine.PutUint32(b[0:4], h.Magic)
	engine.PutUint64(b[4:12], h.OriginalSize)

	return b
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 12 bytes)
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize if data is shorter than HeaderSize
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidHeaderSize, HeaderSize, len(data))
	}

	h.Magic = engine.Uint32(data[0:4])
	h.OriginalSize = engine.Uint64(data[4:12])

	return nil
}

// Validate checks the header's magic against the expected constant.
//
// Returns:
//   - error: errs.ErrInvalidMagic when the magic does not match
func (h Header) Validate(wantMagic uint32) error {
	if h.Magic != wantMagic {
		return fmt.Errorf("%w: got 0x%08X, want 0x%08X", errs.ErrInvalidMagic, h.Magic, wantMagic)
	}

	return nil
}

// ReadHeader reads and parses a container header from r, validating its
// magic against wantMagic.
func ReadHeader(r io.Reader, wantMagic uint32) (Header, error) {
	var h Header

	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return h, fmt.Errorf("%w: %v", errs.ErrInvalidHeaderSize, err)
	}

	if err := h.Parse(buf); err != nil {
		return h, err
	}

	if err := h.Validate(wantMagic); err != nil {
		return h, err
	}

	return h, nil
}
